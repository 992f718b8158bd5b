package matchquery

// expand resolves shortcut segments in a parsed query into the concrete
// paths it denotes. A shortcut table is consulted only for segments the
// query actually carried: the empty-string keys fire for present-but-empty
// segments (":media", "message:"), never for absent ones ("message" stays
// an L1-existence check). L1 and L2 expand independently, so the result is
// the cross-product of both expansions, every candidate keeping the
// original l3. The fully-empty path is returned as is; rejecting it is the
// compiler's job.
func expand(segments []string) []path {
	p := toPath(segments)
	if p.l1 == "" && p.l2 == "" && p.l3 == "" {
		return []path{p}
	}

	candidates := []path{p}
	if literals, ok := l1Shortcuts[p.l1]; ok {
		candidates = candidates[:0]
		for _, literal := range literals {
			candidates = append(candidates, path{l1: literal, l2: p.l2, l3: p.l3})
		}
	}

	if len(segments) < 2 {
		return candidates
	}
	literals, ok := l2Shortcuts[p.l2]
	if !ok {
		return candidates
	}

	expanded := make([]path, 0, len(candidates)*len(literals))
	for _, candidate := range candidates {
		for _, literal := range literals {
			expanded = append(expanded, path{l1: candidate.l1, l2: literal, l3: candidate.l3})
		}
	}

	return expanded
}

func toPath(segments []string) path {
	var p path
	if len(segments) > 0 {
		p.l1 = segments[0]
	}
	if len(segments) > 1 {
		p.l2 = segments[1]
	}
	if len(segments) > 2 {
		p.l3 = segments[2]
	}
	return p
}
