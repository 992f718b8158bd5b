package matchquery

// Shortcut tables map abbreviation segments to the literal field names they
// stand for. The tables are fixed at build time and never mutated; segments
// absent from the relevant table are already-literal and pass through
// expansion unchanged. Expansion order follows slice order.

var l1Shortcuts = map[string][]string{
	"":     {"message", "channel_post"},
	"msg":  {"message", "channel_post"},
	"edit": {"edited_message", "edited_channel_post"},
}

var l2Shortcuts = map[string][]string{
	"":      {"entities", "caption_entities"},
	"media": {"photo", "video"},
	"file": {
		"photo",
		"animation",
		"audio",
		"document",
		"video",
		"video_note",
		"voice",
		"sticker",
	},
}
