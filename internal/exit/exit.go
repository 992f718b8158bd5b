// Package exit carries termination outcomes from the CLI layers back to
// main, which stays the single place that calls os.Exit.
package exit

import (
	"fmt"
	"io"
	"os"
)

// Result describes how the process should terminate: the message to
// print, where to print it, and the code to return from main.
type Result struct {
	Message  string
	Writer   io.Writer
	ExitCode int
}

// Print writes the message to the result's writer, defaulting to stderr.
func (r *Result) Print() {
	w := r.Writer
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprint(w, r.Message)
}

// Success reports a normal termination message on stdout with exit code 0.
func Success(message string) *Result {
	return &Result{Message: message, Writer: os.Stdout}
}

// Errorf reports a failure on stderr with exit code 1.
func Errorf(format string, a ...any) *Result {
	return &Result{
		Message:  fmt.Sprintf(format, a...),
		Writer:   os.Stderr,
		ExitCode: 1,
	}
}
