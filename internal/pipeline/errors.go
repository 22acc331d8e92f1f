package pipeline

import "fmt"

// ConversionError reports a failed or unreachable pandoc invocation.
// It is always surfaced to the caller; no local fallback rendering
// exists and conversion is deterministic, so nothing retries it.
type ConversionError struct {
	Op     string
	Format Format
	Stderr string
	Err    error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("pandoc %s failed", e.Op)
	if e.Format != "" {
		msg += fmt.Sprintf(" (format %s)", e.Format)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// UnsupportedFormatError reports a format tag with no known pandoc
// mapping.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q", string(e.Format))
}

// UnknownFormatError reports that format inference from a file
// extension failed.
type UnknownFormatError struct {
	Path string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("cannot infer format from %q", e.Path)
}
