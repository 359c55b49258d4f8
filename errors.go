package orcmeta

import "strings"

// Error is the orcmeta error domain type.
//
// Errors coming from orcmeta components should be inspectable as
// ([errors.As]) an *Error at some point in the error chain. Create an Error
// at the point a failure is first classified (a read fails, a block fails to
// inflate, a message fails to decode) and prefer [fmt.Errorf] with a "%w"
// verb over wrapping in another Error at higher layers.
type Error struct {
	Inner   error
	Kind    ErrorKind
	Message string
	Op      string
}

var (
	_ error                       = (*Error)(nil)
	_ interface{ Is(error) bool } = (*Error)(nil)
	_ interface{ Unwrap() error } = (*Error)(nil)
)

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(" ")
	}
	b.WriteString("[")
	switch e.Kind {
	case ErrIO, ErrMemory, ErrTruncated, ErrDecompress, ErrDecode:
		b.WriteString(string(e.Kind))
	default:
		b.WriteString("???")
	}
	b.WriteString("]: ")
	if e.Message != "" {
		b.WriteString(e.Message)
	}
	if e.Message != "" && e.Inner != nil {
		b.WriteString(": ")
	}
	if e.Op == "" && e.Message == "" {
		b.Reset()
	}
	if e.Inner != nil {
		b.WriteString(e.Inner.Error())
	}
	return b.String()
}

// Is enables [errors.Is]; it compares kind, not identity. Callers should
// compare against a declared [ErrorKind].
func (e *Error) Is(kind error) bool {
	if ek, ok := kind.(ErrorKind); ok {
		return e.Kind == ek
	}
	return false
}

// Unwrap enables [errors.Unwrap].
func (e *Error) Unwrap() error {
	return e.Inner
}

// ErrorKind classifies the discriminable failure modes of reading ORC
// metadata.
type ErrorKind string

// Defined error kinds.
const (
	// ErrIO covers failures reading the underlying file or reader: short
	// reads, seek errors, and anything the OS reports opening or reading
	// the file.
	ErrIO ErrorKind = "io-error"

	// ErrMemory covers refusals to allocate a buffer a declared length
	// implies, guarding against a corrupt or malicious length field turning
	// into an unbounded allocation.
	ErrMemory ErrorKind = "out-of-memory"

	// ErrTruncated covers a file too short to hold a structure its own
	// tail claims is present: a PostScript past the end of the file, a
	// Footer offset that runs off the front, a StripeFooter shorter than
	// its declared length.
	ErrTruncated ErrorKind = "truncated-stream"

	// ErrDecompress covers a compression block that fails to inflate: an
	// unsupported codec, a malformed block header, or the underlying
	// codec rejecting its input.
	ErrDecompress ErrorKind = "decompress-error"

	// ErrDecode covers a syntactically valid, fully decompressed region
	// that is not a well-formed Protocol Buffer message of the expected
	// shape.
	ErrDecode ErrorKind = "decode-error"
)

// Error implements error.
func (k ErrorKind) Error() string {
	return string(k)
}
