package diff

import "errors"

var (
	// ErrEmptyInput is returned by Parse when no diff text is supplied.
	ErrEmptyInput = errors.New("no data passed to diff")

	// ErrMissingFileData is returned by ParseFile for an empty segment.
	ErrMissingFileData = errors.New("no file data in diff segment")

	// ErrMalformedHeader is returned when a segment's header cannot be parsed,
	// most commonly when the path line does not hold exactly two paths.
	ErrMalformedHeader = errors.New("malformed header")
)
