// Package diff parses the text produced by "git diff" into per-file,
// per-hunk values.
//
// A raw diff is split on the "diff --git " token into segments. Each segment
// is parsed by a two-state machine:
//
//   - HEADER: the path pair, "new file mode", "index" lines. Ends at the
//     first line starting with "+++".
//   - BODY: "@@ ... @@" hunk headers, hunk content and the
//     "\ No newline at end of file" marker.
//
// # Usage
//
//	set, err := diff.Parse(raw)
//	if err != nil {
//	    return err
//	}
//	for _, f := range set.Files() {
//	    for _, h := range f.Hunks() {
//	        fmt.Println(h.Header)
//	    }
//	}
//
// # Errors
//
// Parse aborts on the first malformed segment. Use [errors.Is] against
// [ErrEmptyInput], [ErrMissingFileData] and [ErrMalformedHeader].
//
// Parsed values are immutable and safe to share between goroutines.
package diff
