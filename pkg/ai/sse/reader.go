// Package sse provides a minimal line-oriented reader for "data:"-framed
// completion streams. Each non-blank line is one candidate event.
package sse

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ErrNoData marks a non-blank line that does not carry a "data:" field.
// The caller decides whether to skip the line or abort the stream.
var ErrNoData = errors.New("sse: line has no data field")

// Reader reads data payloads from an io.Reader, one per non-blank line.
// Blank keep-alive lines are skipped, not dispatched.
type Reader struct {
	scanner *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1<<20), 1<<20) // 1 MB buffer
	return &Reader{scanner: sc}
}

// Next returns the payload of the next data line, with the "data:" prefix
// and surrounding whitespace stripped. A non-blank line without the prefix
// is returned verbatim along with ErrNoData; reading may continue after
// it. Returns ("", io.EOF) at end of stream.
func (r *Reader) Next() (string, error) {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "data:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "data:")), nil
		}
		return line, ErrNoData
	}
	if err := r.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
