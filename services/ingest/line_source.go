package ingest

import (
	"bufio"
	"io"
	"strings"
)

// LineSource yields decoded text lines one at a time, possibly blocking.
// ok=false signals end of stream or disconnect; the drain loop treats it
// as a terminal status change, never a crash.
type LineSource interface {
	NextLine() (line string, ok bool)
}

// ReaderSource adapts any io.Reader (stdin, a log replay file, an
// already-opened serial port) into a LineSource. Port discovery and
// open/close are the caller's problem.
type ReaderSource struct {
	scanner *bufio.Scanner
}

// NewReaderSource wraps r in a line scanner sized for chatty device
// output.
func NewReaderSource(r io.Reader) *ReaderSource {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 256*1024)
	return &ReaderSource{scanner: sc}
}

// NextLine returns the next line with trailing whitespace trimmed and
// malformed byte sequences replaced. ok=false on EOF or read error.
func (s *ReaderSource) NextLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	line := strings.ToValidUTF8(s.scanner.Text(), "�")
	return strings.TrimRight(line, " \t\r"), true
}
