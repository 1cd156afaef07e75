package response

import (
	"fmt"
	"io"

	"github.com/nhdewitt/tcp-router/internal/headers"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type writerState int

const (
	StateWritingStatusLine writerState = iota
	StateWritingHeaders
	StateWritingBody
	StateDone
)

// Writer enforces status line, then headers, then body.
type Writer struct {
	writer io.Writer
	state  writerState
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: w,
		state:  StateWritingStatusLine,
	}
}

func (w *Writer) WriteStatusLine(statusCode StatusCode) error {
	if w.state != StateWritingStatusLine {
		return fmt.Errorf("writer state out-of-order")
	}

	if _, err := io.WriteString(w.writer, statusCode.StatusLine()+crlf); err != nil {
		return fmt.Errorf("error writing status line: %w", err)
	}

	w.state = StateWritingHeaders
	return nil
}

func (w *Writer) WriteHeaders(h headers.Headers) error {
	if w.state != StateWritingHeaders {
		return fmt.Errorf("writer state out-of-order")
	}

	caser := cases.Title(language.English)
	for _, f := range h {
		line := caser.String(f.Name) + ": " + f.Value + crlf
		if _, err := io.WriteString(w.writer, line); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}
	if _, err := io.WriteString(w.writer, crlf); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	w.state = StateWritingBody
	return nil
}

func (w *Writer) WriteBody(p []byte) (int, error) {
	if w.state != StateWritingBody {
		return 0, fmt.Errorf("writer state out-of-order")
	}

	w.state = StateDone
	if len(p) == 0 {
		return 0, nil
	}
	return w.writer.Write(p)
}
