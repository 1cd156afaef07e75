package response

import (
	"bytes"
	"strconv"

	"github.com/nhdewitt/tcp-router/internal/headers"
)

const crlf = "\r\n"

// Response collects the parts of a reply before they are encoded.
type Response struct {
	Status  StatusCode
	Headers headers.Headers
	Body    []byte
}

// New returns a response with no headers and no body.
func New(status StatusCode) Response {
	return Response{Status: status}
}

// WithBody returns a response carrying body, typed as contentType.
func WithBody(status StatusCode, contentType string, body []byte) Response {
	return Response{
		Status:  status,
		Headers: GetDefaultHeaders(contentType, len(body)),
		Body:    body,
	}
}

// GetDefaultHeaders returns the Content-Type and Content-Length fields, in
// that order. contentLen is a byte count.
func GetDefaultHeaders(contentType string, contentLen int) headers.Headers {
	h := headers.NewHeaders()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(contentLen))

	return h
}

// Bytes encodes the response as it goes on the wire.
func (r Response) Bytes() []byte {
	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail and the writer is used in order.
	w := NewWriter(&buf)
	_ = w.WriteStatusLine(r.Status)
	_ = w.WriteHeaders(r.Headers)
	_, _ = w.WriteBody(r.Body)

	return buf.Bytes()
}
