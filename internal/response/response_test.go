package response

import (
	"bytes"
	"testing"

	"github.com/nhdewitt/tcp-router/internal/headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "HTTP/1.1 200 OK", StatusOK.StatusLine())
	assert.Equal(t, "HTTP/1.1 201 Created", StatusCreated.StatusLine())
	assert.Equal(t, "HTTP/1.1 404 NOT FOUND", StatusNotFound.StatusLine())
	assert.Equal(t, "HTTP/1.1 411 Length Required", StatusLengthRequired.StatusLine())
	assert.Equal(t, "HTTP/1.1 500 Internal Server Error", StatusInternalServerError.StatusLine())
	assert.Equal(t, "HTTP/1.1 418", StatusCode(418).StatusLine())
}

func TestResponseBytes(t *testing.T) {
	assert.Equal(t, "HTTP/1.1 200 OK\r\n\r\n", string(New(StatusOK).Bytes()))
	assert.Equal(t, "HTTP/1.1 404 NOT FOUND\r\n\r\n", string(New(StatusNotFound).Bytes()))

	got := WithBody(StatusOK, "text/plain", []byte("abc")).Bytes()
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 3\r\n\r\nabc", string(got))
}

func TestContentLengthCountsBytes(t *testing.T) {
	body := []byte("héllo, 世界")
	r := WithBody(StatusOK, "text/plain", body)
	assert.Equal(t, "14", r.Headers.Get("Content-Length"))
}

func TestWriterCanonicalizesHeaderNames(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	h := headers.NewHeaders()
	h.Add("content-type", "application/octet-stream")
	h.Add("x-request-id", "7")

	require.NoError(t, w.WriteStatusLine(StatusOK))
	require.NoError(t, w.WriteHeaders(h))
	_, err := w.WriteBody([]byte("z"))
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Type: application/octet-stream\r\nX-Request-Id: 7\r\n\r\nz", buf.String())
}

func TestWriterOutOfOrder(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	require.Error(t, w.WriteHeaders(nil))
	_, err := w.WriteBody(nil)
	require.Error(t, err)

	require.NoError(t, w.WriteStatusLine(StatusOK))
	require.Error(t, w.WriteStatusLine(StatusOK))
	require.NoError(t, w.WriteHeaders(nil))
	_, err = w.WriteBody(nil)
	require.NoError(t, err)
	_, err = w.WriteBody(nil)
	require.Error(t, err)
}
