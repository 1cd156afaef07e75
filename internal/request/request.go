package request

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nhdewitt/tcp-router/internal/headers"
	"golang.org/x/net/http/httpguts"
)

type requestState int

const (
	stateInitialized requestState = iota
	stateHeaders
	stateBody
	stateDone
)

const (
	// DefaultBufferSize caps how many bytes are read for one request.
	DefaultBufferSize = 1024
	bufferSize        = 8
	crlf              = "\r\n"
)

var (
	ErrEmptyRequest     = errors.New("empty request")
	ErrMalformedRequest = errors.New("malformed request")
)

type Request struct {
	RequestLine RequestLine
	Headers     headers.Headers
	// Body holds exactly Content-Length bytes, or nothing when the header
	// is absent.
	Body []byte
	// Truncated is set when the read limit was hit before the request was
	// complete. Anything past the limit is not available.
	Truncated bool

	state         requestState
	contentLength int
	hasLength     bool
}

type RequestLine struct {
	HttpVersion   string
	RequestTarget string
	Method        string
}

func newRequest() *Request {
	return &Request{
		Headers: headers.NewHeaders(),
		state:   stateInitialized,
	}
}

// ContentLength reports the declared body length, if the request had one.
func (r *Request) ContentLength() (int, bool) {
	return r.contentLength, r.hasLength
}

// RequestFromReader reads a single request of at most limit bytes. Reading
// stops once Content-Length bytes of body have arrived (right after the
// header block when there is no Content-Length), at EOF, or at the limit.
func RequestFromReader(reader io.Reader, limit int) (*Request, error) {
	if limit <= 0 {
		limit = DefaultBufferSize
	}
	buf := make([]byte, bufferSize)
	readToIndex := 0
	total := 0
	atEOF := false

	r := newRequest()
	for r.state != stateDone {
		if total >= limit {
			r.Truncated = true
			break
		}
		if readToIndex == len(buf) {
			tmpBuf := make([]byte, len(buf)*2)
			copy(tmpBuf, buf[:readToIndex])
			buf = tmpBuf
		}

		end := min(len(buf), readToIndex+limit-total)
		n, err := reader.Read(buf[readToIndex:end])
		if n > 0 {
			readToIndex += n
			total += n

			bytesParsed, perr := r.parse(buf[:readToIndex])
			if perr != nil {
				return nil, perr
			}

			copy(buf, buf[bytesParsed:readToIndex])
			readToIndex -= bytesParsed
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				atEOF = true
				break
			}
			return nil, fmt.Errorf("error reading request: %w", err)
		}
	}

	if err := r.finish(buf[:readToIndex], atEOF); err != nil {
		return nil, err
	}

	return r, nil
}

// Parse reads a request from a buffer that holds everything the client sent.
func Parse(data []byte) (*Request, error) {
	r := newRequest()
	n, err := r.parse(data)
	if err != nil {
		return nil, err
	}
	if err := r.finish(data[n:], true); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Request) parse(data []byte) (int, error) {
	totalBytesParsed := 0
	for r.state != stateDone {
		n, err := r.parseSingle(data[totalBytesParsed:])
		if err != nil {
			return 0, err
		}
		if n == 0 {
			break
		}
		totalBytesParsed += n
	}

	return totalBytesParsed, nil
}

func (r *Request) parseSingle(data []byte) (int, error) {
	switch r.state {
	case stateInitialized:
		idx := bytes.Index(data, []byte(crlf))
		if idx == -1 {
			return 0, nil
		}
		rl, err := requestLineFromString(headers.Decode(data[:idx]))
		if err != nil {
			return 0, err
		}

		r.RequestLine = *rl
		r.state = stateHeaders
		return idx + len(crlf), nil
	case stateHeaders:
		n, done, err := r.Headers.Parse(data)
		if err != nil {
			// Malformed lines are dropped, not fatal.
			return bytes.Index(data, []byte(crlf)) + len(crlf), nil
		}
		if done {
			if err := r.startBody(); err != nil {
				return 0, err
			}
		}
		return n, nil
	case stateBody:
		n := min(len(data), r.contentLength-len(r.Body))
		r.Body = append(r.Body, data[:n]...)
		if len(r.Body) == r.contentLength {
			r.state = stateDone
		}
		return n, nil
	case stateDone:
		return 0, fmt.Errorf("error: trying to read data in a done state")
	default:
		return 0, fmt.Errorf("error: unknown state")
	}
}

// startBody runs once the header block ends.
func (r *Request) startBody() error {
	v, ok := r.Headers.Lookup("Content-Length")
	if !ok {
		r.state = stateDone
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fmt.Errorf("%w: invalid Content-Length: %q", ErrMalformedRequest, v)
	}

	r.contentLength, r.hasLength = n, true
	r.state = stateBody
	if n == 0 {
		r.state = stateDone
	}
	return nil
}

// finish settles a request whose input ended early, either at EOF or at the
// read limit. rest is whatever was read but not yet parsed.
func (r *Request) finish(rest []byte, atEOF bool) error {
	switch r.state {
	case stateInitialized:
		if len(rest) == 0 {
			return ErrEmptyRequest
		}
		if !atEOF {
			return fmt.Errorf("%w: request line exceeds read limit", ErrMalformedRequest)
		}
		rl, err := requestLineFromString(headers.Decode(rest))
		if err != nil {
			return err
		}
		r.RequestLine = *rl
	case stateHeaders:
		// A last header line without its terminator still counts at EOF.
		if atEOF && len(rest) > 0 {
			if f, err := headers.ParseLine(headers.Decode(rest)); err == nil {
				r.Headers.Add(f.Name, f.Value)
			}
		}
	case stateBody:
		if atEOF {
			return fmt.Errorf("%w: body has %d of %d bytes", ErrMalformedRequest, len(r.Body), r.contentLength)
		}
	}

	r.state = stateDone
	return nil
}

func requestLineFromString(s string) (*RequestLine, error) {
	parts := strings.Split(s, " ")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("%w: invalid request line: %q", ErrMalformedRequest, s)
	}

	method := parts[0]
	if method == "" || strings.IndexFunc(method, isNotToken) != -1 {
		return nil, fmt.Errorf("%w: invalid method: %q", ErrMalformedRequest, method)
	}

	target := parts[1]
	if !strings.HasPrefix(target, "/") {
		return nil, fmt.Errorf("%w: invalid target: %q", ErrMalformedRequest, target)
	}

	// The version is accepted as sent and never checked.
	var version string
	if len(parts) == 3 {
		version = strings.TrimPrefix(parts[2], "HTTP/")
	}

	return &RequestLine{
		Method:        method,
		RequestTarget: target,
		HttpVersion:   version,
	}, nil
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}
