package handler

import (
	"github.com/nhdewitt/tcp-router/internal/request"
	"github.com/nhdewitt/tcp-router/internal/response"
)

// ID names a handler. The set is closed; Handle switches on it.
type ID int

const (
	Default ID = iota
	Index
	Echo
	UserAgent
	GetFile
	PostFile
)

var names = map[ID]string{
	Default:   "default",
	Index:     "index",
	Echo:      "echo",
	UserAgent: "user-agent",
	GetFile:   "get-file",
	PostFile:  "post-file",
}

func (id ID) String() string {
	if name, ok := names[id]; ok {
		return name
	}
	return "default"
}

// Set holds what handlers need besides the request. It is read-only after
// NewSet and safe to share between connections.
type Set struct {
	dir string
}

// NewSet returns handlers that serve files from dir. An empty dir disables
// the file handlers.
func NewSet(dir string) *Set {
	return &Set{dir: dir}
}

// Handle runs handler id and returns the encoded response. capture is the
// trailing path segment matched by the route, if any.
func (s *Set) Handle(id ID, req *request.Request, capture string) []byte {
	var resp response.Response

	switch id {
	case Index:
		resp = index()
	case Echo:
		resp = echo(capture)
	case UserAgent:
		resp = userAgent(req)
	case GetFile:
		resp = s.getFile(capture)
	case PostFile:
		resp = s.postFile(capture, req)
	default:
		resp = notFound()
	}

	return resp.Bytes()
}

// NotFound is the reply used when no route matches or a request is malformed.
func NotFound() []byte {
	return notFound().Bytes()
}

func index() response.Response {
	return response.New(response.StatusOK)
}

func notFound() response.Response {
	return response.New(response.StatusNotFound)
}

func echo(text string) response.Response {
	return response.WithBody(response.StatusOK, "text/plain", []byte(text))
}

func userAgent(req *request.Request) response.Response {
	ua, ok := req.Headers.Lookup("User-Agent")
	if !ok {
		return notFound()
	}
	return response.WithBody(response.StatusOK, "text/plain", []byte(ua))
}
