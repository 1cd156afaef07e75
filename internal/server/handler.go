package server

import (
	"github.com/nhdewitt/tcp-router/internal/handler"
	"github.com/nhdewitt/tcp-router/internal/request"
)

// Handler builds the encoded response for a routed request. *handler.Set
// is the implementation used by the server binary.
type Handler interface {
	Handle(id handler.ID, req *request.Request, capture string) []byte
}
