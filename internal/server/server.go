package server

import (
	"errors"
	"io"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nhdewitt/tcp-router/internal/config"
	"github.com/nhdewitt/tcp-router/internal/handler"
	"github.com/nhdewitt/tcp-router/internal/request"
	"github.com/nhdewitt/tcp-router/internal/router"
)

const (
	// lingerTimeout and lingerLimit bound how long and how much unread input
	// is drained before a connection is closed.
	lingerTimeout = 500 * time.Millisecond
	lingerLimit   = 256 << 10
)

type Server struct {
	listener    net.Listener
	isListening atomic.Bool
	routes      *router.Table
	handler     Handler
	bufferSize  int

	// slots holds one token per running worker.
	slots      chan struct{}
	done       chan struct{}
	listenDone chan struct{}
	workers    sync.WaitGroup
}

// Serve binds cfg.Addr and starts accepting connections in the background.
// At most cfg.MaxConns connections are handled at once; further ones wait in
// the listen backlog.
func Serve(cfg config.Config, routes *router.Table, h Handler) (*Server, error) {
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		listener:   listener,
		routes:     routes,
		handler:    h,
		bufferSize: cfg.BufferSize,
		slots:      make(chan struct{}, max(cfg.MaxConns, 1)),
		done:       make(chan struct{}),
		listenDone: make(chan struct{}),
	}
	s.isListening.Store(true)
	go s.listen()

	return s, nil
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting and waits for running connections to finish.
func (s *Server) Close() error {
	if !s.isListening.CompareAndSwap(true, false) {
		return nil
	}

	close(s.done)
	err := s.listener.Close()
	<-s.listenDone
	s.workers.Wait()

	return err
}

func (s *Server) listen() {
	defer close(s.listenDone)

	for {
		select {
		case s.slots <- struct{}{}:
		case <-s.done:
			return
		}

		conn, err := s.listener.Accept()
		if err != nil {
			<-s.slots
			if !s.isListening.Load() {
				return
			}
			log.Printf("Error accepting connection: %v", err)
			continue
		}

		s.workers.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.workers.Done()
	defer func() { <-s.slots }()
	defer closeConn(conn)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic handling connection from %s: %v", conn.RemoteAddr(), r)
		}
	}()

	var resp []byte
	req, err := request.RequestFromReader(conn, s.bufferSize)
	switch {
	case err == nil:
		resp = s.dispatch(req)
	case errors.Is(err, request.ErrMalformedRequest):
		log.Printf("Malformed request from %s: %v", conn.RemoteAddr(), err)
		resp = handler.NotFound()
	case errors.Is(err, request.ErrEmptyRequest):
		log.Printf("Empty request from %s", conn.RemoteAddr())
		return
	default:
		log.Printf("Error reading from %s: %v", conn.RemoteAddr(), err)
		return
	}

	if _, err := conn.Write(resp); err != nil {
		log.Printf("Error writing to %s: %v", conn.RemoteAddr(), err)
	}
}

// dispatch routes req and runs the chosen handler, falling back to the
// default handler when no route matches.
func (s *Server) dispatch(req *request.Request) []byte {
	method, target := req.RequestLine.Method, req.RequestLine.RequestTarget

	m, ok := s.routes.Match(method, target)
	if !ok {
		log.Printf("%s %s -> %s", method, target, handler.Default)
		return s.handler.Handle(handler.Default, req, "")
	}
	log.Printf("%s %s -> %s", method, target, m.Route.Handler)

	return s.handler.Handle(m.Route.Handler, req, m.Capture())
}

// closeConn half-closes conn and discards what the client still sends before
// closing it. Closing with unread input makes the kernel reset the connection,
// which can destroy the response before the client reads it.
func closeConn(conn net.Conn) {
	defer conn.Close()

	cw, ok := conn.(interface{ CloseWrite() error })
	if !ok {
		return
	}
	if err := cw.CloseWrite(); err != nil {
		return
	}
	_ = conn.SetReadDeadline(time.Now().Add(lingerTimeout))
	_, _ = io.Copy(io.Discard, io.LimitReader(conn, lingerLimit))
}
