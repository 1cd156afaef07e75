package handler

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nhdewitt/tcp-router/internal/request"
	"github.com/nhdewitt/tcp-router/internal/response"
)

var (
	ErrNoDirectory      = errors.New("no file directory configured")
	ErrOutsideDirectory = errors.New("path escapes file directory")
)

// resolve joins name onto the base directory. Names that climb out of it
// with ".." segments, or name the directory itself, are rejected.
func (s *Set) resolve(name string) (string, error) {
	if s.dir == "" {
		return "", ErrNoDirectory
	}

	path := filepath.Join(s.dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOutsideDirectory, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideDirectory, name)
	}

	return path, nil
}

func (s *Set) getFile(name string) response.Response {
	path, err := s.resolve(name)
	if err != nil {
		return notFound()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return notFound()
	}

	return response.WithBody(response.StatusOK, "application/octet-stream", data)
}

func (s *Set) postFile(name string, req *request.Request) response.Response {
	path, err := s.resolve(name)
	if err != nil {
		log.Printf("Rejected upload %q: %v", name, err)
		return response.New(response.StatusBadRequest)
	}

	// A partial body would be written as if it were the whole file.
	if req.Truncated {
		log.Printf("Rejected upload %q: request exceeds read buffer", name)
		return response.New(response.StatusPayloadTooLarge)
	}

	// Without a length there is no body to write.
	if _, ok := req.ContentLength(); !ok {
		log.Printf("Rejected upload %q: no Content-Length", name)
		return response.New(response.StatusLengthRequired)
	}

	if err := os.WriteFile(path, req.Body, 0o644); err != nil {
		log.Printf("Error writing %s: %v", path, err)
		return response.New(response.StatusInternalServerError)
	}

	return response.New(response.StatusCreated)
}
