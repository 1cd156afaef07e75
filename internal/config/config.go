package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nhdewitt/tcp-router/internal/request"
)

const (
	DefaultAddr     = "127.0.0.1:4221"
	DefaultMaxConns = 128
	minBufferSize   = 64
)

// Config is built once at startup and only read afterwards.
type Config struct {
	Addr string
	// Directory is the base for the /files handlers. Empty disables them.
	Directory  string
	MaxConns   int
	BufferSize int
}

func Default() Config {
	return Config{
		Addr:       DefaultAddr,
		MaxConns:   DefaultMaxConns,
		BufferSize: request.DefaultBufferSize,
	}
}

// FromArgs parses command-line flags (without the program name) on top of
// Default and validates the result.
func FromArgs(name string, args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "host:port to listen on")
	fs.StringVar(&cfg.Directory, "directory", cfg.Directory, "directory served under /files/")
	fs.IntVar(&cfg.MaxConns, "max-conns", cfg.MaxConns, "maximum connections handled at once")
	fs.IntVar(&cfg.BufferSize, "buffer-size", cfg.BufferSize, "maximum bytes read per request")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.MaxConns < 1 {
		errs = append(errs, fmt.Errorf("max-conns must be at least 1, got %d", c.MaxConns))
	}
	if c.BufferSize < minBufferSize {
		errs = append(errs, fmt.Errorf("buffer-size must be at least %d, got %d", minBufferSize, c.BufferSize))
	}
	if c.Directory != "" {
		info, err := os.Stat(c.Directory)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("directory: %w", err))
		case !info.IsDir():
			errs = append(errs, fmt.Errorf("directory: %s is not a directory", c.Directory))
		}
	}

	return errors.Join(errs...)
}
