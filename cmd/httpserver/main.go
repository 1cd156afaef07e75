package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhdewitt/tcp-router/internal/config"
	"github.com/nhdewitt/tcp-router/internal/handler"
	"github.com/nhdewitt/tcp-router/internal/router"
	"github.com/nhdewitt/tcp-router/internal/server"
)

func main() {
	cfg, err := config.FromArgs(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	routes, err := router.NewTable(router.DefaultRoutes)
	if err != nil {
		log.Fatalf("Error building route table: %v", err)
	}

	server, err := server.Serve(cfg, routes, handler.NewSet(cfg.Directory))
	if err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
	defer server.Close()
	log.Println("Server started on", server.Addr())
	if cfg.Directory != "" {
		log.Println("Serving files from", cfg.Directory)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Server gracefully stopped")
}
