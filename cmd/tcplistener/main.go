package main

import (
	"flag"
	"fmt"
	"log"
	"net"

	"github.com/nhdewitt/tcp-router/internal/request"
	"github.com/nhdewitt/tcp-router/internal/router"
)

// tcplistener prints each request it receives and the route it would take,
// without answering.
func main() {
	addr := flag.String("addr", ":4221", "host:port to listen on")
	limit := flag.Int("buffer-size", request.DefaultBufferSize, "maximum bytes read per request")
	flag.Parse()

	routes, err := router.NewTable(router.DefaultRoutes)
	if err != nil {
		log.Fatalf("error building route table: %v", err)
	}

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("error listening: %v", err.Error())
	}
	defer listener.Close()

	fmt.Println("Listening for TCP traffic on", listener.Addr())
	for _, r := range routes.Routes() {
		fmt.Println("- Route:", r)
	}

	for {
		c, err := listener.Accept()
		if err != nil {
			log.Printf("error accepting connection: %v", err)
			continue
		}
		log.Println("Connection accepted:", c.RemoteAddr())

		req, err := request.RequestFromReader(c, *limit)
		c.Close()
		if err != nil {
			log.Printf("error parsing request: %v", err)
			continue
		}

		fmt.Println("Request line:")
		fmt.Printf("- Method: %s\n", req.RequestLine.Method)
		fmt.Printf("- Target: %s\n", req.RequestLine.RequestTarget)
		fmt.Printf("- Version: %s\n", req.RequestLine.HttpVersion)
		fmt.Println("Headers:")
		for _, line := range req.Headers.Lines() {
			fmt.Printf("- %s\n", line)
		}
		fmt.Println("Body:")
		fmt.Println(string(req.Body))
		if req.Truncated {
			fmt.Println("(truncated)")
		}

		if m, ok := routes.Match(req.RequestLine.Method, req.RequestLine.RequestTarget); ok {
			fmt.Printf("Route: %s (capture %q)\n", m.Route, m.Capture())
		} else {
			fmt.Println("Route: none (default)")
		}
		fmt.Println("Connection to", c.RemoteAddr(), "closed")
	}
}
