package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
)

// tcpsender reads a request from stdin, one line at a time, sends it with
// CRLF line endings and prints the raw response.
func main() {
	addr := flag.String("addr", "localhost:4221", "server host:port")
	flag.Parse()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		log.Fatalf("error connecting: %v", err)
	}
	defer conn.Close()

	r := bufio.NewReader(os.Stdin)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if _, werr := io.WriteString(conn, line+"\r\n"); werr != nil {
				log.Fatalf("write error: %v", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("input error: %v", err)
		}
	}

	if tc, ok := conn.(*net.TCPConn); ok {
		if err := tc.CloseWrite(); err != nil {
			log.Printf("error closing write side: %v", err)
		}
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		log.Fatalf("read error: %v", err)
	}
	fmt.Print(string(resp))
}
