// Command healthcheck probes the server's gRPC health endpoint and exits
// non-zero unless it reports SERVING. Suitable as a container HEALTHCHECK.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/client/health"
)

func main() {
	addr := flag.String("a", "localhost:50051", "gRPC health endpoint address")
	service := flag.String("s", "", "service name to check, empty for the whole server")
	timeout := flag.Duration("timeout", 3*time.Second, "probe timeout")
	flag.Parse()

	c, err := health.NewGRPCClient(*addr)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := c.Check(ctx, *service); err != nil {
		log.Printf("unhealthy: %v", err)
		cancel()
		_ = c.Close()
		os.Exit(1)
	}

	log.Println("ok")
}
