// Command emailengine is a smoke-test entrypoint: it builds an Engine from
// the default configuration and validates a handful of addresses passed on
// the command line (or a built-in sample set), printing each
// ValidationResult as JSON. There is no HTTP server here — internal/engine
// is the package boundary an HTTP layer would sit behind.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"emailengine/internal/config"
	"emailengine/internal/engine"
)

func main() {
	cfg := config.FromEnv()
	e := engine.New(cfg)

	addrs := os.Args[1:]
	if len(addrs) == 0 {
		addrs = []string{
			"user@gmail.com",
			"first.last+promo@googlemail.com",
			"admin@example.com",
			"broken@gmial.com",
			"not-an-email",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := engine.DefaultOptions()
	for _, addr := range addrs {
		result, err := e.Validate(ctx, addr, opts)
		if err != nil {
			log.Printf("validate %q: %v", addr, err)
			continue
		}
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Printf("marshal result for %q: %v", addr, err)
			continue
		}
		fmt.Println(string(out))
	}
}
