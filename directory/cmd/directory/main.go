package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/directory"
)

func main() {
	if err := cfg.LoadEnv(); err != nil {
		log.Fatalf("[directory] %v", err)
	}

	port := flag.Int("port", 8080, "HTTP listen port")
	ttl := flag.Duration("ttl", cfg.Relay.DirectoryTTL, "Relay TTL before expiry")
	flag.Parse()

	reg := directory.NewRegistry(*ttl)
	defer reg.Stop()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("[directory] listing relays on %s, expiring after %s of silence", addr, *ttl)
	if err := http.ListenAndServe(addr, directory.NewMux(reg)); err != nil {
		log.Fatalf("[directory] fatal: %v", err)
	}
}
