package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/server/core"
)

func main() {
	if err := cfg.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	port := flag.Uint("port", cfg.Relay.Port, "Relay port")
	legacy := flag.Bool("legacy-disconnect", !cfg.Relay.AnnounceDisconnect, "Do not broadcast orb-removed when a player disconnects")
	static := flag.String("static", "", "Directory of static client files served at /")
	name := flag.String("name", "Orbs Relay", "Relay display name for the directory")
	master := flag.String("master", "", "Relay directory URL (empty = do not register)")
	address := flag.String("address", "", "Public host:port advertised to the directory")
	region := flag.String("region", "", "Region advertised to the directory")
	flag.Parse()

	opts := core.DefaultOptions()
	opts.AnnounceDisconnect = !*legacy
	opts.StaticDir = *static
	server := core.NewServer(opts)

	var reg *core.Registration
	if *master != "" {
		addr := *address
		if addr == "" {
			addr = fmt.Sprintf("localhost:%d", *port)
		}
		reg = core.NewRegistration(*master, *name, addr, *region, server)
		reg.Start()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down relay...")
		if reg != nil {
			reg.Stop()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting relay %q on port %d", *name, *port)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Relay error: %v", err)
	}
}
