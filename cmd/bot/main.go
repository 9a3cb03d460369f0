// Command bot joins a relay as a headless player and wanders the arena.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	cfg "github.com/automoto/orbs-mp/config"
	"github.com/automoto/orbs-mp/game"
	"github.com/automoto/orbs-mp/network"
	"github.com/google/uuid"
)

func main() {
	if err := cfg.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	relay := flag.String("relay", "localhost:8080", "Relay address")
	difficulty := flag.String("difficulty", "normal", "Bot difficulty: easy, normal or hard")
	silent := flag.Bool("silent-relay", false, "The relay does not announce disconnects; time out silent players")
	seed := flag.Uint64("seed", 0, "Random seed (0 = random)")
	flag.Parse()

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	playerID := "bot-" + uuid.NewString()[:8]

	var g *game.Game
	client := network.NewClient(playerID, func(frame []byte) {
		if !g.Deliver(frame) {
			log.Println("[bot] inbox full, dropping frame")
		}
	})
	opts := []game.Option{game.WithRand(rng)}
	if *silent {
		opts = append(opts, game.WithStaleTimeout(cfg.Net.StaleTimeout))
	}
	g = game.New(playerID, client, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := client.Connect(ctx, *relay)
	cancel()
	if err != nil {
		log.Fatalf("Failed to join relay: %v", err)
	}

	bot := game.NewBot(cfg.ParseBotDifficulty(*difficulty), rng)
	loop := game.NewLoop(g, cfg.Arena.TickRate, bot.Update)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down bot...")
		loop.Stop()
	}()

	log.Printf("Bot %s (%s) playing on %s", playerID, *difficulty, *relay)
	loop.Run()
	client.Disconnect()
}
