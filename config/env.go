package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the defaults set in init.
const (
	EnvPort               = "ORBS_PORT"
	EnvAnnounceDisconnect = "ORBS_ANNOUNCE_DISCONNECT"
	EnvSendQueueSize      = "ORBS_SEND_QUEUE"
	EnvArenaWidth         = "ORBS_ARENA_WIDTH"
	EnvArenaHeight        = "ORBS_ARENA_HEIGHT"
)

// LoadEnv loads the given dotenv files (".env" when none are given) and
// applies any ORBS_* overrides. A missing file is not an error.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env: %w", err)
		}
	} else {
		log.Println("[config] loaded environment file")
	}
	return applyEnv()
}

func applyEnv() error {
	if v, ok := GetEnvVariable(EnvPort); ok {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		Relay.Port = uint(port)
	}
	if v, ok := GetEnvVariable(EnvAnnounceDisconnect); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAnnounceDisconnect, err)
		}
		Relay.AnnounceDisconnect = b
	}
	if v, ok := GetEnvVariable(EnvSendQueueSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: invalid queue size %q", EnvSendQueueSize, v)
		}
		Relay.SendQueueSize = n
	}
	if v, ok := GetEnvVariable(EnvArenaWidth); ok {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil || w <= 0 {
			return fmt.Errorf("%s: invalid width %q", EnvArenaWidth, v)
		}
		Arena.Width = w
	}
	if v, ok := GetEnvVariable(EnvArenaHeight); ok {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil || h <= 0 {
			return fmt.Errorf("%s: invalid height %q", EnvArenaHeight, v)
		}
		Arena.Height = h
	}
	return nil
}

// GetEnvVariable returns the value of v and whether it was set to a non-empty value.
func GetEnvVariable(v string) (string, bool) {
	if v == "" {
		return "", false
	}
	b := os.Getenv(v)
	if b == "" {
		return "", false
	}
	return b, true
}
