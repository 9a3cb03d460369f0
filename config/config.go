package config

import (
	"image/color"
	"time"

	"github.com/automoto/orbs-mp/shared/netconfig"
)

// OrbConfig contains growth, split and merge configuration for orbs
type OrbConfig struct {
	// Size
	StartRadius      float64
	BaseSpriteRadius float64 // Radius at which the sprite is drawn at scale 1
	GrowTweenSeconds float32 // Duration of the cosmetic scale transition

	// Split mechanics
	SplitThreshold float64       // Orbs smaller than this cannot split
	LaunchSpeed    float64       // Units per second given to a fresh fragment
	LaunchDamping  float64       // Fraction of launch velocity kept after one second
	SpawnedSpeed   float64       // Launch speed below which a fragment stops being "spawned"
	SpawnedDelay   time.Duration // Upper bound on the spawned window
	ReformDelay    time.Duration // Cooldown before a fragment may re-merge

	// Eating
	EatMargin float64 // Attacker must be strictly larger than victim * EatMargin
}

// MovementConfig contains the target-seeking controller values
type MovementConfig struct {
	BaseSpeed     float64 // Units per tick for a zero-radius orb
	SizeFactor    float64 // Speed lost per unit of radius
	MinSpeed      float64 // Floor so very large orbs still move
	SlowdownRange float64 // Distance over which orbs decelerate toward their target
}

// ArenaConfig describes the playable rectangle
type ArenaConfig struct {
	Width     float64
	Height    float64
	CellSize  int // Broad-phase cell size
	SpawnX    float64
	SpawnY    float64
	TickRate  int // Local simulation ticks per second
	MaxDelta  time.Duration
	FrameSize int // Client window size in pixels
}

// CameraConfig contains the client camera follow values
type CameraConfig struct {
	Smoothing     float64 // Fraction of the remaining distance covered per frame
	ReferenceSize float64 // Player size at which zoom is 1
	MinZoom       float64
	ZoomSmoothing float64
}

// FoodConfig contains food spawner configuration
type FoodConfig struct {
	SpawnInterval time.Duration // Simulated time between spawns
	Radius        float64
	Growth        float64 // Radius gained when eaten
	Variants      int     // Number of visual variants
	MaxCount      int
}

// NetConfig contains replication and reconciliation configuration
type NetConfig struct {
	PositionInterval time.Duration // Cadence of outbound position snapshots
	BlendFactor      float64       // Per-tick interpolation weight for remote orbs
	PruneMissing     bool          // Drop remote orbs absent from their owner's snapshot
	InboxSize        int           // Buffered inbound messages between ticks
	SendQueueSize    int           // Outbound frames buffered before Publish drops
	StaleTimeout     time.Duration // Silence after which a remote player is dropped on relays without notices
	WriteTimeout     time.Duration
}

// RelayConfig contains relay server configuration
type RelayConfig struct {
	Port               uint
	SendQueueSize      int           // Per-connection outbound frames before dropping
	ReadLimit          int64         // Max inbound frame size in bytes
	PingInterval       time.Duration // Websocket ping cadence
	WriteTimeout       time.Duration
	AnnounceDisconnect bool // Broadcast a removal notice for departed players
	HeartbeatInterval  time.Duration
	DirectoryTTL       time.Duration
}

var Orb OrbConfig
var Movement MovementConfig
var Arena ArenaConfig
var Camera CameraConfig
var Food FoodConfig
var Net NetConfig
var Relay RelayConfig

// Shared RGBA color constants
var (
	White      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Background = color.RGBA{R: 18, G: 18, B: 24, A: 255}
	GridLine   = color.RGBA{R: 40, G: 40, B: 52, A: 255}
	LocalOrb   = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen = color.RGBA{R: 100, G: 255, B: 100, A: 255}
)

// EnemyColors cycles per remote player
var EnemyColors = []color.RGBA{
	{R: 255, G: 60, B: 60, A: 255},
	{R: 0, G: 100, B: 255, A: 255},
	{R: 255, G: 140, B: 0, A: 255},
	{R: 128, G: 0, B: 255, A: 255},
	{R: 255, G: 0, B: 255, A: 255},
}

// FoodColors indexed by food variant
var FoodColors = []color.RGBA{
	{R: 255, G: 255, B: 0, A: 255},
	{R: 100, G: 180, B: 255, A: 255},
	{R: 255, G: 180, B: 50, A: 255},
	{R: 100, G: 255, B: 100, A: 255},
}

func init() {
	Orb = OrbConfig{
		StartRadius:      30,
		BaseSpriteRadius: 32,
		GrowTweenSeconds: 0.25,

		SplitThreshold: 20,
		LaunchSpeed:    600,
		LaunchDamping:  0.05, // keeps 5% of launch speed after one second
		SpawnedSpeed:   200,
		SpawnedDelay:   200 * time.Millisecond,
		ReformDelay:    10 * time.Second,

		EatMargin: 1.2,
	}

	Movement = MovementConfig{
		BaseSpeed:     16,
		SizeFactor:    0.05,
		MinSpeed:      1,
		SlowdownRange: 100,
	}

	Arena = ArenaConfig{
		Width:     4000,
		Height:    4000,
		CellSize:  64,
		SpawnX:    2000,
		SpawnY:    2000,
		TickRate:  60,
		MaxDelta:  100 * time.Millisecond,
		FrameSize: 900,
	}

	Camera = CameraConfig{
		Smoothing:     0.15,
		ReferenceSize: 60,
		MinZoom:       0.35,
		ZoomSmoothing: 0.05,
	}

	Food = FoodConfig{
		SpawnInterval: time.Second,
		Radius:        8,
		Growth:        1,
		Variants:      len(FoodColors),
		MaxCount:      500,
	}

	Net = NetConfig{
		PositionInterval: netconfig.PositionInterval,
		BlendFactor:      0.2,
		PruneMissing:     true,
		InboxSize:        256,
		SendQueueSize:    64,
		StaleTimeout:     5 * time.Second,
		WriteTimeout:     5 * time.Second,
	}

	Relay = RelayConfig{
		Port:               netconfig.DefaultPort,
		SendQueueSize:      64,
		ReadLimit:          1 << 20, // 1MB
		PingInterval:       25 * time.Second,
		WriteTimeout:       10 * time.Second,
		AnnounceDisconnect: true,
		HeartbeatInterval:  30 * time.Second,
		DirectoryTTL:       90 * time.Second,
	}
}
