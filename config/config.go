package config

import (
	"time"

	"github.com/automoto/arena-mp/shared/protocol"
)

// NetConfig contains client networking settings
type NetConfig struct {
	ServerURL      string
	DialTimeout    time.Duration
	UpdateHz       int           // outbound update rate, independent of render rate
	ResendInterval time.Duration // an unchanged pose is re-sent this often
	SendQueue      int           // frames buffered before Send starts dropping
	EventBuffer    int           // pending bullet/hit events between network and render
}

// InterpConfig contains remote avatar smoothing settings
type InterpConfig struct {
	ConvergenceRate float64 // k in displayed += (target-displayed)*min(1, k*dt)
	SnapDistance    float64 // targets further than this are snapped to, not smoothed
}

// BulletConfig contains bullet tuning. Speed and TTL must match every other
// client since neither is networked.
type BulletConfig struct {
	Speed  float64
	TTL    time.Duration
	Radius float64
	Damage int
}

// AvatarConfig contains player collision and presentation settings
type AvatarConfig struct {
	Radius        float64
	Height        float64
	MoveSpeed     float64 // world units per second
	JumpSpeed     float64
	Gravity       float64
	FlashDuration float32 // seconds
}

// ArenaConfig describes the collision space used on the client
type ArenaConfig struct {
	Width, Depth  float64 // used when no map is loaded
	UnitsPerPixel float64 // TMX pixels to world units
	SpaceScale    float64 // world units to resolv space units
	CellSize      int     // resolv cell size in space units
}

// ProfileConfig names the persisted client profile
type ProfileConfig struct {
	AppName         string
	DefaultNickname string
}

var Net NetConfig
var Interp InterpConfig
var Bullet BulletConfig
var Avatar AvatarConfig
var Arena ArenaConfig
var Profile ProfileConfig

func init() {
	Net = NetConfig{
		ServerURL:      "ws://localhost:7373/ws",
		DialTimeout:    5 * time.Second,
		UpdateHz:       protocol.UpdateHz,
		ResendInterval: time.Second,
		SendQueue:      64,
		EventBuffer:    64,
	}

	Interp = InterpConfig{
		ConvergenceRate: protocol.ConvergenceRate, // ~90% within ~230ms
		SnapDistance:    20.0,
	}

	Bullet = BulletConfig{
		Speed:  protocol.BulletSpeed,
		TTL:    protocol.BulletTTL,
		Radius: 0.1,
		Damage: protocol.HitDamage,
	}

	Avatar = AvatarConfig{
		Radius:        0.5,
		Height:        1.8,
		MoveSpeed:     6.0,
		JumpSpeed:     6.0,
		Gravity:       18.0,
		FlashDuration: 0.25,
	}

	Arena = ArenaConfig{
		Width:         60,
		Depth:         60,
		UnitsPerPixel: 1.0 / 16.0,
		SpaceScale:    16,
		CellSize:      32,
	}

	Profile = ProfileConfig{
		AppName:         "arenamp",
		DefaultNickname: "player",
	}
}
