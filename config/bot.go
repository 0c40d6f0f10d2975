package config

import "time"

// BotDifficulty affects how often the scripted client fires and how far it looks
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for the headless client at one difficulty
type BotDifficultyConfig struct {
	ShootInterval time.Duration // minimum time between shots
	AimRange      float64       // only targets closer than this are shot at
	AimJitter     float64       // radians of random aim error
}

// BotConfigData holds all scripted-input configuration
type BotConfigData struct {
	Difficulties      map[BotDifficulty]BotDifficultyConfig
	WaypointTolerance float64 // distance at which a waypoint counts as reached
	PatrolRadius      float64 // circle patrolled when the arena has no spawn points
}

// Bot holds scripted client configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ShootInterval: 1500 * time.Millisecond,
				AimRange:      15.0,
				AimJitter:     0.25,
			},
			BotDifficultyNormal: {
				ShootInterval: 800 * time.Millisecond,
				AimRange:      25.0,
				AimJitter:     0.1,
			},
			BotDifficultyHard: {
				ShootInterval: 300 * time.Millisecond,
				AimRange:      40.0,
				AimJitter:     0.0,
			},
		},
		WaypointTolerance: 0.5,
		PatrolRadius:      8.0,
	}
}
