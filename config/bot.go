package config

// BotDifficulty affects reaction time and decision quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// BotDifficultyConfig holds tuning values for bot behavior at a specific difficulty
type BotDifficultyConfig struct {
	ReactionDelay int     // Ticks between re-evaluations
	ChaseRange    float64 // Distance at which prey and threats are noticed
	SplitRange    float64 // Prey closer than this triggers a split
	WanderRadius  float64 // Distance of a random wander point
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds bot AI configuration
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionDelay: 30, // 0.5 second reaction time
				ChaseRange:    300,
				SplitRange:    0,
				WanderRadius:  400,
			},
			BotDifficultyNormal: {
				ReactionDelay: 15,
				ChaseRange:    450,
				SplitRange:    120,
				WanderRadius:  600,
			},
			BotDifficultyHard: {
				ReactionDelay: 5, // Near-instant reaction
				ChaseRange:    600,
				SplitRange:    200,
				WanderRadius:  800,
			},
		},
	}
}

// ParseBotDifficulty maps a flag value to a difficulty, defaulting to normal.
func ParseBotDifficulty(s string) BotDifficulty {
	switch s {
	case "easy":
		return BotDifficultyEasy
	case "hard":
		return BotDifficultyHard
	}
	return BotDifficultyNormal
}
