// Package config provides configuration types and defaults for iqfit.
package config

import (
	"time"

	"github.com/npratt/iqfit/internal/session"
)

// Config holds all configuration for iqfit.
type Config struct {
	Player      PlayerConfig      `yaml:"player" mapstructure:"player"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	Catalog     CatalogConfig     `yaml:"catalog" mapstructure:"catalog"`
	Profile     ProfileConfig     `yaml:"profile" mapstructure:"profile"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// PlayerConfig holds session player settings.
type PlayerConfig struct {
	AutoStart    AutoStartConfig `yaml:"auto_start" mapstructure:"auto_start"`
	TickInterval time.Duration   `yaml:"tick_interval" mapstructure:"tick_interval"` // Wall-clock length of one countdown second
	// CompletionMessage is printed after a confirmed completion. See ExpandMessage.
	CompletionMessage     string `yaml:"completion_message" mapstructure:"completion_message"`
	CompletionMessageFile string `yaml:"completion_message_file" mapstructure:"completion_message_file"` // Takes priority over CompletionMessage
}

// AutoStartConfig selects, per activity, whether each timed step starts
// counting as soon as it is reached.
type AutoStartConfig struct {
	Workout bool `yaml:"workout" mapstructure:"workout"`
	Study   bool `yaml:"study" mapstructure:"study"`
	Recipe  bool `yaml:"recipe" mapstructure:"recipe"`
}

// For returns the auto-start setting for an activity.
func (a AutoStartConfig) For(activity session.Activity) bool {
	switch activity {
	case session.ActivityWorkout:
		return a.Workout
	case session.ActivityStudy:
		return a.Study
	case session.ActivityRecipe:
		return a.Recipe
	default:
		return false
	}
}

// PathsConfig holds file paths for the profile and logs.
type PathsConfig struct {
	Profile  string `yaml:"profile" mapstructure:"profile"`     // TOML file with counters and favorites
	Activity string `yaml:"activity" mapstructure:"activity"`   // JSON lines activity log
	DebugLog string `yaml:"debug_log" mapstructure:"debug_log"` // slog output while the TUI owns the terminal
}

// CatalogConfig holds content catalog settings.
type CatalogConfig struct {
	Dirs         []string `yaml:"dirs" mapstructure:"dirs"`                     // Extra catalog directories, later ones override earlier ones
	PageSize     int      `yaml:"page_size" mapstructure:"page_size"`           // Records per listing page
	CacheMaxCost int64    `yaml:"cache_max_cost" mapstructure:"cache_max_cost"` // Session cache capacity, in steps
}

// ProfileConfig describes the local user.
type ProfileConfig struct {
	User    string `yaml:"user" mapstructure:"user"`
	Premium bool   `yaml:"premium" mapstructure:"premium"` // Unlocks premium content and favorites
}

// LogRotationConfig holds settings for log file rotation.
// Used for the TUI debug log (lumberjack-based automatic rotation).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// DefaultCompletionMessage is printed after a confirmed completion.
const DefaultCompletionMessage = `{{.Title}} logged. {{.Activity}} total: {{.Count}}.`

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			AutoStart: AutoStartConfig{
				Workout: true,
				Study:   false,
				Recipe:  false,
			},
			TickInterval:      time.Second,
			CompletionMessage: DefaultCompletionMessage,
		},
		Paths: PathsConfig{
			Profile:  ".iqfit/profile.toml",
			Activity: ".iqfit/activity.jsonl",
			DebugLog: ".iqfit/debug.log",
		},
		Catalog: CatalogConfig{
			Dirs:         []string{".iqfit/catalog"},
			PageSize:     6,
			CacheMaxCost: 1 << 14,
		},
		Profile: ProfileConfig{
			User:    "",
			Premium: false,
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
