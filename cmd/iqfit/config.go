package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose     = "verbose"
	FlagConfig      = "config"
	FlagProfileFile = "profile-file"
	FlagActivityLog = "activity-log"
	FlagPremium     = "premium"

	// List command flags
	FlagCategory  = "category"
	FlagQuery     = "query"
	FlagFavorites = "favorites"
	FlagPage      = "page"

	// Play command flags
	FlagLineMode     = "line-mode"
	FlagAutoStart    = "auto-start"
	FlagTickInterval = "tick-interval"
	FlagFromStep     = "from-step"
	FlagRemaining    = "remaining"

	// Activity command flags
	FlagFollow = "follow"
	FlagCount  = "count"

	// Output format flags
	FlagJSON = "json"
)
