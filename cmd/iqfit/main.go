package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/npratt/iqfit/internal/config"
	"github.com/npratt/iqfit/internal/content"
	"github.com/npratt/iqfit/internal/player"
	"github.com/npratt/iqfit/internal/session"
	"github.com/npratt/iqfit/internal/stats"
	"github.com/npratt/iqfit/internal/timer"
)

var version = "dev"

// app is the state shared by every command once configuration is loaded.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	logLevel *slog.LevelVar
	catalog  *content.Catalog
	profile  *stats.FileStore
	out      io.Writer
}

// Close releases the catalog cache.
func (a *app) Close() {
	if a.catalog != nil {
		a.catalog.Close()
	}
}

// loadApp loads configuration with flag overrides, resolves paths against
// the project root and opens the catalog and the profile.
func loadApp(cmd *cobra.Command, v *viper.Viper, logger *slog.Logger, logLevel *slog.LevelVar) (*app, error) {
	if v.GetBool(FlagVerbose) {
		logLevel.Set(slog.LevelDebug)
		logger.Debug("verbose logging enabled")
	}

	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// Apply CLI flag overrides (only if explicitly set)
	flags := cmd.Flags()
	if flags.Changed(FlagProfileFile) {
		cfg.Paths.Profile = v.GetString(FlagProfileFile)
	}
	if flags.Changed(FlagActivityLog) {
		cfg.Paths.Activity = v.GetString(FlagActivityLog)
	}
	if flags.Changed(FlagPremium) {
		cfg.Profile.Premium = v.GetBool(FlagPremium)
	}

	if err := cfg.ResolvePaths(config.FindProjectRoot("")); err != nil {
		return nil, fmt.Errorf("resolve paths: %w", err)
	}

	catalog, err := content.Load(cfg.Catalog.Dirs,
		content.WithPremium(cfg.Profile.Premium),
		content.WithCacheMaxCost(cfg.Catalog.CacheMaxCost),
	)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	logger.Debug("catalog loaded", "records", catalog.Len(), "dirs", cfg.Catalog.Dirs)

	return &app{
		cfg:      cfg,
		logger:   logger,
		logLevel: logLevel,
		catalog:  catalog,
		profile:  stats.NewFileStore(cfg.Paths.Profile, cfg.Profile.User),
		out:      cmd.OutOrStdout(),
	}, nil
}

// parseActivityArg returns the activity named by the first argument, or the
// empty activity (every activity) when there is none.
func parseActivityArg(args []string) (session.Activity, error) {
	if len(args) == 0 {
		return "", nil
	}
	return session.ParseActivity(args[0])
}

// favoriteIDs gathers the favorite ids of one activity, or of every activity
// when a is empty. The result is never nil so it always restricts a filter.
func (a *app) favoriteIDs(ctx context.Context, activity session.Activity) ([]string, error) {
	activities := session.Activities
	if activity != "" {
		activities = []session.Activity{activity}
	}
	ids := []string{}
	for _, act := range activities {
		favs, err := a.profile.Favorites(ctx, act)
		if err != nil {
			return nil, fmt.Errorf("read favorites: %w", err)
		}
		ids = append(ids, favs...)
	}
	return ids, nil
}

// lockLabel renders the access column of a listing.
func (a *app) lockLabel(r content.Record) string {
	switch {
	case a.catalog.Locked(r):
		return "locked"
	case r.Premium():
		return "premium"
	default:
		return ""
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// newRootCmd builds the command tree around its own viper instance.
func newRootCmd(logger *slog.Logger, logLevel *slog.LevelVar) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("IQFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "iqfit",
		Short: "Guided workouts, study sessions and cookthroughs in the terminal",
		Long: `iqfit browses workout routines, study techniques and recipes and walks you
through one step at a time with a countdown timer.

Finished sessions are counted in your local profile and every playback is
recorded in the activity log.`,
		SilenceUsage: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .iqfit/config.yaml)")
	rootCmd.PersistentFlags().String(FlagProfileFile, "", "Profile file path")
	rootCmd.PersistentFlags().String(FlagActivityLog, "", "Activity log path")
	rootCmd.PersistentFlags().Bool(FlagPremium, false, "Treat the profile as premium")

	// Bind all flags to viper
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "iqfit %s\n", version)
		},
	}

	// List command
	listCmd := &cobra.Command{
		Use:   "list [workouts|study|recipes]",
		Short: "List catalog content",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activity, err := parseActivityArg(args)
			if err != nil {
				return err
			}
			a, err := loadApp(cmd, v, logger, logLevel)
			if err != nil {
				return err
			}
			defer a.Close()

			filter := content.Filter{
				Activity: activity,
				Category: v.GetString(FlagCategory),
				Query:    v.GetString(FlagQuery),
			}
			if v.GetBool(FlagFavorites) {
				if filter.Favorites, err = a.favoriteIDs(cmd.Context(), activity); err != nil {
					return err
				}
			}

			records, info := content.Page(a.catalog.Filter(filter), v.GetInt(FlagPage), a.cfg.Catalog.PageSize)

			if jsonOut, _ := cmd.Flags().GetBool(FlagJSON); jsonOut {
				if records == nil {
					records = []content.Record{}
				}
				return printJSON(a.out, records)
			}

			if info.Total == 0 {
				fmt.Fprintln(a.out, "No content matches")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tLEVEL\tMIN\tACCESS")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					r.ID, r.Title, r.Category, r.DifficultyLevel, r.DurationMinutes, a.lockLabel(r))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "page %d/%d (%d items)\n", info.Number, info.Pages, info.Total)
			return nil
		},
	}

	listCmd.Flags().String(FlagCategory, "", "Only show this category")
	listCmd.Flags().String(FlagQuery, "", "Search titles, descriptions and categories")
	listCmd.Flags().Bool(FlagFavorites, false, "Only show favorites")
	listCmd.Flags().Int(FlagPage, 1, "Page number")
	listCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
	// Output format flags are read per command, not through viper.
	listCmd.Flags().Bool(FlagJSON, false, "Output as JSON")

	// Show command
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item and its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, v, logger, logLevel)
			if err != nil {
				return err
			}
			defer a.Close()

			r, err := a.catalog.Get(args[0])
			if err != nil {
				return err
			}
			sess := session.FromSource(r.Source())
			pres := player.PresentationFor(sess.Activity())

			fmt.Fprintf(a.out, "%s  [%s]\n", r.Title, r.ID)
			fmt.Fprintf(a.out, "%s", pres.Subtitle)
			if r.Category != "" {
				fmt.Fprintf(a.out, " · %s", r.Category)
			}
			if r.DifficultyLevel != "" {
				fmt.Fprintf(a.out, " · %s", r.DifficultyLevel)
			}
			if label := a.lockLabel(r); label != "" {
				fmt.Fprintf(a.out, " · %s", label)
			}
			fmt.Fprintln(a.out)
			if r.Description != "" {
				fmt.Fprintf(a.out, "\n%s\n", r.Description)
			}

			fmt.Fprintf(a.out, "\n%d steps, %s timed\n", sess.Len(), timer.FormatClock(sess.TotalSeconds()))
			for i, st := range sess.Steps() {
				fmt.Fprintf(a.out, "%3d. %s\n", i+1, pres.RenderStep(st))
			}
			return nil
		},
	}

	// Play command
	playCmd := &cobra.Command{
		Use:   "play <id>",
		Short: "Play a session step by step",
		Long: `Play a session step by step with a countdown for every timed step.

The full-screen player is used on a terminal; with --line-mode, or when
output is not a terminal, commands are read one per line from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, v, logger, logLevel)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.play(cmd, v, args[0])
		},
	}

	playCmd.Flags().Bool(FlagLineMode, false, "Read commands from stdin instead of the full-screen player")
	playCmd.Flags().Bool(FlagAutoStart, false, "Start each timed step automatically (default per activity from config)")
	playCmd.Flags().Duration(FlagTickInterval, 0, "Wall-clock length of one countdown second")
	playCmd.Flags().Int(FlagFromStep, 0, "Resume at this step (1-based)")
	playCmd.Flags().Int(FlagRemaining, 0, "Seconds left on the resumed step")
	playCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completed session counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, v, logger, logLevel)
			if err != nil {
				return err
			}
			defer a.Close()

			counters, err := a.profile.Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("read profile: %w", err)
			}

			if jsonOut, _ := cmd.Flags().GetBool(FlagJSON); jsonOut {
				return printJSON(a.out, map[string]int{
					"workouts":       counters.Workouts,
					"study_sessions": counters.StudySessions,
					"recipes_tried":  counters.RecipesTried,
				})
			}

			fmt.Fprintf(a.out, "Workouts:       %d\n", counters.Workouts)
			fmt.Fprintf(a.out, "Study sessions: %d\n", counters.StudySessions)
			fmt.Fprintf(a.out, "Recipes tried:  %d\n", counters.RecipesTried)
			return nil
		},
	}
	statsCmd.Flags().Bool(FlagJSON, false, "Output as JSON")

	// Favorite command
	favoriteCmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, v, logger, logLevel)
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.cfg.Profile.Premium {
				return errors.New("favorites require a premium profile")
			}

			r, err := a.catalog.Get(args[0])
			if err != nil {
				return err
			}
			added, err := a.profile.ToggleFavorite(cmd.Context(), r.Activity(), r.ID)
			if err != nil {
				return fmt.Errorf("update favorites: %w", err)
			}

			if added {
				fmt.Fprintf(a.out, "Added %q to favorites\n", r.Title)
			} else {
				fmt.Fprintf(a.out, "Removed %q from favorites\n", r.Title)
			}
			return nil
		},
	}

	// Activity command
	activityCmd := &cobra.Command{
		Use:   "activity",
		Short: "View recent playback activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, v, logger, logLevel)
			if err != nil {
				return err
			}
			defer a.Close()

			if v.GetBool(FlagFollow) {
				return tailFollow(cmd.Context(), a.out, a.cfg.Paths.Activity)
			}
			return tailLast(a.out, a.cfg.Paths.Activity, v.GetInt(FlagCount))
		},
	}

	activityCmd.Flags().Bool(FlagFollow, false, "Follow the activity log (like tail -f)")
	activityCmd.Flags().Int(FlagCount, 20, "Number of recent events to show")
	activityCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})

	// Register all commands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(activityCmd)

	return rootCmd
}

func main() {
	logLevel := &slog.LevelVar{}
	logger := SetupLoggerWithWriter(os.Stderr, logLevel)

	rootCmd := newRootCmd(logger, logLevel)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
