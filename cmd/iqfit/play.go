package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/npratt/iqfit/internal/config"
	"github.com/npratt/iqfit/internal/content"
	"github.com/npratt/iqfit/internal/events"
	"github.com/npratt/iqfit/internal/player"
	"github.com/npratt/iqfit/internal/session"
	"github.com/npratt/iqfit/internal/shutdown"
	"github.com/npratt/iqfit/internal/timer"
	"github.com/npratt/iqfit/internal/tui"
)

// shutdownTimeout bounds how long a signalled playback gets to flush the
// activity log.
const shutdownTimeout = 5 * time.Second

// playOutcome is what the player reported through its callbacks.
type playOutcome struct {
	completed bool
	resume    *player.Resume
}

// play runs one session to completion or exit and reports the result.
func (a *app) play(cmd *cobra.Command, v *viper.Viper, id string) error {
	sess, err := a.catalog.Session(id)
	if errors.Is(err, content.ErrLocked) {
		return fmt.Errorf("%w: run with --premium or set profile.premium in config", err)
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	autoStart := a.cfg.Player.AutoStart.For(sess.Activity())
	if flags.Changed(FlagAutoStart) {
		autoStart = v.GetBool(FlagAutoStart)
	}
	tickInterval := a.cfg.Player.TickInterval
	if flags.Changed(FlagTickInterval) {
		tickInterval = v.GetDuration(FlagTickInterval)
	}
	lineMode := v.GetBool(FlagLineMode) || !term.IsTerminal(int(os.Stdout.Fd()))

	ctx := cmd.Context()

	// Create event router and activity log sink
	router := events.NewRouter(events.DefaultBufferSize)
	logSink := events.NewLogSink(a.cfg.Paths.Activity)
	sinkCtx, sinkCancel := context.WithCancel(ctx)
	defer sinkCancel()
	if err := logSink.Start(sinkCtx, router.Subscribe()); err != nil {
		router.Close()
		return fmt.Errorf("start activity log: %w", err)
	}

	// TUI mode: redirect logger to file before creating the player
	logger := a.logger
	if !lineMode {
		tuiLog := SetupTUILogger(a.cfg.Paths.DebugLog, a.logLevel, a.cfg.LogRotation)
		defer func() { _ = tuiLog.Close() }()
		logger = tuiLog.Logger
	}

	var outcome playOutcome
	opts := []player.Option{
		player.WithAutoStart(autoStart),
		player.WithStatsStore(a.profile),
		player.WithEmitter(router),
		player.WithLogger(logger),
		player.WithOnComplete(func() { outcome.completed = true }),
		player.WithOnBack(func(r *player.Resume) { outcome.resume = r }),
	}
	if flags.Changed(FlagFromStep) {
		opts = append(opts, player.WithResume(&player.Resume{
			Session:          sess,
			Index:            v.GetInt(FlagFromStep) - 1,
			SecondsRemaining: v.GetInt(FlagRemaining),
		}))
	}
	p := player.New(sess, opts...)

	uiOpts := []tui.Option{
		tui.WithTickInterval(tickInterval),
		tui.WithLineMode(lineMode),
		tui.WithIO(cmd.InOrStdin(), a.out),
	}
	if lineMode {
		uiOpts = append(uiOpts, tui.WithEvents(router.SubscribeBuffered(events.DefaultBufferSize)))
	}
	ui := tui.New(p, uiOpts...)

	logger.Info("playback starting",
		"version", version,
		"run_id", p.RunID(),
		"content_id", sess.ID(),
		"activity", sess.Activity(),
		"auto_start", autoStart,
		"line_mode", lineMode,
	)

	err = shutdown.RunWithGracefulShutdown(ctx, logger, shutdownTimeout,
		ui.Run,
		func(context.Context) error {
			router.Close()
			return logSink.Stop()
		},
	)
	if err != nil {
		return err
	}

	return a.report(ctx, p, outcome)
}

// report prints the completion message or the resume hint.
func (a *app) report(ctx context.Context, p *player.Player, outcome playOutcome) error {
	sess := p.Session()

	if outcome.completed {
		template, err := a.cfg.Player.LoadCompletionMessage()
		if err != nil {
			a.logger.Warn("completion message unavailable", "error", err)
			template = config.DefaultCompletionMessage
		}
		count := 0
		if counters, err := a.profile.Get(ctx); err == nil {
			count = counters.For(sess.Activity())
		}
		fmt.Fprintln(a.out, config.ExpandMessage(template, config.MessageVars{
			Title:    sess.Title(),
			Activity: activityLabel(sess.Activity()),
			Elapsed:  timer.FormatClock(p.Elapsed()),
			Count:    count,
		}))
		return nil
	}

	// A resume point on the first step is just a fresh start.
	if r := outcome.resume; r != nil && r.Index > 0 && sess.ID() != "" {
		fmt.Fprintf(a.out, "Resume later with: iqfit play %s --%s %d --%s %d\n",
			sess.ID(), FlagFromStep, r.Index+1, FlagRemaining, r.SecondsRemaining)
	}
	return nil
}

// activityLabel names an activity's counter for messages.
func activityLabel(a session.Activity) string {
	switch a {
	case session.ActivityStudy:
		return "Study sessions"
	case session.ActivityRecipe:
		return "Recipes tried"
	default:
		return "Workouts"
	}
}

// tailLast prints the last n activity log entries.
func tailLast(w io.Writer, path string, n int) error {
	lines, err := events.Tail(path, n)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintln(w, "No activity yet")
		return nil
	}
	for _, line := range lines {
		fmt.Fprintln(w, events.FormatLine(line))
	}
	return nil
}

// waitForFile waits for a file to be created and returns the opened file.
func waitForFile(ctx context.Context, path string) (*os.File, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(500 * time.Millisecond):
			file, err := os.Open(path)
			if err == nil {
				return file, nil
			}
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("open file: %w", err)
			}
		}
	}
}

// tailFollow follows the activity log and prints new entries as they appear.
func tailFollow(ctx context.Context, w io.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("open log file: %w", err)
		}
		fmt.Fprintln(w, "Waiting for the activity log to be created...")
		if file, err = waitForFile(ctx, path); err != nil {
			return err
		}
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek to end: %w", err)
	}

	fmt.Fprintln(w, "Following activity (Ctrl+C to stop)...")
	reader := bufio.NewReader(file)
	var partial string
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		chunk, err := reader.ReadString('\n')
		partial += chunk
		if errors.Is(err, io.EOF) {
			time.Sleep(100 * time.Millisecond)
			continue
		}
		if err != nil {
			return fmt.Errorf("read log: %w", err)
		}
		fmt.Fprintln(w, events.FormatLine(strings.TrimSuffix(partial, "\n")))
		partial = ""
	}
}
