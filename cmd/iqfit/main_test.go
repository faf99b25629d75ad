package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectDir creates an isolated project with a .iqfit directory and makes
// it the working directory.
func projectDir(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".iqfit"), 0755))
	t.Chdir(dir)
	return dir
}

// execute runs the CLI with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cmd := newRootCmd(logger, &slog.LevelVar{})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "iqfit dev\n", out)
}

func TestList(t *testing.T) {
	projectDir(t)

	out, err := execute(t, "", "list", "workouts")
	require.NoError(t, err)
	assert.Contains(t, out, "workout-1")
	assert.Contains(t, out, "locked")
	assert.Contains(t, out, "page 1/")

	out, err = execute(t, "", "list", "workouts", "--premium")
	require.NoError(t, err)
	assert.NotContains(t, out, "locked")
}

func TestList_JSONAndQuery(t *testing.T) {
	projectDir(t)

	out, err := execute(t, "", "list", "study", "--query", "pomodoro", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "study-1"`)
	assert.NotContains(t, out, "study-2")

	out, err = execute(t, "", "list", "--query", "no-such-thing-anywhere")
	require.NoError(t, err)
	assert.Contains(t, out, "No content matches")
}

func TestList_UnknownActivity(t *testing.T) {
	projectDir(t)
	_, err := execute(t, "", "list", "yoga")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	projectDir(t)

	out, err := execute(t, "", "show", "recipe-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Grilled Chicken Salad")
	assert.Contains(t, out, "Interactive Cookthrough")
	assert.Contains(t, out, "  1. ")

	_, err = execute(t, "", "show", "missing-42")
	assert.Error(t, err)
}

func TestPlay_LineModeCompletesAndCounts(t *testing.T) {
	dir := projectDir(t)

	input := strings.Repeat("n\n", 12) + "c\n"
	out, err := execute(t, input, "play", "study-1", "--line-mode")
	require.NoError(t, err)
	assert.Contains(t, out, "The Pomodoro Technique logged. Study sessions total: 1.")

	out, err = execute(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Study sessions: 1")

	out, err = execute(t, "", "stats", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"study_sessions": 1`)

	assert.FileExists(t, filepath.Join(dir, ".iqfit", "profile.toml"))

	out, err = execute(t, "", "activity", "--count", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "session.start")
	assert.Contains(t, out, "session.complete")
}

func TestPlay_ExitPrintsResumeHint(t *testing.T) {
	projectDir(t)

	out, err := execute(t, "n\nq\n", "play", "study-1", "--line-mode")
	require.NoError(t, err)
	assert.Contains(t, out, "Resume later with: iqfit play study-1 --from-step 2")

	out, err = execute(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Study sessions: 0")
}

func TestPlay_LockedContent(t *testing.T) {
	projectDir(t)

	_, err := execute(t, "", "play", "workout-4", "--line-mode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--premium")
}

func TestFavorite(t *testing.T) {
	projectDir(t)

	_, err := execute(t, "", "favorite", "recipe-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "premium")

	out, err := execute(t, "", "favorite", "recipe-1", "--premium")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")

	out, err = execute(t, "", "list", "--favorites", "--premium")
	require.NoError(t, err)
	assert.Contains(t, out, "recipe-1")
	assert.Contains(t, out, "(1 items)")

	out, err = execute(t, "", "favorite", "recipe-1", "--premium")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")
}

func TestActivity_Empty(t *testing.T) {
	projectDir(t)

	out, err := execute(t, "", "activity")
	require.NoError(t, err)
	assert.Contains(t, out, "No activity yet")
}

func TestConfigFlagOverridesProfilePath(t *testing.T) {
	dir := projectDir(t)
	profile := filepath.Join(dir, "elsewhere", "me.toml")

	_, err := execute(t, strings.Repeat("n\n", 12)+"c\n",
		"play", "study-1", "--line-mode", "--profile-file", profile)
	require.NoError(t, err)
	assert.FileExists(t, profile)
}
