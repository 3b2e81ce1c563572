package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/newsgrab/cmd/newsgrab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"visit", "catchup", "revisit", "articles", "contents", "show", "export", "sources", "schedule"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "--db")
	assert.Contains(t, helpOutput, "--sources")
	assert.Contains(t, helpOutput, "--log-level")
}

func TestCLI_VisitFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"visit", "-s", "e-info.org.tw",
		"--pub-date", "2024-01-30",
		"--title", "標題",
		"http://e-info.org.tw/node/1", "http://e-info.org.tw/node/2",
	})
	require.NoError(t, err)

	assert.Equal(t, "e-info.org.tw", cli.Visit.Source)
	assert.Equal(t, "2024-01-30", cli.Visit.PubDate)
	assert.Equal(t, "標題", cli.Visit.Title)
	assert.Equal(t, 4, cli.Visit.Concurrency)
	assert.Equal(t, []string{"http://e-info.org.tw/node/1", "http://e-info.org.tw/node/2"}, cli.Visit.URLs)
}

func TestCLI_ScheduleDefaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"schedule"})
	require.NoError(t, err)

	assert.Equal(t, "@hourly", cli.Schedule.Catchup)
	assert.Equal(t, "@daily", cli.Schedule.Revisit)
	assert.Equal(t, 5, cli.Schedule.MaxAttempts)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{}, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
