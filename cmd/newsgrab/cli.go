package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newsgrab"
	"github.com/fwojciec/newsgrab/htmltomarkdown"
	"github.com/fwojciec/newsgrab/ingest"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Location *time.Location
	Registry *newsgrab.Registry
	Contents newsgrab.ContentService
	Articles newsgrab.ArticleService
	Revisits newsgrab.RevisitService
	Ingester *ingest.Ingester
	Markdown *htmltomarkdown.Converter

	// Converter renders content bodies for export.
	Converter newsgrab.Converter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string `name:"db" env:"NEWSGRAB_DB" help:"SQLite database path (default ~/.newsgrab/newsgrab.db)"`
	SourcesFile string `name:"sources" env:"NEWSGRAB_SOURCES" help:"Source registry YAML file (default: built-in e-info.org.tw)"`
	LogLevel    string `name:"log-level" env:"NEWSGRAB_LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	Browser     bool   `env:"NEWSGRAB_BROWSER" help:"Fetch pages with headless Chrome"`

	Visit    VisitCmd    `cmd:"" help:"Fetch article URLs for the first time"`
	Catchup  CatchupCmd  `cmd:"" help:"Retry extraction of stored failed articles"`
	Revisit  RevisitCmd  `cmd:"" help:"Re-fetch stored contents and record snapshots"`
	Articles ArticlesCmd `cmd:"" help:"List failed articles awaiting catch-up"`
	Contents ContentsCmd `cmd:"" help:"List extracted contents"`
	Show     ShowCmd     `cmd:"" help:"Show a content or article record"`
	Export   ExportCmd   `cmd:"" help:"Export contents as Markdown files"`
	Sources  SourcesCmd  `cmd:"" help:"List configured sources"`
	Schedule ScheduleCmd `cmd:"" help:"Run catch-up and revisit passes on a schedule"`
}

// VisitCmd is the "visit" subcommand.
type VisitCmd struct {
	URLs        []string `arg:"" name:"url" help:"Article URLs"`
	Source      string   `short:"s" required:"" help:"Source ID"`
	Feed        string   `help:"Feed the URLs were listed in (default: the source's first feed)"`
	PubDate     string   `name:"pub-date" help:"Publish date as given by the feed"`
	Title       string   `help:"Title as given by the feed"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// CatchupCmd is the "catchup" subcommand.
type CatchupCmd struct {
	Source      string `short:"s" help:"Only articles of this source"`
	Limit       int    `short:"n" help:"Maximum number of articles"`
	MaxAttempts int    `name:"max-attempts" default:"5" help:"Skip articles that failed this many times (0 for no limit)"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// RevisitCmd is the "revisit" subcommand.
type RevisitCmd struct {
	Source      string        `short:"s" help:"Only contents of this source"`
	Limit       int           `short:"n" help:"Maximum number of contents"`
	MinAge      time.Duration `name:"min-age" help:"Only contents stored at least this long ago"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
}

// ArticlesCmd is the "articles" subcommand.
type ArticlesCmd struct {
	Source string `short:"s" help:"Only articles of this source"`
	Limit  int    `short:"n" help:"Maximum number of articles"`
}

// ContentsCmd is the "contents" subcommand.
type ContentsCmd struct {
	Source string `short:"s" help:"Only contents of this source"`
	Limit  int    `short:"n" default:"50" help:"Maximum number of contents"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID       string `arg:"" help:"Content or article ID"`
	Markdown bool   `short:"m" help:"Render the content body as Markdown"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir    string `arg:"" help:"Output directory (an earlier export there is replaced; other non-empty directories are refused)"`
	Source string `short:"s" help:"Only contents of this source"`
	Limit  int    `short:"n" help:"Maximum number of contents"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// ScheduleCmd is the "schedule" subcommand.
type ScheduleCmd struct {
	Catchup     string        `default:"@hourly" help:"Cron spec for catch-up passes (empty to disable)"`
	Revisit     string        `default:"@daily" help:"Cron spec for revisit passes (empty to disable)"`
	MaxAttempts int           `name:"max-attempts" default:"5" help:"Skip articles that failed this many times"`
	MinAge      time.Duration `name:"min-age" default:"24h" help:"Only revisit contents stored at least this long ago"`
}
