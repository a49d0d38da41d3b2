package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leg100/postie/internal/logging"
	"github.com/leg100/postie/internal/placeholder"
	"github.com/leg100/postie/internal/tui"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/peterbourgon/ff/v4/ffyaml"
)

type config struct {
	BaseURL   string
	UserID    int
	FirstPage string
	Timeout   time.Duration
	RateLimit float64
	Fixture   string
	Debug     bool
	Version   bool

	loggingOptions logging.Options
}

// set config in order of precedence:
// 1. flags > 2. env vars > 3. config file
func parse(stderr io.Writer, args []string) (config, error) {
	var cfg config

	home, err := os.UserHomeDir()
	if err != nil {
		return config{}, fmt.Errorf("retrieving user's home directory: %w", err)
	}
	defaultConfigFile := filepath.Join(home, ".postie.yaml")

	fs := ff.NewFlagSet("postie")
	fs.StringVar(&cfg.BaseURL, 'u', "base-url", placeholder.DefaultBaseURL, "Base URL of the posts API.")
	fs.IntVar(&cfg.UserID, 0, "user-id", 1, "The user whose posts are shown on the user posts page.")
	fs.DurationVar(&cfg.Timeout, 0, "timeout", 0, "Timeout for each fetch attempt. Zero means no timeout.")
	fs.Float64Var(&cfg.RateLimit, 0, "rate-limit", placeholder.DefaultRateLimit, "Maximum number of requests per second. Zero means no limit.")
	fs.StringVar(&cfg.Fixture, 0, "fixture", "", "Serve posts from a YAML fixture file instead of the posts API.")
	fs.BoolVar(&cfg.Debug, 'd', "debug", "Log bubbletea messages to messages.log")
	fs.BoolVar(&cfg.Version, 'v', "version", "Print version.")
	_ = fs.String('c', "config", defaultConfigFile, "Path to config file.")

	{
		usage := fmt.Sprintf("The first page to open on startup (valid: %s).", strings.Join(tui.FirstPages(), ","))
		fs.StringEnumVar(&cfg.FirstPage, 'f', "first-page", usage, "posts", "user-posts", "logs")
	}

	{
		usage := fmt.Sprintf("Logging level (valid: %s).", strings.Join(logging.ValidLevels(), ","))
		fs.StringEnumVar(&cfg.loggingOptions.Level, 'l', "log-level", usage, logging.ValidLevels()...)
	}

	err = ff.Parse(fs, args,
		ff.WithEnvVarPrefix("POSTIE"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ffyaml.Parse),
		ff.WithConfigAllowMissingFile(),
	)
	if err != nil {
		// ff.Parse returns an error if there is an error or if -h/--help is
		// passed; in either case print flag usage in addition to error message.
		fmt.Fprintln(stderr, ffhelp.Flags(fs))
		return config{}, err
	}

	if cfg.UserID < 1 {
		return config{}, fmt.Errorf("invalid user id: %d", cfg.UserID)
	}
	if cfg.RateLimit < 0 {
		return config{}, fmt.Errorf("invalid rate limit: %v", cfg.RateLimit)
	}
	return cfg, nil
}
