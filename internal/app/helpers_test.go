package app

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/charmbracelet/x/exp/teatest"
	"github.com/leg100/postie/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setupOption func(*config)

// withBaseURL configures the app to use an API other than the fixture.
func withBaseURL(url string) setupOption {
	return func(cfg *config) {
		cfg.Fixture = ""
		cfg.BaseURL = url
	}
}

func withFirstPage(page string) setupOption {
	return func(cfg *config) {
		cfg.FirstPage = page
	}
}

func setup(t *testing.T, sopts ...setupOption) *teatest.TestModel {
	t.Helper()

	// Cancel context once test finishes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := config{
		FirstPage: "posts",
		UserID:    1,
		Fixture:   "./testdata/fixture.yaml",
		loggingOptions: logging.Options{
			Level: "debug",
			AdditionalWriters: []io.Writer{
				&testLogger{t},
			},
		},
	}
	for _, fn := range sopts {
		fn(&cfg)
	}

	app, m, err := newApp(ctx, cfg)
	require.NoError(t, err)

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(100, 30),
	)
	cleanup := app.start(tm)
	t.Cleanup(func() {
		_ = tm.Quit()
		err := cleanup()
		assert.NoError(t, err, "cleaning up app resources")
	})
	return tm
}

// testLogger relays postie log records to the go test logger
type testLogger struct {
	t *testing.T
}

func (l *testLogger) Write(b []byte) (int, error) {
	l.t.Helper()

	l.t.Log(string(b))
	return len(b), nil
}

func waitFor(t *testing.T, tm *teatest.TestModel, cond func(s string) bool) {
	t.Helper()

	teatest.WaitFor(
		t,
		tm.Output(),
		func(b []byte) bool {
			return cond(string(b))
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*10),
	)
}

func matchPattern(t *testing.T, pattern string, s string) bool {
	matched, err := regexp.MatchString(pattern, s)
	require.NoError(t, err)
	return matched
}
