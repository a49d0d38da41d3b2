// package app is the main entrypoint into the application, responsible for
// configuring and starting the application, services, dependency injection,
// etc.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leg100/postie/internal/logging"
	"github.com/leg100/postie/internal/placeholder"
	"github.com/leg100/postie/internal/post"
	"github.com/leg100/postie/internal/tui/top"
	"github.com/leg100/postie/internal/version"
)

type app struct {
	logger *logging.Logger
	posts  *post.Service
	// fixture serves posts in-process when configured to do so.
	fixture *http.Server
	// relays relay events to the TUI once started.
	relays []func(s sendable)
}

// Start the app.
func Start(stdout, stderr io.Writer, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Parse configuration from env vars and flags
	cfg, err := parse(stderr, args)
	if err != nil {
		return err
	}

	if cfg.Version {
		fmt.Fprintln(stdout, "postie", version.Version)
		return nil
	}

	app, model, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(
		model,
		// use the full size of the terminal with its "alternate screen buffer"
		tea.WithAltScreen(),
	)
	cleanup := app.start(p)
	defer func() {
		if err := cleanup(); err != nil {
			fmt.Fprintf(stderr, "cleaning up: %s\n", err)
		}
	}()

	// Blocks until user quits
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func newApp(ctx context.Context, cfg config) (*app, tea.Model, error) {
	// Setup logging
	logger := logging.NewLogger(cfg.loggingOptions)
	slog.SetDefault(logger.Logger)

	app := &app{logger: logger}

	baseURL := cfg.BaseURL
	if cfg.Fixture != "" {
		url, err := app.serveFixture(cfg.Fixture)
		if err != nil {
			return nil, nil, err
		}
		baseURL = url
	}

	client, err := placeholder.NewClient(placeholder.ClientOptions{
		BaseURL:   baseURL,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		return nil, nil, app.shutdownFixture(ctx, err)
	}

	// Log some info useful to the user
	logger.Info("loaded config",
		"base_url", baseURL,
		"user_id", cfg.UserID,
		"timeout", cfg.Timeout,
		"rate_limit", cfg.RateLimit,
	)

	// Instantiate services
	app.posts = post.NewService(post.ServiceOptions{
		Client:  client,
		UserID:  cfg.UserID,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})

	// Subscribe before the TUI is constructed, so that its first page receives
	// every event following its construction.
	app.relays = []func(sendable){
		subscribe(logger.Subscribe(ctx)),
		subscribe(app.posts.SubscribePosts(ctx)),
		subscribe(app.posts.SubscribeUser(ctx)),
	}

	// Construct TUI programme.
	model, err := top.New(top.Options{
		Posts:     app.posts,
		Logger:    logger,
		BaseURL:   baseURL,
		FirstPage: cfg.FirstPage,
		Debug:     cfg.Debug,
	})
	if err != nil {
		app.posts.Close()
		return nil, nil, app.shutdownFixture(ctx, err)
	}
	return app, model, nil
}

// serveFixture serves the fixture file on a loopback address, returning its
// base URL.
func (a *app) serveFixture(path string) (string, error) {
	fixture, err := placeholder.LoadFixture(path)
	if err != nil {
		return "", err
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", fmt.Errorf("listening for fixture requests: %w", err)
	}
	a.fixture = &http.Server{
		Handler:           placeholder.NewFixtureHandler(fixture),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := a.fixture.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("serving fixture", "error", err)
		}
	}()
	url := "http://" + ln.Addr().String()
	a.logger.Info("serving fixture", "path", path, "url", url)
	return url, nil
}

// shutdownFixture shuts down the fixture server, if any, joining any error with
// err.
func (a *app) shutdownFixture(ctx context.Context, err error) error {
	if a.fixture == nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if shutdownErr := a.fixture.Shutdown(ctx); shutdownErr != nil {
		return errors.Join(err, fmt.Errorf("shutting down fixture server: %w", shutdownErr))
	}
	return err
}

type sendable interface {
	Send(tea.Msg)
}

// start starts the app, relaying events to the TUI via s, and returns a
// cleanup function.
func (a *app) start(s sendable) func() error {
	for _, relay := range a.relays {
		relay(s)
	}
	return func() error {
		// Closing the services closes their subscriptions, which stops the
		// relays.
		a.posts.Close()
		a.logger.Shutdown()
		// Use a fresh context; the parent may well have been canceled.
		return a.shutdownFixture(context.Background(), nil)
	}
}

func subscribe[T any](events <-chan T) func(sendable) {
	return func(s sendable) {
		go func() {
			for ev := range events {
				s.Send(ev)
			}
		}()
	}
}
