package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskpad/internal/client/attachments"
	"github.com/dmitrijs2005/taskpad/internal/client/config"
	"github.com/dmitrijs2005/taskpad/internal/client/engine"
	"github.com/dmitrijs2005/taskpad/internal/client/records"
	"github.com/dmitrijs2005/taskpad/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// remote is the part of the record store client the app manages directly.
type remote interface {
	Ping(ctx context.Context) error
	Close() error
}

type App struct {
	config *config.Config
	engine *engine.Engine
	remote remote
	logger logging.Logger
	in     io.Reader

	mu   sync.Mutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(c.LogLevel))

	rc, err := records.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, fmt.Errorf("record store client: %w", err)
	}

	store, err := attachments.NewS3Store(ctx, attachments.Options{
		Region:         c.S3Region,
		AccessKey:      c.S3AccessKey,
		SecretKey:      c.S3SecretKey,
		BaseEndpoint:   c.S3BaseEndpoint,
		Bucket:         c.S3Bucket,
		PublicTemplate: c.S3PublicURLTemplate,
	})
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("attachment store: %w", err)
	}

	e := engine.New(rc, store, logger)

	return newApp(c, e, rc, logger, os.Stdin), nil
}

func newApp(c *config.Config, e *engine.Engine, r remote, l logging.Logger, in io.Reader) *App {
	return &App{config: c, engine: e, remote: r, logger: l.With("module", "cli"), in: in}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		printlnFn(fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) getStatus() string {
	s := string(a.Mode())
	if a.engine.View().EditingID != "" {
		s += " editing"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.remote.Ping(ctx)
	cancel()

	if err != nil {
		a.logger.Debug(ctx, "ping failed", "error", err.Error())
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.remote.Close(); err != nil {
			a.logger.Warn(ctx, "close error", "error", err.Error())
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to taskpad (type 'help' for commands)")

	a.checkOnline(ctx)
	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	_ = a.Refresh(ctx)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.in), isTerminal())
}
