package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/darkworlds/internal/client/command"
	"github.com/dmitrijs2005/darkworlds/internal/client/config"
	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/localstate"
	"github.com/dmitrijs2005/darkworlds/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/darkworlds/internal/client/services"
	"github.com/dmitrijs2005/darkworlds/internal/client/session"
	"github.com/dmitrijs2005/darkworlds/internal/client/syncer"
	"github.com/dmitrijs2005/darkworlds/internal/client/transcript"
	"github.com/dmitrijs2005/darkworlds/internal/common"
	"github.com/dmitrijs2005/darkworlds/internal/logging"
	"github.com/dmitrijs2005/darkworlds/internal/notify"
	"golang.org/x/term"
)

type App struct {
	config *config.Config
	logger logging.Logger

	store   *sql.DB
	local   *sql.DB
	channel notify.Channel

	session    *session.Session
	reconciler *syncer.Reconciler
	dispatcher *command.Dispatcher

	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewApp opens the store and the local database, connects the notification
// channel and builds the dispatcher. Everything opened is released by Close.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repomanager.SetMigrationLogger(logger)

	a := &App{
		config:      c,
		logger:      logger,
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}

	var err error
	a.local, err = repomanager.OpenLocal(ctx, c.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing local database: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	a.store, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN, repos)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("error connecting to store: %w", err)
	}

	var publisher notify.Publisher
	a.channel, publisher, err = openChannel(ctx, c)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("error connecting notification channel: %w", err)
	}

	us := services.NewUserService(a.store, repos, publisher, logger)
	ms := services.NewMessageService(a.store, repos)
	ds := services.NewDiscussionService(a.store, repos, publisher, logger)

	a.session = session.New(localstate.NewSQLiteRepository(a.local))
	a.reconciler = syncer.New(us, ds, a.channel, logger, c.RequestTimeout)
	a.dispatcher = command.NewDispatcher(command.Deps{
		Users:          us,
		Messages:       ms,
		Discussion:     ds,
		Session:        a.session,
		Sync:           a.reconciler,
		Logger:         logger,
		RequestTimeout: c.RequestTimeout,
	})

	return a, nil
}

// openChannel returns the notification channel selected by the config and,
// for transports that do not observe the store themselves, the publisher the
// services announce changes on.
func openChannel(ctx context.Context, c *config.Config) (notify.Channel, notify.Publisher, error) {
	switch c.NotifyDriver {
	case config.NotifyPostgres:
		return notify.NewPostgresListener(c.DatabaseDSN), nil, nil
	case config.NotifyRedis:
		bus, err := notify.NewRedisBus(ctx, notify.RedisConfig{
			Address:     c.RedisAddr,
			Password:    c.RedisPassword,
			DB:          c.RedisDB,
			DialTimeout: c.RequestTimeout,
		}, common.AppName)
		if err != nil {
			return nil, nil, err
		}
		return bus, bus, nil
	case config.NotifyMemory:
		bus := notify.NewMemoryBus()
		return bus, bus, nil
	default:
		return nil, nil, fmt.Errorf("unknown notify driver %q", c.NotifyDriver)
	}
}

// Run resumes the session, starts the reconciler and blocks in the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if err := a.reconciler.Start(ctx, a.session); err != nil {
		a.logger.Warn(ctx, "live updates disabled", "err", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := a.reconciler.Run(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error(ctx, "reconciler stopped", "err", err)
		}
	}()

	if a.interactive {
		printlnFn(command.AboutText)
	}
	runREPL(ctx, a, readLines(a.in), a.interactive)
}

func (a *App) execute(ctx context.Context, line string) command.Result {
	return a.dispatcher.Run(ctx, line)
}

func (a *App) status() string {
	if user, ok := a.session.Current(); ok {
		return user
	}
	return ""
}

func (a *App) panels() string {
	return renderPanels(a.dispatcher.View(), a.reconciler)
}

func (a *App) transcript() *transcript.Transcript {
	return a.dispatcher.Transcript()
}

// Close releases the subscription and closes the databases. The session is
// left in place so the next start resumes it.
func (a *App) Close() {
	if a.reconciler != nil {
		a.reconciler.Close()
		a.reconciler = nil
	}
	if a.channel != nil {
		if err := a.channel.Close(); err != nil {
			a.logger.Warn(context.Background(), "notification channel close failed", "err", err)
		}
		a.channel = nil
	}
	if a.store != nil {
		_ = a.store.Close()
		a.store = nil
	}
	if a.local != nil {
		_ = a.local.Close()
		a.local = nil
	}
}
