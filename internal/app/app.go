package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/api"
	"finboard/internal/cache"
	"finboard/internal/config"
	"finboard/internal/controller"
	"finboard/internal/guard"
	"finboard/internal/log"
	"finboard/internal/notify"
	"finboard/internal/session"
	"finboard/internal/state"
)

const cacheCleanupInterval = time.Minute

// App assembles the whole client: session store, API client, route guard,
// feature controllers, notification poller, and the shell that ties them
// together.
type App struct {
	cfg    *config.Config
	logger *log.Logger

	store    state.Store
	Sessions *session.Store
	Client   *api.Client
	Shell    *Shell

	Accounts      *controller.Accounts
	Transactions  *controller.Transactions
	Budgets       *controller.Budgets
	Goals         *controller.Goals
	Categories    *controller.Categories
	Notifications *controller.Notifications
	Reports       *controller.Reports

	poller *notify.Poller
}

// New wires the client together. The session restore runs here so the
// route guard never sees a pre-restore store after construction.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*App, error) {
	store, err := state.NewFromConfig(cfg, logger.Logger)
	if err != nil {
		return nil, fmt.Errorf("state store: %w", err)
	}

	sessions := session.NewStore(store, logger)
	if err := sessions.Restore(ctx); err != nil {
		// A corrupt or unreadable saved session degrades to signed-out.
		logger.Warn("session restore failed", log.FieldOperation, log.OpRestore, log.FieldError, err)
	}

	a := &App{
		cfg:      cfg,
		logger:   logger.WithComponent(log.ComponentApp),
		store:    store,
		Sessions: sessions,
	}

	a.Client = api.New(cfg.APIBaseURL, sessions,
		api.WithLogger(logger),
		api.WithRateLimit(cfg.RequestRate, cfg.RequestBurst),
		api.WithAuthExpiredHandler(func(ctx context.Context) {
			sessions.AuthExpired(ctx)
			if a.Shell != nil {
				a.Shell.HandleSessionExpired()
			}
		}),
	)

	a.Accounts = controller.NewAccounts(a.Client, logger)
	a.Transactions = controller.NewTransactions(a.Client, cfg.PageSize, logger)
	a.Budgets = controller.NewBudgets(a.Client, logger)
	a.Goals = controller.NewGoals(a.Client, logger)
	a.Categories = controller.NewCategories(a.Client, cfg.CategoryCacheTTL, logger)
	a.Notifications = controller.NewNotifications(a.Client, logger)
	a.Reports = controller.NewReports(a.Client, cfg.ReportCacheTTL, logger)

	// Every write changes the server-side aggregates the report caches hold.
	a.Accounts.OnMutation(a.Reports.Invalidate)
	a.Transactions.OnMutation(a.Reports.Invalidate)
	a.Budgets.OnMutation(a.Reports.Invalidate)
	a.Goals.OnMutation(a.Reports.Invalidate)

	a.Shell = NewShell(a.Client, sessions, guard.New(sessions, logger), logger)
	a.registerViews()
	a.Shell.OnSignOut(a.Notifications)
	a.Shell.OnSignOut(resetFunc(a.Categories.Invalidate))
	a.Shell.OnSignOut(resetFunc(a.Reports.Invalidate))

	a.poller = notify.NewPoller(a.Notifications, sessions, cfg.PollInterval, logger)
	return a, nil
}

// registerViews binds each route to the controller loads its view needs.
func (a *App) registerViews() {
	a.Shell.Handle("/dashboard", func(ctx context.Context, _ map[string]string) error {
		_, err := a.Reports.Summary(ctx)
		return err
	})
	a.Shell.Handle("/accounts", func(ctx context.Context, _ map[string]string) error {
		return a.Accounts.Load(ctx)
	})
	a.Shell.Handle("/accounts/:id", func(ctx context.Context, params map[string]string) error {
		id, err := parseID(params["id"])
		if err != nil {
			return err
		}
		end := time.Now()
		_, err = a.Accounts.Details(ctx, id, end.AddDate(0, -1, 0), end)
		return err
	})
	a.Shell.Handle("/transactions", func(ctx context.Context, _ map[string]string) error {
		return a.Transactions.Mount(ctx)
	})
	a.Shell.Handle("/budgets", func(ctx context.Context, _ map[string]string) error {
		return a.Budgets.Load(ctx)
	})
	a.Shell.Handle("/goals", func(ctx context.Context, _ map[string]string) error {
		return a.Goals.Load(ctx)
	})
	a.Shell.Handle("/reports", func(ctx context.Context, _ map[string]string) error {
		end := time.Now()
		_, err := a.Reports.LoadOverview(ctx, end.AddDate(0, -3, 0), end)
		return err
	})
}

// Run starts the background loops and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.Shell.SetBaseContext(ctx)
	a.logger.Info("client started", log.FieldOperation, log.OpStartup)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.poller.Run(ctx)
	})
	g.Go(func() error {
		cache.RunCleanup(ctx, cacheCleanupInterval, a.Reports.Caches()...)
		return ctx.Err()
	})

	err := g.Wait()
	if closeErr := a.store.Close(); closeErr != nil {
		a.logger.Warn("close state store", log.FieldError, closeErr)
	}
	a.logger.Info("client stopped", log.FieldOperation, log.OpShutdown)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type resetFunc func()

func (f resetFunc) Reset() { f() }

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}
