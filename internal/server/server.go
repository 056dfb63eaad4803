package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/relgraph/relgraph/internal/queue"
	mid "github.com/relgraph/relgraph/internal/server/middleware"
	"github.com/relgraph/relgraph/internal/snapshot"
	"github.com/relgraph/relgraph/internal/util"
	"github.com/relgraph/relgraph/pkg/logger"
	storepgx "github.com/relgraph/relgraph/pkg/store/pgx"
)

// DefaultRootEntity is the principal entity the whole exploration is
// organized around; hop distances originate here unless overridden via
// GRAPH_ROOT_ENTITY.
const DefaultRootEntity = "Jeffrey Epstein"

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if util.GetEnvBool("RUN_MIGRATIONS", false) {
		runMigrations()
	}

	conn, err := pgxpool.New(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	st := storepgx.NewTripleDBStorage(conn)

	aliases := &snapshot.AliasSnapshot{}
	if err := aliases.Reload(ctx, st); err != nil {
		logger.Fatal("Failed to load alias snapshot", "err", err)
	}

	reloadInterval := time.Duration(util.GetEnvNumeric("ALIAS_RELOAD_SECONDS", 300)) * time.Second
	if util.GetEnv("RABBITMQ_HOST") != "" {
		que := queue.Init()
		defer que.Close()
		ch, err := que.Channel()
		if err != nil {
			logger.Fatal("Failed to open channel", "err", err)
		}
		if err := queue.SetupQueues(ch, []string{queue.ReloadQueue}); err != nil {
			logger.Fatal("Failed to set up queues", "err", err)
		}
		go aliases.Watch(ctx, ch, st, reloadInterval)
	} else {
		go aliases.Watch(ctx, nil, st, reloadInterval)
	}

	rootEntity := util.GetEnvString("GRAPH_ROOT_ENTITY", DefaultRootEntity)

	e.Use(mid.AppContextMiddleware(conn, aliases, rootEntity))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port, "root_entity", rootEntity)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

func runMigrations() {
	m, err := migrate.New("file://migrations", util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Failed to init migrations", "err", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to run migrations", "err", err)
	}
	logger.Info("Migrations applied")
}
