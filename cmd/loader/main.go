package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/relgraph/relgraph/internal/loader"
	"github.com/relgraph/relgraph/internal/queue"
	"github.com/relgraph/relgraph/internal/util"
	"github.com/relgraph/relgraph/pkg/logger"
	"github.com/relgraph/relgraph/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataDir := util.GetEnvString("LOADER_DATA_DIR", "data")
	category := util.GetEnvString("LOADER_CATEGORY", "")

	conn, err := pgxpool.New(ctx, util.GetEnv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		logger.Fatal("Failed to read data directory", "dir", dataDir, "err", err)
	}

	var datFiles, optFiles, csvFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dataDir, entry.Name())
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".dat":
			datFiles = append(datFiles, path)
		case ".opt":
			optFiles = append(optFiles, path)
		case ".csv":
			csvFiles = append(csvFiles, path)
		}
	}
	if len(datFiles) == 0 && len(optFiles) == 0 && len(csvFiles) == 0 {
		logger.Fatal("No .dat, .opt or .csv files found", "dir", dataDir)
	}

	parallelFiles := int(util.GetEnvNumeric("LOADER_PARALLEL_FILES", 4))

	// Concordance files are independent of each other, so parse and upsert
	// them in parallel.
	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallelFiles)
	for _, path := range datFiles {
		p := path
		eg.Go(func() error {
			return loadDatFile(gCtx, conn, p, category)
		})
	}
	for _, path := range optFiles {
		p := path
		eg.Go(func() error {
			return countOptFile(p)
		})
	}
	if err := eg.Wait(); err != nil {
		logger.Fatal("Failed to load concordance files", "err", err)
	}

	// CSV exports write to shared tables; load them sequentially.
	for _, path := range csvFiles {
		if err := loadCSVExport(ctx, conn, path); err != nil {
			logger.Fatal("Failed to load CSV export", "file", path, "err", err)
		}
	}

	if util.GetEnv("RABBITMQ_HOST") != "" {
		notifyReload(ctx)
	}

	logger.Info("Load complete")
}

func loadDatFile(ctx context.Context, conn *pgxpool.Pool, path, category string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	docs, err := loader.ParseDatFile(f)
	if err != nil {
		return err
	}
	if err := loader.SaveDocuments(ctx, conn, docs, category); err != nil {
		return err
	}
	logger.Info("Loaded concordance file", "file", path, "documents", len(docs))
	return nil
}

// countOptFile validates .opt cross-reference files. Page images are served
// elsewhere; parsing here only surfaces corrupt load files early.
func countOptFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	images, err := loader.ParseOptFile(f)
	if err != nil {
		return err
	}
	logger.Info("Checked image cross-reference file", "file", path, "images", len(images))
	return nil
}

func loadCSVExport(ctx context.Context, conn *pgxpool.Pool, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasPrefix(name, "alias"):
		inserted, err := loader.IngestAliasesCSV(ctx, conn, f)
		if err != nil {
			return err
		}
		logger.Info("Loaded aliases", "file", path, "rows", inserted)
	case strings.HasPrefix(name, "triple"):
		inserted, err := loader.IngestTriplesCSV(ctx, conn, f)
		if err != nil {
			return err
		}
		logger.Info("Loaded triples", "file", path, "rows", inserted)
	default:
		logger.Warn("Skipping unrecognized CSV export", "file", path)
	}
	return nil
}

func notifyReload(ctx context.Context) {
	que := queue.Init()
	defer que.Close()

	ch, err := que.Channel()
	if err != nil {
		logger.Error("Failed to open channel for reload notification", "err", err)
		return
	}
	defer ch.Close()

	err = util.RetryErrWithContext(ctx, 3, func(context.Context) error {
		return queue.Publish(ch, queue.ReloadQueue, []byte("reload"))
	})
	if err != nil {
		logger.Error("Failed to publish reload notification", "err", err)
		return
	}
	logger.Info("Reload notification published")
}
