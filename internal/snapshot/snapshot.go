// Package snapshot keeps an in-memory copy of the alias table behind an
// atomic pointer. Every request dereferences the pointer once and works
// against that copy for its whole duration, so a concurrent reload never
// leaves a query observing two different alias states.
package snapshot

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/relgraph/relgraph/internal/queue"
	"github.com/relgraph/relgraph/internal/util"
	"github.com/relgraph/relgraph/pkg/graph"
	"github.com/relgraph/relgraph/pkg/logger"
	"github.com/relgraph/relgraph/pkg/store"
)

const reloadRetries = 3

// AliasSnapshot holds the current alias table. The zero value serves an
// empty table until the first Reload.
type AliasSnapshot struct {
	table atomic.Pointer[graph.AliasTable]
}

// Current returns the alias table to use for one request. Never nil.
func (s *AliasSnapshot) Current() *graph.AliasTable {
	if t := s.table.Load(); t != nil {
		return t
	}
	return graph.NewAliasTable(nil)
}

// Reload loads the alias table from storage and swaps it in atomically.
// In-flight queries keep the table they already dereferenced.
func (s *AliasSnapshot) Reload(ctx context.Context, st store.TripleStorage) error {
	pairs, err := util.RetryWithContext(ctx, reloadRetries, func(ctx context.Context) ([]graph.AliasPair, error) {
		return st.LoadAliases(ctx)
	})
	if err != nil {
		return err
	}

	s.table.Store(graph.NewAliasTable(pairs))
	logger.Info("Alias snapshot reloaded", "aliases", len(pairs))
	return nil
}

// Watch reloads the snapshot whenever the batch jobs publish to the reload
// queue, and on a periodic ticker as a fallback. It blocks until ctx is
// done and is meant to run in its own goroutine. The channel may be nil
// when RabbitMQ is not configured; only the ticker runs then.
func (s *AliasSnapshot) Watch(
	ctx context.Context,
	ch *amqp091.Channel,
	st store.TripleStorage,
	interval time.Duration,
) {
	var msgs <-chan amqp091.Delivery
	if ch != nil {
		var err error
		msgs, err = ch.Consume(
			queue.ReloadQueue,
			"snapshot_consumer",
			true,  // autoAck
			false, // exclusive
			false, // noLocal
			false, // noWait
			nil,   // args
		)
		if err != nil {
			logger.Error("Failed to consume reload queue, falling back to ticker", "err", err)
			msgs = nil
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping snapshot watcher")
			return
		case _, ok := <-msgs:
			if !ok {
				msgs = nil
				continue
			}
			logger.Info("Reload message received")
			if err := s.Reload(ctx, st); err != nil {
				logger.Error("Failed to reload alias snapshot", "err", err)
			}
		case <-ticker.C:
			if err := s.Reload(ctx, st); err != nil {
				logger.Error("Failed to reload alias snapshot", "err", err)
			}
		}
	}
}
