// Package commands implements the sentiserver CLI commands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/feedworks/sentiserver/internal/alert"
	"github.com/feedworks/sentiserver/internal/analyzer"
	"github.com/feedworks/sentiserver/internal/classifier"
	"github.com/feedworks/sentiserver/internal/config"
	"github.com/feedworks/sentiserver/internal/ingest"
	"github.com/feedworks/sentiserver/internal/server"
	"github.com/feedworks/sentiserver/internal/store"
	ddbstore "github.com/feedworks/sentiserver/internal/store/dynamodb"
	memstore "github.com/feedworks/sentiserver/internal/store/memory"
	"github.com/feedworks/sentiserver/internal/stream"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the full pipeline locally: HTTP API plus in-process worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.Default()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Store
	var st store.Store
	switch cfg.Store {
	case "dynamodb":
		ddb, err := ddbstore.New(cfg.DynamoDB)
		if err != nil {
			return fmt.Errorf("creating DynamoDB store: %w", err)
		}
		if err := ddb.Start(ctx); err != nil {
			return fmt.Errorf("connecting to DynamoDB: %w", err)
		}
		st = ddb
	case "memory":
		st = memstore.New()
	}

	// Stream: in-process; the worker drains the same channel ingest feeds.
	workerCfg := cfg.Worker
	if workerCfg == nil {
		workerCfg = &config.WorkerConfig{}
	}
	mem := stream.NewMemory(workerCfg.Buffer)
	defer mem.Close()

	// Classifier
	var region, language string
	if cfg.Comprehend != nil {
		region = cfg.Comprehend.Region
		language = cfg.Comprehend.LanguageCode
	}
	comp, err := classifier.NewComprehend(region, language)
	if err != nil {
		return fmt.Errorf("creating Comprehend classifier: %w", err)
	}
	cl := classifier.NewBreaker(comp, classifier.BreakerSettings{})

	// Alerts
	dispatcher := alert.NewDispatcher(logger)
	dispatcher.AddSink(alert.NewConsoleSink(logger))
	if cfg.Alerts != nil && cfg.Alerts.SNSTopicARN != "" {
		snsSink, err := alert.NewSNSSink(cfg.Alerts.SNSTopicARN)
		if err != nil {
			return fmt.Errorf("creating SNS sink: %w", err)
		}
		dispatcher.AddSink(snsSink)
	}

	submitter := ingest.NewSubmitter(st, mem, logger)
	worker := analyzer.New(st, cl, dispatcher.AlertFunc(), logger)

	addr := ":3000"
	if cfg.Server != nil && cfg.Server.Addr != "" {
		addr = cfg.Server.Addr
	}
	srv := server.New(addr, submitter, st)

	batchSize := workerCfg.BatchSize
	if batchSize <= 0 {
		batchSize = 25
	}
	pollInterval := time.Second
	if workerCfg.PollInterval != "" {
		if d, err := time.ParseDuration(workerCfg.PollInterval); err == nil && d > 0 {
			pollInterval = d
		}
	}

	logger.Info("sentiserver listening", "addr", addr, "store", cfg.Store)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	g.Go(func() error {
		return runWorker(ctx, mem, worker, batchSize, pollInterval)
	})

	return g.Wait()
}

// runWorker drains the in-memory stream in batches, mirroring how the
// managed stream invokes the analyzer Lambda.
func runWorker(ctx context.Context, mem *stream.Memory, worker *analyzer.Analyzer, batchSize int, pollInterval time.Duration) error {
	batch := make([][]byte, 0, batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		worker.ProcessBatch(ctx, batch)
		batch = batch[:0]
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case payload := <-mem.Records():
			batch = append(batch, payload)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
