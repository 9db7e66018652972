package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	logger "github.com/Easy-Infra-Ltd/easy-logger"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/your-org/jobboard/internal/config"
	"github.com/your-org/jobboard/internal/jobs"
	"github.com/your-org/jobboard/internal/notice"
	"github.com/your-org/jobboard/internal/risk"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jobboard",
		Short:         "Job board MCP server with scam-risk screening of job postings",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(newScanCmd())
	return root
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [description]",
		Short: "Print the risk verdict for a job description (reads stdin without arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			scanner, err := loadScanner(cfg)
			if err != nil {
				return err
			}

			description := strings.Join(args, " ")
			if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				description = string(b)
			}

			res := scanner.Scan(description)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(scanVerdict{Result: res, Decision: jobs.Decide(res.Tier)})
		},
	}
}

func loadScanner(cfg config.Config) (*risk.Scanner, error) {
	if cfg.RulesPath == "" {
		return risk.Default(), nil
	}
	rules, err := risk.LoadRulesFile(cfg.RulesPath)
	if err != nil {
		return nil, err
	}
	return risk.NewScanner(rules)
}

func serve(ctx context.Context) error {
	log := logger.CreateLoggerFromEnv(nil, "blue").With("process", "jobboard")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	scanner, err := loadScanner(cfg)
	if err != nil {
		return fmt.Errorf("indicator rules: %w", err)
	}

	store, err := jobs.OpenStore(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening job store: %w", err)
	}
	defer store.Close()

	writer := notice.NewWriter(cfg.Root)
	a := &app{
		svc:     jobs.NewService(store, scanner, jobs.NoticeNotifier{Writer: writer}, log),
		notices: writer,
		logger:  log,
	}

	if cfg.Seed {
		if err := a.svc.Seed(ctx); err != nil {
			return fmt.Errorf("seeding job store: %w", err)
		}
	}

	if cfg.MetricsAddr != "" {
		stop := serveMetrics(cfg.MetricsAddr, log)
		defer stop()
	}

	log.Info("starting job board server", "db", cfg.DBPath, "indicators", len(scanner.Labels()))
	return server.ServeStdio(newMCPServer(a))
}

func serveMetrics(addr string, log *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("metrics listener started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics listener failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
