package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"asset-brain/api"
	"asset-brain/config"
	"asset-brain/mcpserver"
	"asset-brain/models"
	"asset-brain/services"
	"asset-brain/storage"
	"asset-brain/utils"
)

// env is what every command needs: configuration, a logger and an open,
// bootstrapped store.
type env struct {
	cfg    *config.Config
	logger *utils.Logger
	store  *storage.Store
	close  func()
}

// setup loads config and opens the store. Commands whose stdout carries data
// log to stderr instead.
func setup(ctx context.Context, stderrLogs bool) (*env, error) {
	logger := utils.NewLogger()
	if stderrLogs {
		logger = utils.NewStderrLogger()
	}
	cfg := config.Load()
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn("[config] %v, keeping info", err)
	}

	db, err := storage.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := storage.Bootstrap(ctx, db, logger); err != nil {
		_ = storage.Close(db)
		return nil, err
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		store:  storage.NewStore(db),
		close: func() {
			if err := storage.Close(db); err != nil {
				logger.Warn("[storage] close: %v", err)
			}
			logger.Sync()
		},
	}, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := setup(ctx, false)
			if err != nil {
				return err
			}
			defer e.close()

			srv := &http.Server{
				Addr:              e.cfg.HTTPAddr,
				Handler:           api.NewServer(e.cfg, e.logger, e.store).Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				e.logger.Info("=== Real Estate Asset Brain listening on %s (%s) ===", e.cfg.HTTPAddr, e.cfg.DBDriver)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			e.logger.Info("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func bootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the schema and seed the sample portfolio if empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer e.close()
			e.logger.Info("Store ready (%s)", e.cfg.DBDriver)
			return nil
		},
	}
}

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Answer one or more plain-text questions and print JSON",
		Example: `  asset-brain ask "When was the roof at 12 Elm Street last repaired?"
  asset-brain ask --file questions.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			questions := args
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("ask: %w", err)
				}
				defer f.Close()
				if questions, err = readQuestions(f); err != nil {
					return fmt.Errorf("ask: %w", err)
				}
			}
			if len(questions) == 0 {
				return errors.New("ask: no questions given")
			}

			e, err := setup(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer e.close()

			pool := utils.NewWorkerPool(e.cfg.MaxConcurrency, e.cfg.RateLimitMs)
			query := services.NewQueryService(e.store, e.logger)
			responses, err := answerAll(cmd.Context(), pool, query, questions)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), responses)
		},
	}
	cmd.Flags().StringP("file", "f", "", "read questions from a file, one per line")
	return cmd
}

type answer struct {
	resp *models.QueryResponse
	err  error
}

// answerAll answers every question on pool and keeps input order.
func answerAll(ctx context.Context, pool *utils.WorkerPool, query *services.QueryService, questions []string) ([]*models.QueryResponse, error) {
	answers := utils.Collect(pool, questions, func(q string) answer {
		resp, err := query.Answer(ctx, q)
		return answer{resp: resp, err: err}
	})

	responses := make([]*models.QueryResponse, len(answers))
	for i, a := range answers {
		if a.err != nil {
			return nil, fmt.Errorf("ask %q: %w", questions[i], a.err)
		}
		responses[i] = a.resp
	}
	return responses, nil
}

// readQuestions returns the non-blank lines of r.
func readQuestions(r io.Reader) ([]string, error) {
	var questions []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			questions = append(questions, line)
		}
	}
	return questions, scanner.Err()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print portfolio analytics",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			e, err := setup(cmd.Context(), asJSON)
			if err != nil {
				return err
			}
			defer e.close()

			analytics := services.NewAnalyticsService(e.store, e.logger)
			report, err := analytics.Generate(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}
			analytics.Print(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "print the report as JSON")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every maintenance issue to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			toStdout := output == "-"

			e, err := setup(cmd.Context(), toStdout)
			if err != nil {
				return err
			}
			defer e.close()

			if output == "" {
				output = e.cfg.CSVOutputPath
			}

			var exporter storage.IssueExporter
			if toStdout {
				exporter, err = storage.NewCSVStream(cmd.OutOrStdout())
			} else {
				exporter, err = storage.NewCSVWriter(output)
			}
			if err != nil {
				return err
			}

			issues, err := e.store.ListIssues(cmd.Context())
			if err != nil {
				_ = exporter.Close()
				return err
			}
			if err := exporter.WriteIssues(issues); err != nil {
				_ = exporter.Close()
				return err
			}
			if err := exporter.Close(); err != nil {
				return err
			}

			if !toStdout {
				e.logger.Info("Exported %d maintenance issues to %s", len(issues), output)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "CSV path, or - for stdout (default CSV_OUTPUT_PATH)")
	return cmd
}

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the portfolio tools over MCP stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer e.close()

			tools := mcpserver.NewTools(
				services.NewQueryService(e.store, e.logger),
				services.NewAnalyticsService(e.store, e.logger),
				e.logger,
			)
			e.logger.Info("[mcp] Serving ask_portfolio and portfolio_analytics on stdio")
			return mcpserver.ServeStdio(tools.NewServer("asset-brain"))
		},
	}
}
