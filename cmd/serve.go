package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewq/internal/interview"
	"github.com/abhisek/interviewq/internal/ratelimit"
	"github.com/abhisek/interviewq/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the question generation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if !cmd.Flags().Changed("addr") {
			if env := os.Getenv("INTERVIEWQ_ADDR"); env != "" {
				addr = env
			}
		}
		strict, _ := cmd.Flags().GetBool("strict-output")
		rateStore, _ := cmd.Flags().GetString("rate-store")

		logger := slog.Default()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		var windows ratelimit.Store
		switch rateStore {
		case "memory":
			windows = ratelimit.NewMemoryStore()
		case "sqlite":
			windows = st.RateWindows()
		default:
			return fmt.Errorf("unknown rate store %q (want memory or sqlite)", rateStore)
		}

		provider, err := newEnvProvider(st.EventRepo(), logger)
		if err != nil {
			return err
		}
		if !provider.Configured() {
			logger.Warn("API key not set; requests will fail until it is", "provider", llmProviderName(), "model", provider.ModelID())
		}

		ctrl := interview.NewController(interview.Options{
			Limiter:   ratelimit.New(ratelimit.DefaultConfig(), windows, logger),
			Completer: interview.NewCompleter(provider),
			Strict:    strict,
			Logger:    logger,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(ctrl, logger).Run(ctx, addr)
	},
}

func llmProviderName() string {
	if p := os.Getenv("INTERVIEWQ_LLM_PROVIDER"); p != "" {
		return p
	}
	return "groq"
}

func init() {
	serveCmd.Flags().String("addr", ":3000", "Listen address (overrides INTERVIEWQ_ADDR)")
	serveCmd.Flags().Bool("strict-output", false, "Reject model output whose items lack question/answer/difficulty/followUp")
	serveCmd.Flags().String("rate-store", "memory", "Where rate-limit windows live: memory or sqlite")
}
