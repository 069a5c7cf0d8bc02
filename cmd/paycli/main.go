// Command paycli drives checkouts and signed webhook deliveries against a
// running payment service.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jameshoangcyber/nexuskit-webapp/internal/utils/logger"
)

var Version = "dev"

type globalFlags struct {
	server   string
	lang     string
	logLevel string
}

func (g *globalFlags) logger() *slog.Logger {
	return logger.New(os.Stderr, g.logLevel, "text")
}

func main() {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "paycli",
		Short:         "Exercise the NexusKit payment service from the command line",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&g.server, "server", envOr("PAYCLI_SERVER", "http://localhost:8080"), "Payment service base URL")
	rootCmd.PersistentFlags().StringVar(&g.lang, "lang", "vi", "Language for error messages (vi, en)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "Log level")

	rootCmd.AddCommand(payCmd(g))
	rootCmd.AddCommand(signWebhookCmd(g))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
