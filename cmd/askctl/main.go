// Package main is the entry point for the askctl CLI, a small client
// for the question-answering service.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	timeout   int
)

var rootCmd = &cobra.Command{
	Use:   "askctl",
	Short: "Client for the question-answering service",
	Long: `askctl talks to a running qa-orchestrator instance.

Example usage:
  askctl ask "What is vector search?"
  askctl ask --category tutorials "pgvector basics"
  askctl retrieve "index maintenance"
  askctl health`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("ASKCTL_SERVER", "http://localhost:9020"), "base URL of the service")
	rootCmd.PersistentFlags().IntVar(&timeout, "timeout", 180, "request timeout in seconds")
}

func httpClient() *http.Client {
	return &http.Client{Timeout: time.Duration(timeout) * time.Second}
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
