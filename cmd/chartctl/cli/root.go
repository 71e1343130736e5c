package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL   string
	accessToken string
)

var rootCmd = &cobra.Command{
	Use:   "chartctl",
	Short: "Print HR dashboard application charts",
	Long: `chartctl fetches application statistics from the HR dashboard API
and prints them as the labelled series the dashboard charts display.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", envOr("CHARTCTL_URL", "http://localhost:8080"), "Dashboard API base URL")
	rootCmd.PersistentFlags().StringVar(&accessToken, "token", os.Getenv("CHARTCTL_TOKEN"), "Supabase access token")

	rootCmd.AddCommand(monthlyCmd)
	rootCmd.AddCommand(byJobCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
