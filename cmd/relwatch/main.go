package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "relwatch",
	Short: "Watch a changelog and notify messaging platforms about new releases",
	Long: `relwatch polls a markdown changelog on a schedule, detects version
entries newer than the last notified checkpoint, and fans a notification per
new entry out to the configured platforms (Telegram, Discord, Slack, generic
webhooks, web push). The checkpoint only advances once every new entry has
been delivered to at least one platform.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to YAML config file (optional, env vars override)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
