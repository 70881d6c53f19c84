package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/relwatch/relwatch/internal/config"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single check round and exit",
	Long: `Run exactly one check round: fetch the changelog, notify about any
versions newer than the checkpoint, and advance the checkpoint if every
notification round succeeded. Useful for external schedulers and for trying
out a configuration.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	ctx := context.Background()
	app, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.checker.Run(ctx)
}
