// Command hc is the CLI wrapper over the hippocampusd HTTP API (spec §6).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Talia-12/hippocampus/internal/client"
	"github.com/Talia-12/hippocampus/internal/config"
	"github.com/Talia-12/hippocampus/internal/obslog"
)

var (
	serverURL string
	format    string
	cli       *client.Client
)

var rootCmd = &cobra.Command{
	Use:           "hc",
	Short:         "A command-line client for hippocampus, a spaced-repetition study service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		resolved := serverURL
		if resolved == "" {
			if env := os.Getenv("HIPPOCAMPUS_URL"); env != "" {
				resolved = env
			} else {
				var flagUpdate config.Update
				cfg, err := config.Load(flagUpdate)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				resolved = cfg.ServerURL
			}
		}
		cli = client.New(resolved)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server-url", "", "hippocampusd server URL (env HIPPOCAMPUS_URL, then config file, then localhost default)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "human", "output format: human, json, or waybar")

	rootCmd.AddCommand(itemTypeCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(todoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		obslog.Errorf("-", "%v", err)
		fmt.Fprintln(os.Stderr, "hc:", err)
		os.Exit(1)
	}
}
