package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var cardCmd = &cobra.Command{
	Use:     "card",
	Aliases: []string{"cards"},
	Short:   "Manage cards",
}

var cardGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Get("/cards/"+args[0], nil, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all non-suspended cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Get("/cards", nil, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var cardPriorityCmd = &cobra.Command{
	Use:   "priority <id> <value>",
	Short: "Set a card's priority (0..1)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return err
		}
		var out interface{}
		if err := cli.Put("/cards/"+args[0]+"/priority", map[string]interface{}{"priority": priority}, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var cardSuspendCmd = &cobra.Command{
	Use:   "suspend <id>",
	Short: "Suspend a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Put("/cards/"+args[0]+"/suspended", map[string]interface{}{"suspend": true}, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var cardResumeCmd = &cobra.Command{
	Use:   "resume <id>",
	Short: "Resume a suspended card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Put("/cards/"+args[0]+"/suspended", map[string]interface{}{"suspend": false}, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var cardNextReviewsCmd = &cobra.Command{
	Use:   "next-reviews <id>",
	Short: "Preview the four hypothetical next reviews for a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Get("/cards/"+args[0]+"/next_reviews", nil, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

func init() {
	cardCmd.AddCommand(cardGetCmd, cardListCmd, cardPriorityCmd, cardSuspendCmd, cardResumeCmd, cardNextReviewsCmd)
}
