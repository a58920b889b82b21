package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:     "review",
	Aliases: []string{"reviews"},
	Short:   "Record and list reviews",
}

var reviewRecordCmd = &cobra.Command{
	Use:   "record <card_id> <rating>",
	Short: "Record a review (rating 1=Again, 2=Hard, 3=Good, 4=Easy)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		var out interface{}
		if err := cli.Post("/reviews", map[string]interface{}{"card_id": args[0], "rating": rating}, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var reviewListCmd = &cobra.Command{
	Use:   "list <card_id>",
	Short: "List reviews for a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Get("/cards/"+args[0]+"/reviews", nil, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(reviewRecordCmd, reviewListCmd)
}
