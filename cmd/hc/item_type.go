package main

import (
	"github.com/spf13/cobra"
)

var itemTypeCmd = &cobra.Command{
	Use:     "item-type",
	Aliases: []string{"item-types"},
	Short:   "Manage item types",
}

var itemTypeCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an item type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reviewFunction, _ := cmd.Flags().GetString("review-function")
		body := map[string]interface{}{"name": args[0]}
		if reviewFunction != "" {
			body["review_function"] = reviewFunction
		}
		var out interface{}
		if err := cli.Post("/item_types", body, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var itemTypeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List item types",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Get("/item_types", nil, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var itemTypeGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get an item type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Get("/item_types/"+args[0], nil, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

func init() {
	itemTypeCreateCmd.Flags().String("review-function", "", "fsrs (default) or incremental_queue")
	itemTypeCmd.AddCommand(itemTypeCreateCmd, itemTypeListCmd, itemTypeGetCmd)
}
