package main

import (
	"encoding/json"
	"net/url"

	"github.com/spf13/cobra"
)

var itemCmd = &cobra.Command{
	Use:     "item",
	Aliases: []string{"items"},
	Short:   "Manage items",
}

var itemCreateCmd = &cobra.Command{
	Use:   "create <item_type_id> <title>",
	Short: "Create an item (materializes its initial cards)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemDataRaw, _ := cmd.Flags().GetString("data")
		body := map[string]interface{}{
			"item_type_id": args[0],
			"title":        args[1],
		}
		if itemDataRaw != "" {
			var data json.RawMessage
			if err := json.Unmarshal([]byte(itemDataRaw), &data); err != nil {
				return err
			}
			body["item_data"] = data
		}
		var out interface{}
		if err := cli.Post("/items", body, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var itemGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Get("/items/"+args[0], nil, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List items (optionally filtered)",
	RunE: func(cmd *cobra.Command, args []string) error {
		itemTypeID, _ := cmd.Flags().GetString("item-type")
		q := url.Values{}
		if itemTypeID != "" {
			q.Set("item_type_id", itemTypeID)
		}
		var out interface{}
		if err := cli.Get("/items", q, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an item (cascades to its cards)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Delete("/items/" + args[0])
	},
}

func init() {
	itemCreateCmd.Flags().String("data", "", "item_data as a JSON object")
	itemListCmd.Flags().String("item-type", "", "filter by item_type_id")
	itemCmd.AddCommand(itemCreateCmd, itemGetCmd, itemListCmd, itemDeleteCmd)
}
