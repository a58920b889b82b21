package main

import (
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:     "tag",
	Aliases: []string{"tags"},
	Short:   "Manage tags",
}

var tagCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		visible, _ := cmd.Flags().GetBool("visible")
		var out interface{}
		if err := cli.Post("/tags", map[string]interface{}{"name": args[0], "visible": visible}, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Get("/tags", nil, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var tagAttachCmd = &cobra.Command{
	Use:   "attach <item_id> <tag_id>",
	Short: "Attach a tag to an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Put("/items/"+args[0]+"/tags/"+args[1], nil, nil)
	},
}

var tagDetachCmd = &cobra.Command{
	Use:   "detach <item_id> <tag_id>",
	Short: "Detach a tag from an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Delete("/items/" + args[0] + "/tags/" + args[1])
	},
}

func init() {
	tagCreateCmd.Flags().Bool("visible", true, "whether the tag is shown in listings")
	tagCmd.AddCommand(tagCreateCmd, tagListCmd, tagAttachCmd, tagDetachCmd)
}
