package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// todoCmd is the high-level todo workflow built on top of a "Todo"-named
// ItemType scheduled with incremental_queue (spec §6's CLI subcommand
// list, recovered in fuller form from original_source/src/bin/cli/commands/todo.rs).
var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage todo-style items (incremental_queue scheduling)",
}

type apiItemType struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ReviewFunction string `json:"review_function"`
}

type apiCard struct {
	ID         string     `json:"id"`
	ItemID     string     `json:"item_id"`
	NextReview time.Time  `json:"next_review"`
	Suspended  *time.Time `json:"suspended"`
}

// findOrCreateTodoType returns the "Todo" ItemType, creating it with
// review_function=incremental_queue if it doesn't exist yet.
func findOrCreateTodoType() (*apiItemType, error) {
	var itemTypes []apiItemType
	if err := cli.Get("/item_types", nil, &itemTypes); err != nil {
		return nil, err
	}
	for i := range itemTypes {
		if itemTypes[i].Name == "Todo" {
			return &itemTypes[i], nil
		}
	}
	var created apiItemType
	if err := cli.Post("/item_types", map[string]interface{}{
		"name":            "Todo",
		"review_function": "incremental_queue",
	}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

var todoAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a todo item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		todoType, err := findOrCreateTodoType()
		if err != nil {
			return err
		}
		var out interface{}
		if err := cli.Post("/items", map[string]interface{}{
			"item_type_id": todoType.ID,
			"title":        args[0],
			"item_data":    json.RawMessage("{}"),
		}, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

func dueCards(suspendedFilter string) ([]apiCard, error) {
	todoType, err := findOrCreateTodoType()
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("item_type_id", todoType.ID)
	q.Set("suspended_filter", suspendedFilter)
	var cards []apiCard
	if err := cli.Get("/cards", q, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

var todoDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List todo cards not yet completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := dueCards("exclude")
		if err != nil {
			return err
		}
		printResult(cards)
		return nil
	},
}

var todoCompletedCmd = &cobra.Command{
	Use:   "completed",
	Short: "List completed (suspended) todo cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := dueCards("only")
		if err != nil {
			return err
		}
		printResult(cards)
		return nil
	},
}

var todoCompleteCmd = &cobra.Command{
	Use:   "complete <card_id>",
	Short: "Mark a todo card done (records an Easy review, which suspends it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out interface{}
		if err := cli.Post("/reviews", map[string]interface{}{"card_id": args[0], "rating": 4}, &out); err != nil {
			return err
		}
		printResult(out)
		return nil
	},
}

var todoUncompleteCmd = &cobra.Command{
	Use:   "uncomplete <card_id>",
	Short: "Reopen a completed todo card",
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

var todoReviewCmd = &cobra.Command{
	Use:   "review <card_id> <rating>",
	Short: "Defer a todo card with a specific rating (1..4)",
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

var todoCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count todo cards not yet completed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cards, err := dueCards("exclude")
		if err != nil {
			return err
		}
		if format == "human" {
			fmt.Println(len(cards))
			return nil
		}
		printResult(map[string]int{"count": len(cards)})
		return nil
	},
}

func init() {
	todoCmd.AddCommand(todoAddCmd, todoDueCmd, todoCompletedCmd, todoCompleteCmd, todoUncompleteCmd, todoReviewCmd, todoCountCmd)
}
