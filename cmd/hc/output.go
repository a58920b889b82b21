package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// printResult renders v per the global --format flag: "human" falls back
// to pretty JSON (a thin CLI has no richer human renderer for arbitrary
// API payloads than readable JSON), "json" is indented, "waybar" is
// compact single-line JSON (original_source/src/bin/cli/output.rs).
func printResult(v interface{}) {
	switch format {
	case "waybar":
		b, err := json.Marshal(v)
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(b))
	case "json", "human":
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(b))
	default:
		fatal(fmt.Errorf("unknown --format %q", format))
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "hc:", err)
	os.Exit(1)
}
