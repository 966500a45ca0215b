package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evanacox/dawn/internal/driver"
	"github.com/evanacox/dawn/internal/ir"
)

var printCmd = &cobra.Command{
	Use:   "print [flags] <file.dawn | dir>",
	Short: "Parse IR and print it back in canonical form",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var results []driver.FileResult
	if info.IsDir() {
		results, err = driver.ParseDir(context.Background(), path, jobsFlag(cmd, cfg))
		if err != nil {
			return err
		}
	} else {
		result, err := driver.ParseFile(path)
		if err != nil {
			return err
		}
		results = []driver.FileResult{result}
	}

	failed := false
	for _, result := range results {
		if result.Err != nil {
			renderParseError(os.Stderr, result.Path, result.Source, result.Err, colorEnabled(cmd, cfg))
			failed = true
			continue
		}
		if len(results) > 1 {
			fmt.Printf("; %s\n", result.Path)
		}
		fmt.Print(strings.TrimRight(ir.PrintModule(result.Module), "\n") + "\n")
	}
	if failed {
		os.Exit(1)
	}
	return nil
}
