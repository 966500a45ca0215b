package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evanacox/dawn/internal/lexer"
	"github.com/evanacox/dawn/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.dawn",
	Short: "Dump the token stream of an IR file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	lx := lexer.New(string(data))
	for {
		tok, lerr := lx.Next()
		if lerr != nil {
			return fmt.Errorf("%s: %s", args[0], lerr)
		}
		if tok.Kind == token.EOF {
			return nil
		}
		fmt.Printf("[ '%s', `%s` ]\n", tok.Text, tok.Kind)
	}
}
