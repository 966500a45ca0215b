package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/evanacox/dawn/internal/analysis"
	"github.com/evanacox/dawn/internal/driver"
	"github.com/evanacox/dawn/internal/ir"
)

var cfgCmd = &cobra.Command{
	Use:   "cfg [flags] file.dawn",
	Short: "Compute and dump per-block CFG edges",
	Args:  cobra.ExactArgs(1),
	RunE:  runCfg,
}

func init() {
	cfgCmd.Flags().String("format", "", "output format (text|msgpack)")
}

// Schema version for the msgpack payload; bump when the layout changes.
const cfgSchemaVersion uint16 = 1

type cfgPayload struct {
	Schema uint16
	Funcs  []cfgFunc
}

type cfgFunc struct {
	Name   string
	Blocks []cfgBlock
}

type cfgBlock struct {
	Name          string
	DirectSuccs   []string
	IndirectSuccs []string
	DirectPreds   []string
	IndirectPreds []string
}

func runCfg(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Format
	}

	result, err := driver.ParseFile(args[0])
	if err != nil {
		return err
	}
	if result.Err != nil {
		renderParseError(os.Stderr, result.Path, result.Source, result.Err, colorEnabled(cmd, cfg))
		os.Exit(1)
	}

	am := analysis.NewManager(result.Module)
	cfgAnalysis := analysis.Get[*analysis.CFGAnalysis](am)
	payload := buildPayload(result.Module, cfgAnalysis)

	switch format {
	case "msgpack":
		enc := msgpack.NewEncoder(os.Stdout)
		return enc.Encode(&payload)
	case "text", "":
		writeText(payload)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func buildPayload(mod *ir.Module, cfgAnalysis *analysis.CFGAnalysis) cfgPayload {
	payload := cfgPayload{Schema: cfgSchemaVersion}
	for _, fn := range mod.Functions() {
		if fn.Opaque() {
			continue
		}
		edges := cfgAnalysis.EdgesOf(fn)
		out := cfgFunc{Name: fn.Name()}
		for _, bb := range fn.Blocks() {
			succs := edges.SuccessorsOf(bb)
			preds := edges.PredecessorsOf(bb)
			out.Blocks = append(out.Blocks, cfgBlock{
				Name:          blockDisplayName(bb),
				DirectSuccs:   blockNames(succs.DirectEdges()),
				IndirectSuccs: blockNames(succs.IndirectEdges()),
				DirectPreds:   blockNames(preds.DirectEdges()),
				IndirectPreds: blockNames(preds.IndirectEdges()),
			})
		}
		payload.Funcs = append(payload.Funcs, out)
	}
	return payload
}

func writeText(payload cfgPayload) {
	for _, fn := range payload.Funcs {
		fmt.Printf("fn @%s:\n", fn.Name)
		for _, bb := range fn.Blocks {
			fmt.Printf("  %%%s:\n", bb.Name)
			fmt.Printf("    succs: direct [%s] indirect [%s]\n",
				strings.Join(bb.DirectSuccs, ", "), strings.Join(bb.IndirectSuccs, ", "))
			fmt.Printf("    preds: direct [%s] indirect [%s]\n",
				strings.Join(bb.DirectPreds, ", "), strings.Join(bb.IndirectPreds, ", "))
		}
	}
}

func blockDisplayName(bb *ir.BasicBlock) string {
	if bb.Name() != "" {
		return bb.Name()
	}
	return "bb" + strconv.Itoa(bb.ID())
}

func blockNames(blocks []*ir.BasicBlock) []string {
	names := make([]string, len(blocks))
	for i, bb := range blocks {
		names[i] = blockDisplayName(bb)
	}
	return names
}
