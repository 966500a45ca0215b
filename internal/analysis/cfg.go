package analysis

import (
	"fmt"
	"sort"

	"github.com/evanacox/dawn/internal/ir"
)

// BlockEdges carries the direct and indirect (transitive) edges of one
// block, stored as two sorted set-like runs of a single array partitioned
// by an index, so iterating all edges is free.
type BlockEdges struct {
	edges     []*ir.BasicBlock
	directEnd int
}

// AddDirectEdge inserts bb at its sorted position among the direct edges;
// re-adding an existing edge is a no-op.
func (e *BlockEdges) AddDirectEdge(bb *ir.BasicBlock) {
	if e.HasDirectEdge(bb) {
		return
	}
	direct := e.DirectEdges()
	at := sort.Search(len(direct), func(i int) bool { return bb.ID() < direct[i].ID() })
	e.edges = append(e.edges, nil)
	copy(e.edges[at+1:], e.edges[at:])
	e.edges[at] = bb
	e.directEnd++
}

// AddIndirectEdge inserts bb at its sorted position among the indirect
// edges; re-adding an existing edge is a no-op.
func (e *BlockEdges) AddIndirectEdge(bb *ir.BasicBlock) {
	if e.HasIndirectEdge(bb) {
		return
	}
	indirect := e.IndirectEdges()
	at := e.directEnd + sort.Search(len(indirect), func(i int) bool { return bb.ID() < indirect[i].ID() })
	e.edges = append(e.edges, nil)
	copy(e.edges[at+1:], e.edges[at:])
	e.edges[at] = bb
}

// HasDirectEdge reports whether bb is a direct edge.
func (e *BlockEdges) HasDirectEdge(bb *ir.BasicBlock) bool {
	return containsBlock(e.DirectEdges(), bb)
}

// HasIndirectEdge reports whether bb is an indirect edge.
func (e *BlockEdges) HasIndirectEdge(bb *ir.BasicBlock) bool {
	return containsBlock(e.IndirectEdges(), bb)
}

// DirectEdges returns the sorted direct edges.
func (e *BlockEdges) DirectEdges() []*ir.BasicBlock {
	return e.edges[:e.directEnd]
}

// IndirectEdges returns the sorted indirect edges.
func (e *BlockEdges) IndirectEdges() []*ir.BasicBlock {
	return e.edges[e.directEnd:]
}

// AllEdges returns direct then indirect edges in one slice.
func (e *BlockEdges) AllEdges() []*ir.BasicBlock {
	return e.edges
}

func containsBlock(sorted []*ir.BasicBlock, bb *ir.BasicBlock) bool {
	at := sort.Search(len(sorted), func(i int) bool { return sorted[i].ID() >= bb.ID() })
	return at < len(sorted) && sorted[at] == bb
}

// FunctionCFGEdges is the CFG result for one function: per-block
// successor and predecessor edge sets.
type FunctionCFGEdges struct {
	successors   map[*ir.BasicBlock]*BlockEdges
	predecessors map[*ir.BasicBlock]*BlockEdges
}

// SuccessorsOf returns the successor edges of bb, which must belong to
// the analyzed function.
func (f *FunctionCFGEdges) SuccessorsOf(bb *ir.BasicBlock) *BlockEdges {
	edges, ok := f.successors[bb]
	if !ok {
		panic("analysis: cannot get successors of block from different function")
	}
	return edges
}

// PredecessorsOf returns the predecessor edges of bb.
func (f *FunctionCFGEdges) PredecessorsOf(bb *ir.BasicBlock) *BlockEdges {
	edges, ok := f.predecessors[bb]
	if !ok {
		panic("analysis: cannot get predecessors of block from different function")
	}
	return edges
}

// CFGAnalysis computes FunctionCFGEdges for every function of a module.
type CFGAnalysis struct {
	edges map[*ir.Function]*FunctionCFGEdges
}

// NewCFGAnalysis creates an empty, not-yet-run analysis.
func NewCFGAnalysis() *CFGAnalysis {
	return &CFGAnalysis{edges: make(map[*ir.Function]*FunctionCFGEdges)}
}

// Run recomputes edges for every function.
func (c *CFGAnalysis) Run(m *ir.Module, am *Manager) {
	c.edges = make(map[*ir.Function]*FunctionCFGEdges, len(m.Functions()))
	RunFunctions(m, am, c)
}

// RunFunction recomputes edges for one function.
func (c *CFGAnalysis) RunFunction(fn *ir.Function, _ *Manager) {
	if fn.Opaque() {
		return
	}
	c.edges[fn] = ComputeCFGEdges(fn)
}

// EdgesOf returns the computed edges for fn.
func (c *CFGAnalysis) EdgesOf(fn *ir.Function) *FunctionCFGEdges {
	edges, ok := c.edges[fn]
	if !ok {
		panic(fmt.Sprintf("analysis: no CFG edges computed for '@%s'", fn.Name()))
	}
	return edges
}

// ComputeCFGEdges builds the direct and transitive edge sets of fn.
//
//  1. Direct successors come from each terminator's branch targets.
//  2. Direct predecessors transpose the direct successors.
//  3. Indirect successors: DFS from the entry; when visiting a node,
//     every block on the DFS stack gains the node's direct successors as
//     indirect successors. A visited set stops cycles.
//  4. Indirect predecessors transpose the indirect successors.
func ComputeCFGEdges(fn *ir.Function) *FunctionCFGEdges {
	blocks := fn.Blocks()
	successors := make(map[*ir.BasicBlock]*BlockEdges, len(blocks))
	predecessors := make(map[*ir.BasicBlock]*BlockEdges, len(blocks))

	for _, bb := range blocks {
		term := bb.Terminator()
		if term == nil {
			panic(fmt.Sprintf("analysis: block '%s' of '@%s' is not terminated",
				bb.Name(), fn.Name()))
		}
		edges := &BlockEdges{}
		for _, target := range term.PossibleBranchTargets() {
			edges.AddDirectEdge(target)
		}
		successors[bb] = edges
	}

	for _, bb := range blocks {
		edges := &BlockEdges{}
		for _, pred := range blocks {
			if successors[pred].HasDirectEdge(bb) {
				edges.AddDirectEdge(pred)
			}
		}
		predecessors[bb] = edges
	}

	if len(blocks) > 0 {
		seen := make(map[*ir.BasicBlock]bool, len(blocks))
		var stack []*ir.BasicBlock
		var visit func(bb *ir.BasicBlock)
		visit = func(bb *ir.BasicBlock) {
			if seen[bb] {
				return
			}
			seen[bb] = true
			for _, succ := range successors[bb].DirectEdges() {
				for _, ancestor := range stack {
					successors[ancestor].AddIndirectEdge(succ)
				}
				stack = append(stack, bb)
				visit(succ)
				stack = stack[:len(stack)-1]
			}
		}
		visit(blocks[0])
	}

	for _, bb := range blocks {
		for _, other := range blocks {
			if successors[bb].HasIndirectEdge(other) {
				predecessors[other].AddIndirectEdge(bb)
			}
		}
	}

	return &FunctionCFGEdges{successors: successors, predecessors: predecessors}
}
