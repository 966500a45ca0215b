package analysis

import (
	"testing"

	"github.com/evanacox/dawn/internal/ir"
	"github.com/evanacox/dawn/internal/parser"
)

const ifElseSrc = `func i32 @f(i32 $0) {
%entry:
    $1 = icmp eq i32 $0, 0
    cbr bool $1, if %if.true, else %if.false
%if.true:
    br %merge
%if.false:
    br %merge
%merge:
    ret i32 $0
}`

func parseForTest(t *testing.T, src string) *ir.Module {
	t.Helper()
	mod, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return mod
}

func blockByName(t *testing.T, fn *ir.Function, name string) *ir.BasicBlock {
	t.Helper()
	for _, bb := range fn.Blocks() {
		if bb.Name() == name {
			return bb
		}
	}
	t.Fatalf("block %q not found", name)
	return nil
}

func sameBlocks(got []*ir.BasicBlock, want ...*ir.BasicBlock) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestCFGEdgesOnIfElse(t *testing.T) {
	mod := parseForTest(t, ifElseSrc)
	fn, _ := mod.FindFunc("f")
	entry := blockByName(t, fn, "entry")
	ifTrue := blockByName(t, fn, "if.true")
	ifFalse := blockByName(t, fn, "if.false")
	merge := blockByName(t, fn, "merge")

	edges := ComputeCFGEdges(fn)

	entrySuccs := edges.SuccessorsOf(entry)
	if !sameBlocks(entrySuccs.DirectEdges(), ifTrue, ifFalse) {
		t.Fatalf("entry direct successors wrong")
	}
	if !sameBlocks(entrySuccs.IndirectEdges(), merge) {
		t.Fatalf("entry indirect successors should be {merge}")
	}
	if len(edges.PredecessorsOf(entry).AllEdges()) != 0 {
		t.Fatalf("entry has no predecessors")
	}

	for _, arm := range []*ir.BasicBlock{ifTrue, ifFalse} {
		succs := edges.SuccessorsOf(arm)
		if !sameBlocks(succs.DirectEdges(), merge) || len(succs.IndirectEdges()) != 0 {
			t.Fatalf("arm successors wrong")
		}
		preds := edges.PredecessorsOf(arm)
		if !sameBlocks(preds.DirectEdges(), entry) {
			t.Fatalf("arm predecessors wrong")
		}
	}

	mergePreds := edges.PredecessorsOf(merge)
	if !sameBlocks(mergePreds.DirectEdges(), ifTrue, ifFalse) {
		t.Fatalf("merge direct predecessors wrong")
	}
	if !sameBlocks(mergePreds.IndirectEdges(), entry) {
		t.Fatalf("merge indirect predecessors should be {entry}")
	}
	if len(edges.SuccessorsOf(merge).AllEdges()) != 0 {
		t.Fatalf("merge has no successors")
	}

	// queries agree with the stored runs
	if !entrySuccs.HasDirectEdge(ifTrue) || entrySuccs.HasDirectEdge(merge) {
		t.Fatalf("direct edge queries wrong")
	}
	if !entrySuccs.HasIndirectEdge(merge) || entrySuccs.HasIndirectEdge(ifTrue) {
		t.Fatalf("indirect edge queries wrong")
	}
}

func TestBlockEdgesSetSemantics(t *testing.T) {
	mod := parseForTest(t, ifElseSrc)
	fn, _ := mod.FindFunc("f")
	entry := blockByName(t, fn, "entry")
	merge := blockByName(t, fn, "merge")

	edges := &BlockEdges{}
	edges.AddDirectEdge(merge)
	edges.AddDirectEdge(entry)
	edges.AddDirectEdge(merge)
	edges.AddIndirectEdge(merge)
	edges.AddIndirectEdge(merge)

	if !sameBlocks(edges.DirectEdges(), entry, merge) {
		t.Fatalf("direct run must stay sorted and set-like")
	}
	if !sameBlocks(edges.IndirectEdges(), merge) {
		t.Fatalf("indirect run must stay set-like")
	}
	if !sameBlocks(edges.AllEdges(), entry, merge, merge) {
		t.Fatalf("all edges are the two runs back to back")
	}
}

func TestCFGEdgesWithLoop(t *testing.T) {
	src := `func void @f() {
%entry:
    br %head
%head:
    $0 = icmp eq i32 0, 0
    cbr bool $0, if %body, else %exit
%body:
    br %head
%exit:
    ret void
}`
	mod := parseForTest(t, src)
	fn, _ := mod.FindFunc("f")
	entry := blockByName(t, fn, "entry")
	head := blockByName(t, fn, "head")
	body := blockByName(t, fn, "body")

	edges := ComputeCFGEdges(fn)

	// the DFS must terminate despite the backedge, and entry reaches the
	// loop body transitively
	if !edges.SuccessorsOf(entry).HasIndirectEdge(body) {
		t.Fatalf("entry should transitively reach the loop body")
	}
	if !edges.SuccessorsOf(head).HasDirectEdge(body) {
		t.Fatalf("head branches into the body")
	}
	if !edges.PredecessorsOf(head).HasDirectEdge(body) {
		t.Fatalf("the backedge makes body a direct predecessor of head")
	}
}

func TestManagerCachesAndInvalidates(t *testing.T) {
	mod := parseForTest(t, ifElseSrc)
	am := NewManager(mod)

	first := Get[*CFGAnalysis](am)
	second := Get[*CFGAnalysis](am)
	if first != second {
		t.Fatalf("a valid analysis must be returned from cache")
	}
	fn, _ := mod.FindFunc("f")
	before := first.EdgesOf(fn)
	if Get[*CFGAnalysis](am).EdgesOf(fn) != before {
		t.Fatalf("cached result should be stable")
	}

	Invalidate[*CFGAnalysis](am)
	after := Get[*CFGAnalysis](am).EdgesOf(fn)
	if after == before {
		t.Fatalf("invalidation must force recomputation")
	}
}

// countingAnalysis records how many times it runs; an additional (runtime
// registered) analysis for exercising that path of the manager.
type countingAnalysis struct {
	runs int
}

func (c *countingAnalysis) Run(m *ir.Module, am *Manager) { c.runs++ }

func TestAdditionalAnalyses(t *testing.T) {
	mod := parseForTest(t, ifElseSrc)
	am := NewManager(mod)

	counting := &countingAnalysis{}
	Register(am, counting)

	if got := Get[*countingAnalysis](am); got != counting || counting.runs != 1 {
		t.Fatalf("first get should run the analysis once")
	}
	Get[*countingAnalysis](am)
	if counting.runs != 1 {
		t.Fatalf("second get must hit the cache")
	}
	Invalidate[*countingAnalysis](am)
	Get[*countingAnalysis](am)
	if counting.runs != 2 {
		t.Fatalf("invalidate must clear the validity bit")
	}

	am.InvalidateAll()
	Get[*countingAnalysis](am)
	if counting.runs != 3 {
		t.Fatalf("InvalidateAll covers additional analyses")
	}
}
