// Package analysis caches per-module analyses with explicit invalidation.
// Default analyses are known at compile time and live in a fixed table;
// additional analyses register at runtime keyed by their type identity.
package analysis

import (
	"fmt"
	"reflect"

	"github.com/evanacox/dawn/internal/ir"
)

// Pass is the interface every analysis implements.
type Pass interface {
	Run(m *ir.Module, am *Manager)
}

// FunctionPass is implemented by analyses that work one function at a
// time; RunFunctions drives one over a whole module.
type FunctionPass interface {
	RunFunction(fn *ir.Function, am *Manager)
}

// RunFunctions applies p to every function of m in insertion order.
func RunFunctions(m *ir.Module, am *Manager, p FunctionPass) {
	for _, fn := range m.Functions() {
		p.RunFunction(fn, am)
	}
}

// Analysis tags the default analyses for O(1) table access.
type Analysis uint8

const (
	AnalysisCFG Analysis = iota

	defaultAnalysisCount
)

type entry struct {
	pass  Pass
	valid bool
}

// Manager owns one validity bit per analysis. Get recomputes an invalid
// analysis on demand; passes invalidate what they dirty (invalidating
// everything is always legal). There is no automatic dependency cascade.
type Manager struct {
	mod        *ir.Module
	defaults   [defaultAnalysisCount]entry
	additional map[reflect.Type]*entry
}

// NewManager creates a manager for mod with the default analyses
// registered but not yet computed.
func NewManager(mod *ir.Module) *Manager {
	am := &Manager{
		mod:        mod,
		additional: make(map[reflect.Type]*entry),
	}
	am.defaults[AnalysisCFG] = entry{pass: NewCFGAnalysis()}
	return am
}

// Module returns the module this manager analyzes.
func (am *Manager) Module() *ir.Module { return am.mod }

// Register adds an additional (non-default) analysis instance, keyed by
// its runtime type. Registering twice replaces the previous instance.
func Register[T Pass](am *Manager, pass T) {
	am.additional[reflect.TypeOf(pass)] = &entry{pass: pass}
}

// Get returns the cached analysis of type T, computing it first when the
// validity bit is clear. Additional analyses must have been registered.
func Get[T Pass](am *Manager) T {
	for i := range am.defaults {
		if pass, ok := am.defaults[i].pass.(T); ok {
			if !am.defaults[i].valid {
				am.defaults[i].pass.Run(am.mod, am)
				am.defaults[i].valid = true
			}
			return pass
		}
	}

	e, ok := am.additional[reflect.TypeFor[T]()]
	if !ok {
		panic(fmt.Sprintf("analysis: %v must be registered before use", reflect.TypeFor[T]()))
	}
	if !e.valid {
		e.pass.Run(am.mod, am)
		e.valid = true
	}
	return e.pass.(T)
}

// Invalidate clears the validity bit for the analysis of type T.
func Invalidate[T Pass](am *Manager) {
	for i := range am.defaults {
		if _, ok := am.defaults[i].pass.(T); ok {
			am.defaults[i].valid = false
			return
		}
	}
	if e, ok := am.additional[reflect.TypeFor[T]()]; ok {
		e.valid = false
		return
	}
	panic(fmt.Sprintf("analysis: %v is not known to this manager", reflect.TypeFor[T]()))
}

// InvalidateAll conservatively clears every validity bit.
func (am *Manager) InvalidateAll() {
	for i := range am.defaults {
		am.defaults[i].valid = false
	}
	for _, e := range am.additional {
		e.valid = false
	}
}
