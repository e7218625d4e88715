// Package scripting provides a sandboxed GopherLua execution environment for
// buff hook scripts. A hook defines a global apply(state) function that
// receives a table view of the combat input state and mutates it in place.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// script execution when no override is configured.
const DefaultInstructionLimit = 100_000

// budgetContext is a context.Context that cancels itself after Done() has
// been called limit times. GopherLua's main loop calls Done() once per
// opcode, making this an exact instruction-count limit.
type budgetContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining atomic.Int64
}

// Done returns the underlying cancellation channel. Each call decrements the
// remaining budget; when it reaches zero the cancel function fires,
// terminating the Lua VM on the next opcode boundary.
func (c *budgetContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// newBudgetContext returns a context that cancels after limit calls to Done().
// Precondition: limit > 0.
func newBudgetContext(limit int) context.Context {
	base, cancel := context.WithCancel(context.Background())
	c := &budgetContext{Context: base, cancel: cancel}
	c.remaining.Store(int64(limit))
	return c
}

// NewSandboxedState creates a GopherLua LState with:
//   - Only safe stdlib loaded: base, table, string, math
//   - Dangerous globals removed: dofile, loadfile, load, collectgarbage, require
//   - Execution limited to at most instLimit Lua opcodes (deterministic)
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil LState ready for DoFile. The caller owns
// the LState and must call L.Close() when done.
func NewSandboxedState(instLimit int) *lua.LState {
	limit := instLimit
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// Open only safe standard libraries.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Strip dangerous globals left by OpenBase.
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	L.SetContext(newBudgetContext(limit))

	return L
}
