package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/rubika-tools/aocomp/internal/game/combat"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// Manager owns one sandboxed LState per hook script, keyed by the script's
// file name. Apply serializes hook execution; scripts share no state.
type Manager struct {
	mu     sync.Mutex
	states map[string]*lua.LState
	logger *zap.Logger
	limit  int
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil. instLimit >= 0; 0 uses
// DefaultInstructionLimit.
// Postcondition: Returns a non-nil Manager with an empty script map.
func NewManager(logger *zap.Logger, instLimit int) *Manager {
	if logger == nil {
		panic("scripting: logger must not be nil")
	}
	return &Manager{
		states: make(map[string]*lua.LState),
		logger: logger,
		limit:  instLimit,
	}
}

// LoadDirectory creates a sandboxed VM per *.lua file in dir, executing each
// file in its own VM so that every script keeps its own apply hook. Files
// load in lexicographic order; a reloaded name replaces the earlier VM.
//
// Precondition: dir must be a readable directory.
// Postcondition: Every script is registered under its base name; returns an
// error on the first Lua load failure.
func (m *Manager) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	sort.Strings(luaFiles)

	for _, name := range luaFiles {
		L := NewSandboxedState(m.limit)
		if err := L.DoFile(filepath.Join(dir, name)); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", name, err)
		}
		m.mu.Lock()
		if old, ok := m.states[name]; ok {
			old.Close()
		}
		m.states[name] = L
		m.mu.Unlock()
	}
	return nil
}

// Apply calls the global apply(state) hook of the named script with a table
// view of st and copies the table's mutations back into st. A script with no
// VM logs at Info and leaves st unchanged; a script without an apply hook is
// a no-op. Lua runtime errors are logged at Warn level and never propagated,
// leaving st unchanged.
//
// Precondition: st must not be nil.
func (m *Manager) Apply(script string, st *combat.InputState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	L, ok := m.states[script]
	if !ok {
		m.logger.Info("scripting: no VM for script",
			zap.String("script", script),
		)
		return
	}

	fn := L.GetGlobal("apply")
	if fn == lua.LNil {
		return
	}

	tbl := stateTable(L, st)
	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, tbl); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("script", script),
			zap.Error(err),
		)
		return
	}

	copyBack(tbl, st)
}

// Close releases every script VM. The Manager may be reused by loading a
// directory again.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, L := range m.states {
		L.Close()
		delete(m.states, name)
	}
}

// stateTable builds the Lua table view of st: skills and specials subtables
// keyed by document skill name, an initiative subtable, and the aao,
// add_damage, crit and aggdef scalars.
func stateTable(L *lua.LState, st *combat.InputState) *lua.LTable {
	tbl := L.NewTable()

	skills := L.NewTable()
	for id, v := range st.WeaponSkills {
		if key, ok := stats.SkillName(id); ok {
			skills.RawSetString(key, lua.LNumber(v))
		}
	}
	tbl.RawSetString("skills", skills)

	specials := L.NewTable()
	for id, v := range st.SpecialSkills {
		if key, ok := stats.SkillName(id); ok {
			specials.RawSetString(key, lua.LNumber(v))
		}
	}
	tbl.RawSetString("specials", specials)

	initiative := L.NewTable()
	initiative.RawSetString("melee", lua.LNumber(st.Initiative.Melee))
	initiative.RawSetString("physical", lua.LNumber(st.Initiative.Physical))
	initiative.RawSetString("ranged", lua.LNumber(st.Initiative.Ranged))
	tbl.RawSetString("initiative", initiative)

	tbl.RawSetString("aao", lua.LNumber(st.Bonuses.AAO))
	tbl.RawSetString("add_damage", lua.LNumber(st.Bonuses.AddDamage))
	tbl.RawSetString("crit", lua.LNumber(st.Crit))
	tbl.RawSetString("aggdef", lua.LNumber(st.AggDef))
	return tbl
}

// copyBack reads the (possibly mutated) table view into st. Unknown skill
// names and non-numeric values are skipped; crit and aggdef clamp to 0..100.
func copyBack(tbl *lua.LTable, st *combat.InputState) {
	if skills, ok := tbl.RawGetString("skills").(*lua.LTable); ok {
		skills.ForEach(func(k, v lua.LValue) {
			name, kok := k.(lua.LString)
			n, vok := v.(lua.LNumber)
			if !kok || !vok {
				return
			}
			if id, found := stats.SkillByName(string(name)); found {
				st.WeaponSkills[id] = int(n)
			}
		})
	}
	if specials, ok := tbl.RawGetString("specials").(*lua.LTable); ok {
		specials.ForEach(func(k, v lua.LValue) {
			name, kok := k.(lua.LString)
			n, vok := v.(lua.LNumber)
			if !kok || !vok {
				return
			}
			if id, found := stats.SkillByName(string(name)); found {
				st.SpecialSkills[id] = int(n)
			}
		})
	}
	if initiative, ok := tbl.RawGetString("initiative").(*lua.LTable); ok {
		if n, ok := initiative.RawGetString("melee").(lua.LNumber); ok {
			st.Initiative.Melee = int(n)
		}
		if n, ok := initiative.RawGetString("physical").(lua.LNumber); ok {
			st.Initiative.Physical = int(n)
		}
		if n, ok := initiative.RawGetString("ranged").(lua.LNumber); ok {
			st.Initiative.Ranged = int(n)
		}
	}
	if n, ok := tbl.RawGetString("aao").(lua.LNumber); ok {
		st.Bonuses.AAO = int(n)
	}
	if n, ok := tbl.RawGetString("add_damage").(lua.LNumber); ok {
		st.Bonuses.AddDamage = int(n)
	}
	if n, ok := tbl.RawGetString("crit").(lua.LNumber); ok {
		st.Crit = clampPercent(float64(n))
	}
	if n, ok := tbl.RawGetString("aggdef").(lua.LNumber); ok {
		st.AggDef = clampPercent(float64(n))
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
