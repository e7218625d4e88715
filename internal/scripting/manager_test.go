package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/rubika-tools/aocomp/internal/game/combat"
	"github.com/rubika-tools/aocomp/internal/game/stats"
	"github.com/rubika-tools/aocomp/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	mgr := scripting.NewManager(logger, 0)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func TestManager_Apply_MutatesState(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "rage.lua", `
		function apply(state)
			state.aggdef = 100
			state.add_damage = state.add_damage + 60
		end
	`)
	require.NoError(t, mgr.LoadDirectory(dir))

	st := combat.NewInputState()
	st.Bonuses.AddDamage = 40
	mgr.Apply("rage.lua", st)

	assert.Equal(t, 100.0, st.AggDef)
	assert.Equal(t, 100, st.Bonuses.AddDamage)
}

func TestManager_Apply_SkillTables(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "skills.lua", `
		function apply(state)
			state.skills["assault-rifle"] = state.skills["assault-rifle"] + 120
			state.specials["burst"] = 900
			state.initiative.ranged = state.initiative.ranged + 300
		end
	`)
	require.NoError(t, mgr.LoadDirectory(dir))

	st := combat.NewInputState()
	st.WeaponSkills[stats.AssaultRifle] = 1000
	mgr.Apply("skills.lua", st)

	assert.Equal(t, 1120, st.WeaponSkills[stats.AssaultRifle])
	assert.Equal(t, 900, st.SpecialSkills[stats.BurstSkill])
	assert.Equal(t, 300, st.Initiative.Ranged)
}

func TestManager_Apply_UnknownSkillNameSkipped(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "bogus.lua", `
		function apply(state)
			state.skills["swimming"] = 500
		end
	`)
	require.NoError(t, mgr.LoadDirectory(dir))

	st := combat.NewInputState()
	mgr.Apply("bogus.lua", st)
	assert.Empty(t, st.WeaponSkills)
}

func TestManager_Apply_ClampsSliders(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "wild.lua", `
		function apply(state)
			state.aggdef = 500
			state.crit = -5
		end
	`)
	require.NoError(t, mgr.LoadDirectory(dir))

	st := combat.NewInputState()
	mgr.Apply("wild.lua", st)
	assert.Equal(t, 100.0, st.AggDef)
	assert.Equal(t, 0.0, st.Crit)
}

func TestManager_Apply_MissingScript_LogsInfoLeavesStateAlone(t *testing.T) {
	mgr, logs := newTestManager(t)
	st := combat.NewInputState()
	mgr.Apply("no-such.lua", st)

	assert.Equal(t, combat.DefaultAggDef, st.AggDef)
	found := false
	for _, e := range logs.All() {
		if e.Level == zap.InfoLevel {
			found = true
			break
		}
	}
	assert.True(t, found, "expected Info log for missing script")
}

func TestManager_Apply_NoApplyHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "empty.lua", `-- no functions`)
	require.NoError(t, mgr.LoadDirectory(dir))

	st := combat.NewInputState()
	mgr.Apply("empty.lua", st)
	assert.Equal(t, combat.DefaultAggDef, st.AggDef)
}

func TestManager_Apply_RuntimeError_WarnLogStateUnchanged(t *testing.T) {
	mgr, logs := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `
		function apply(state)
			state.aggdef = 100
			error("intentional error")
		end
	`)
	require.NoError(t, mgr.LoadDirectory(dir))

	st := combat.NewInputState()
	mgr.Apply("bad.lua", st)

	assert.Equal(t, combat.DefaultAggDef, st.AggDef, "failed hook must not mutate the state")
	found := false
	for _, e := range logs.All() {
		if e.Level == zap.WarnLevel {
			found = true
			break
		}
	}
	assert.True(t, found, "expected Warn log for Lua runtime error")
}

func TestManager_LoadDirectory_PerScriptIsolation(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`
		function apply(state) state.aao = 1 end
	`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`
		function apply(state) state.aao = 2 end
	`), 0644))
	require.NoError(t, mgr.LoadDirectory(dir))

	first := combat.NewInputState()
	mgr.Apply("a.lua", first)
	assert.Equal(t, 1, first.Bonuses.AAO)

	second := combat.NewInputState()
	mgr.Apply("b.lua", second)
	assert.Equal(t, 2, second.Bonuses.AAO, "each file must keep its own apply hook")
}

func TestManager_LoadDirectory_EmptyDir_NoError(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDirectory(t.TempDir()))
}

func TestManager_LoadDirectory_InvalidLua_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `this is not valid lua @@@@`)
	assert.Error(t, mgr.LoadDirectory(dir))
}

func TestManager_LoadDirectory_NonexistentDir_ReturnsError(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadDirectory("/nonexistent/path/that/does/not/exist"))
}

func TestManager_Close_ReleasesScripts(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "rage.lua", `
		function apply(state) state.aggdef = 100 end
	`)
	require.NoError(t, mgr.LoadDirectory(dir))
	mgr.Close()

	st := combat.NewInputState()
	mgr.Apply("rage.lua", st)
	assert.Equal(t, combat.DefaultAggDef, st.AggDef, "closed manager must leave the state alone")
}

func TestManager_RealHooks(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDirectory("../../content/buffs"))

	st := combat.NewInputState()
	mgr.Apply("berserk.lua", st)
	assert.Equal(t, 100.0, st.AggDef)
	assert.Equal(t, 60, st.Bonuses.AddDamage)
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() {
		scripting.NewManager(nil, 0)
	})
}

func TestProperty_ApplyMissingScriptNeverPanics(t *testing.T) {
	mgr, _ := newTestManager(t)
	rapid.Check(t, func(rt *rapid.T) {
		script := rapid.StringMatching(`[a-z]{1,10}\.lua`).Draw(rt, "script")
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		for i := 0; i < count; i++ {
			mgr.Apply(script, combat.NewInputState())
		}
	})
}
