package buffs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rubika-tools/aocomp/internal/buffs"
)

func TestRegistry_Get_Found(t *testing.T) {
	reg := buffs.NewRegistry()
	def := &buffs.Def{ID: "riot-control", Name: "Riot Control"}
	reg.Register(def)
	got, ok := reg.Get("riot-control")
	require.True(t, ok)
	assert.Equal(t, def, got)
}

func TestRegistry_Get_NotFound(t *testing.T) {
	reg := buffs.NewRegistry()
	_, ok := reg.Get("nonexistent")
	assert.False(t, ok)
}

func TestRegistry_Resolve(t *testing.T) {
	reg := buffs.NewRegistry()
	a := &buffs.Def{ID: "a", Name: "A"}
	b := &buffs.Def{ID: "b", Name: "B"}
	reg.Register(a)
	reg.Register(b)

	got, err := reg.Resolve([]string{"b", "a"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID, "resolve must preserve request order")
	assert.Equal(t, "a", got[1].ID)
}

func TestRegistry_Resolve_Unknown(t *testing.T) {
	reg := buffs.NewRegistry()
	reg.Register(&buffs.Def{ID: "a", Name: "A"})
	_, err := reg.Resolve([]string{"a", "missing"})
	assert.ErrorContains(t, err, "missing")
}

func TestLoadDirectory_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := `
id: riot-control
name: Riot Control
description: "Soldier rifle expertise."
ncu: 55
modifiers:
  assault-rifle: 120
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "riot.yaml"), []byte(yaml), 0644))

	reg, err := buffs.LoadDirectory(dir)
	require.NoError(t, err)
	got, ok := reg.Get("riot-control")
	require.True(t, ok)
	assert.Equal(t, "Riot Control", got.Name)
	assert.Equal(t, 55, got.NCU)
	assert.Equal(t, 120, got.Modifiers["assault-rifle"])
}

func TestLoadDirectory_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	reg, err := buffs.LoadDirectory(dir)
	require.NoError(t, err)
	assert.Empty(t, reg.All())
}

func TestLoadDirectory_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":::bad:::"), 0644))
	_, err := buffs.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_UnknownField_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	yaml := `
id: x
name: X
duration: 9000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.yaml"), []byte(yaml), 0644))
	_, err := buffs.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_InvalidDef_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	yaml := `
id: x
name: X
modifiers:
  swimming: 10
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.yaml"), []byte(yaml), 0644))
	_, err := buffs.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_SkipsNonYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hook.lua"), []byte("function apply(state) end"), 0644))
	reg, err := buffs.LoadDirectory(dir)
	require.NoError(t, err)
	assert.Empty(t, reg.All())
}

func TestLoadDirectory_NonexistentDir_ReturnsError(t *testing.T) {
	_, err := buffs.LoadDirectory("/nonexistent/path/that/does/not/exist")
	assert.Error(t, err)
}

func TestLoadDirectory_RealBuffs(t *testing.T) {
	reg, err := buffs.LoadDirectory("../../content/buffs")
	require.NoError(t, err)
	for _, id := range []string{"riot-control", "wrangle-131", "combat-focus", "frenzy-of-shells", "berserk"} {
		_, ok := reg.Get(id)
		assert.True(t, ok, "buff %q must be present", id)
	}
}

func TestPropertyRegistry_RegisterThenGet(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[a-z-]{3,12}`).Draw(t, "id")
		reg := buffs.NewRegistry()
		def := &buffs.Def{ID: id, Name: id}
		reg.Register(def)
		got, ok := reg.Get(id)
		assert.True(t, ok, "registered buff must be retrievable")
		assert.Equal(t, def, got)
	})
}
