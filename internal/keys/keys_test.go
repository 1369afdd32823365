package keys

import (
	"reflect"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

// TestDefaultKeyMap_NoPrintableSingleRunes verifies no command binding
// swallows a printable character; printable runes must insert text.
func TestDefaultKeyMap_NoPrintableSingleRunes(t *testing.T) {
	km := DefaultKeyMap()
	v := reflect.ValueOf(km)
	for i := 0; i < v.NumField(); i++ {
		binding, ok := v.Field(i).Interface().(key.Binding)
		require.True(t, ok)
		for _, k := range binding.Keys() {
			if len(k) == 1 && k != " " {
				t.Errorf("%s binds printable rune %q", v.Type().Field(i).Name, k)
			}
		}
	}
}

func TestDefaultKeyMap_AllBindingsHaveHelp(t *testing.T) {
	km := DefaultKeyMap()
	v := reflect.ValueOf(km)
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Name
		binding := v.Field(i).Interface().(key.Binding)
		help := binding.Help()
		require.NotEmpty(t, help.Key, "%s help key should not be empty", name)
		require.NotEmpty(t, help.Desc, "%s help desc should not be empty", name)
		require.NotEmpty(t, binding.Keys(), "%s should bind at least one key", name)
	}
}

// TestDefaultKeyMap_NoDuplicateKeys guards against two commands claiming
// the same chord.
func TestDefaultKeyMap_NoDuplicateKeys(t *testing.T) {
	km := DefaultKeyMap()
	seen := map[string]string{}
	v := reflect.ValueOf(km)
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Name
		binding := v.Field(i).Interface().(key.Binding)
		for _, k := range binding.Keys() {
			if prev, dup := seen[k]; dup {
				t.Errorf("key %q bound to both %s and %s", k, prev, name)
			}
			seen[k] = name
		}
	}
}

func TestDefaultKeyMap_CoreAssignments(t *testing.T) {
	km := DefaultKeyMap()

	require.Equal(t, []string{"ctrl+b"}, km.Bold.Keys())
	require.Equal(t, []string{"ctrl+r"}, km.RevealCodes.Keys())
	require.Equal(t, []string{"ctrl+s"}, km.Save.Keys())
	require.Equal(t, []string{"tab"}, km.IndentMore.Keys())
	require.Equal(t, []string{"shift+tab"}, km.IndentLess.Keys())
	require.Equal(t, []string{"ctrl+@"}, km.ToggleChecked.Keys())
}

// Italic must not use ctrl+i, which terminals deliver as tab.
func TestDefaultKeyMap_ItalicAvoidsCtrlI(t *testing.T) {
	km := DefaultKeyMap()
	require.NotContains(t, km.Italic.Keys(), "ctrl+i")
	require.NotContains(t, km.Italic.Keys(), "tab")
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	help := km.ShortHelp()
	require.Len(t, help, 3)
	require.Equal(t, km.Help, help[0])
	require.Equal(t, km.Save, help[1])
	require.Equal(t, km.Quit, help[2])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()
	help := km.FullHelp()
	require.Len(t, help, 6, "movement, selection, editing, structure, styles, general")
	for i, row := range help {
		require.NotEmpty(t, row, "row %d should not be empty", i)
	}
}
