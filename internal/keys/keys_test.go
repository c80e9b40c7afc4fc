package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestApp_KeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{
			name:     "Save uses ctrl+s",
			binding:  App.Save,
			expected: []string{"ctrl+s"},
		},
		{
			name:     "Quit uses ctrl+c and ctrl+q",
			binding:  App.Quit,
			expected: []string{"ctrl+c", "ctrl+q"},
		},
		{
			name:     "Help uses ?",
			binding:  App.Help,
			expected: []string{"?"},
		},
		{
			name:     "LogOverlay uses ctrl+x",
			binding:  App.LogOverlay,
			expected: []string{"ctrl+x"},
		},
		{
			name:     "ThemeCycle uses ctrl+t",
			binding:  App.ThemeCycle,
			expected: []string{"ctrl+t"},
		},
		{
			name:     "CaretBelow uses alt+down",
			binding:  App.CaretBelow,
			expected: []string{"alt+down"},
		},
		{
			name:     "CaretAbove uses alt+up",
			binding:  App.CaretAbove,
			expected: []string{"alt+up"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestApp_HelpTextDefined(t *testing.T) {
	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Save", App.Save},
		{"Quit", App.Quit},
		{"Help", App.Help},
		{"LogOverlay", App.LogOverlay},
		{"ThemeCycle", App.ThemeCycle},
		{"CaretBelow", App.CaretBelow},
		{"CaretAbove", App.CaretAbove},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			help := b.binding.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		})
	}
}

func TestAppShortHelp(t *testing.T) {
	help := App.ShortHelp()
	require.Len(t, help, 3)
	require.Equal(t, App.Help, help[0])
	require.Equal(t, App.Save, help[1])
	require.Equal(t, App.Quit, help[2])
}

func TestAppFullHelp(t *testing.T) {
	help := App.FullHelp()
	require.Len(t, help, 3, "full help should contain 3 rows")
	require.Contains(t, help[0], App.Save)
	require.Contains(t, help[1], App.CaretBelow)
	require.Contains(t, help[2], App.LogOverlay)
}
