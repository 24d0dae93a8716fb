package interactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetracker/internal/app"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want app.Intent
	}{
		{"s", app.StartStop{}},
		{"START", app.StartStop{}},
		{"clear", app.Clear{}},
		{"theme", app.ToggleTheme{}},
		{"t 1:30", app.SetTime{Text: "1:30"}},
		{"time", app.SetTime{Text: ""}},
		{"d  Code review ", app.SetDescription{Text: "Code review"}},
		{"n 2", app.SetIndex{Text: "2"}},
		{"apply", app.Apply{}},
		{"rm 3", app.Delete{Position: 3}},
		{"cp 1", app.Copy{Position: 1}},
		{"ls", app.Refresh{}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	_, err := parseCommand("rm")
	assert.ErrorIs(t, err, errNoPosition)
	_, err = parseCommand("cp x")
	assert.ErrorIs(t, err, errNoPosition)
	_, err = parseCommand("frobnicate")
	assert.ErrorContains(t, err, `unknown command "frobnicate"`)
}
