package cli

import (
	"bytes"
	"errors"
	"testing"

	clierrors "github.com/ariel-frischer/agentsync/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "agentsync", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.Contains(t, rootCmd.Example, "agentsync status")
	assert.Contains(t, rootCmd.Example, "agentsync update")
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName     string
		wantShortcut string
	}{
		"project has shortcut p": {flagName: "project", wantShortcut: "p"},
		"config":                 {flagName: "config"},
		"data-dir":               {flagName: "data-dir"},
		"verbose has shortcut v": {flagName: "verbose", wantShortcut: "v"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.wantShortcut, flag.Shorthand)
		})
	}
}

func TestRootCmd_SubcommandGroups(t *testing.T) {
	t.Parallel()

	groupIDs := make(map[string]bool)
	for _, g := range rootCmd.Groups() {
		groupIDs[g.ID] = true
	}
	assert.True(t, groupIDs[GroupSync], "Should have sync group")
	assert.True(t, groupIDs[GroupConfiguration], "Should have configuration group")
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	commands := make(map[string]string)
	for _, cmd := range rootCmd.Commands() {
		commands[cmd.Name()] = cmd.GroupID
	}

	tests := map[string]struct {
		wantGroup string
	}{
		"status":  {wantGroup: GroupSync},
		"update":  {wantGroup: GroupSync},
		"config":  {wantGroup: GroupConfiguration},
		"history": {wantGroup: GroupConfiguration},
		"doctor":  {wantGroup: GroupConfiguration},
		"version": {wantGroup: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			group, ok := commands[name]
			require.True(t, ok, "Should have %s command", name)
			assert.Equal(t, tt.wantGroup, group)
		})
	}
}

func TestExecute(t *testing.T) {
	// Cannot run in parallel due to global rootCmd state

	require.NotPanics(t, func() {
		rootCmd.SetArgs([]string{"--help"})
		defer rootCmd.SetArgs(nil)

		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetErr(&buf)

		assert.NoError(t, Execute())
		assert.Contains(t, buf.String(), "Sync Commands:")
	})
}

func TestPrintError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want string
	}{
		"cli error keeps remediation": {
			err:  clierrors.UnknownTool("zed", []string{"claude", "crush"}, nil),
			want: "Supported tools: claude, crush",
		},
		"plain error": {
			err:  errors.New("boom"),
			want: "boom",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printError(&buf, tt.err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
