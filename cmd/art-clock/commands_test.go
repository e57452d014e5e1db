package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-artclock/internal/config"
)

// runPhrase executes the phrase subcommand against a fixed instant.
func runPhrase(t *testing.T, now time.Time, args ...string) (string, error) {
	t.Helper()
	cmd := phraseCmd(func() time.Time { return now })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPhraseCmd(t *testing.T) {
	now := time.Date(2025, 1, 15, 17, 45, 0, 0, time.UTC)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Explicit Poetic", []string{"12:00"}, "Noon\n"},
		{"Explicit Plain", []string{"12:00", "--style", config.StylePlain}, "Twelve o'clock\n"},
		{"Single Digit Hour", []string{"3:15"}, "Quarter past three\n"},
		{"Now In Zone", []string{"--tz", "UTC"}, "Quarter to eighteen\n"},
		{"Now Shifted Zone", []string{"--tz", "Asia/Tokyo", "--style", config.StylePlain}, "Fifteen to three\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runPhrase(t, now, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPhraseCmd_Errors(t *testing.T) {
	now := time.Date(2025, 1, 15, 17, 45, 0, 0, time.UTC)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"Bad Clock", []string{"25:00"}, config.ErrInvalidClockArg},
		{"Not A Clock", []string{"noon"}, config.ErrInvalidClockArg},
		{"Bad Zone", []string{"--tz", "Nowhere/Land"}, config.ErrTimezone},
		{"Bad Style", []string{"10:10", "--style", "gothic"}, config.ErrUnknownStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runPhrase(t, now, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRootCmd_Version(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, versionLine(), out.String())
	assert.Contains(t, out.String(), config.AppName)
}
