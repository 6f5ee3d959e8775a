package cli

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/commerce_lifecycle_app/internal/utils"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "lifecycle", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "migrate", "dispatch-outbox", "token"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = parseLevel("loud")
	assert.Error(t, err)
}

func TestInvalidLogLevelRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--log-level", "loud", "token"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-test-secret")
	t.Setenv("IS_PRODUCTION", "false")

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--log-level", "error", "token", "--user", "u-1", "--role", "admin"})
	cmd.SetOut(out)
	require.NoError(t, cmd.Execute())

	claims, err := utils.ParseAndValidateJWT(strings.TrimSpace(out.String()), "cli-test-secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "ADMIN", string(claims.Role))
}

func TestTokenCommand_RejectsUnknownRole(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"token", "--role", "root"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}

func TestMigrateCommand_RequiresDirection(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"migrate", "sideways"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
