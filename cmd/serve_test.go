package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/gworkspace-mcp/internal/google"
)

func TestApplyEnvOverrides(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		expected serveConfig
		wantErr  string
	}{
		{
			name: "defaults",
			expected: serveConfig{
				Transport:      TransportStdio,
				HTTPAddr:       defaultHTTPAddr,
				MetricsEnabled: true,
				MetricsAddr:    defaultMetricsAddr,
			},
		},
		{
			name: "environment fills unset flags",
			env: map[string]string{
				"MCP_TRANSPORT":   TransportStreamableHTTP,
				"READ_ONLY":       "true",
				"METRICS_ENABLED": "false",
				"METRICS_ADDR":    ":9191",
			},
			expected: serveConfig{
				Transport:   TransportStreamableHTTP,
				HTTPAddr:    defaultHTTPAddr,
				ReadOnly:    true,
				MetricsAddr: ":9191",
			},
		},
		{
			name: "explicit flags win over environment",
			args: []string{"--transport", "stdio", "--read-only=false", "--metrics-addr", ":7000"},
			env: map[string]string{
				"MCP_TRANSPORT": TransportStreamableHTTP,
				"READ_ONLY":     "true",
				"METRICS_ADDR":  ":9191",
			},
			expected: serveConfig{
				Transport:      TransportStdio,
				HTTPAddr:       defaultHTTPAddr,
				MetricsEnabled: true,
				MetricsAddr:    ":7000",
			},
		},
		{
			name:    "unsupported transport",
			args:    []string{"--transport", "sse"},
			wantErr: "unsupported transport type: sse",
		},
		{
			name:    "invalid boolean",
			env:     map[string]string{"READ_ONLY": "maybe"},
			wantErr: "invalid value \"maybe\" for READ_ONLY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"MCP_TRANSPORT", "READ_ONLY", "METRICS_ENABLED", "METRICS_ADDR"} {
				t.Setenv(key, tt.env[key])
			}

			cmd := newServeCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))

			var config serveConfig
			config.Transport, _ = cmd.Flags().GetString("transport")
			config.HTTPAddr, _ = cmd.Flags().GetString("http-addr")
			config.ReadOnly, _ = cmd.Flags().GetBool("read-only")
			config.MetricsEnabled, _ = cmd.Flags().GetBool("metrics-enabled")
			config.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")

			err := applyEnvOverrides(cmd, &config)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, config)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("GOOGLE_CLIENT_ID=from-file\nGOOGLE_CLIENT_SECRET=file-secret\n"), 0600))

	t.Setenv(google.EnvClientID, "from-env")
	t.Setenv(google.EnvClientSecret, "")
	require.NoError(t, os.Unsetenv(google.EnvClientSecret))

	require.NoError(t, loadEnvFile(path, true))
	assert.Equal(t, "from-env", os.Getenv(google.EnvClientID), "existing environment wins")
	assert.Equal(t, "file-secret", os.Getenv(google.EnvClientSecret))

	missing := filepath.Join(dir, "missing.env")
	assert.NoError(t, loadEnvFile(missing, false), "missing default file is ignored")
	assert.Error(t, loadEnvFile(missing, true), "missing explicit file is an error")
	assert.NoError(t, loadEnvFile("", true))
}

func TestServeCmd_MissingCredentials(t *testing.T) {
	t.Setenv(google.EnvClientID, "id")
	t.Setenv(google.EnvClientSecret, "")
	t.Setenv(google.EnvRefreshToken, "")

	cmd := newServeCmd()
	cmd.SetArgs([]string{"--env-file", ""})
	cmd.SetContext(context.Background())

	err := cmd.Execute()
	require.Error(t, err)

	var missing *google.MissingCredentialsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{google.EnvClientSecret, google.EnvRefreshToken}, missing.Missing)
	assert.Equal(t, ExitCodeMissingCredentials, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitCodeError, exitCode(errors.New("boom")))
	assert.Equal(t, ExitCodeMissingCredentials, exitCode(&google.MissingCredentialsError{Missing: []string{google.EnvClientID}}))
}

func TestBuildToolsMarkdown(t *testing.T) {
	markdown, err := buildToolsMarkdown(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(markdown, "# MCP Tools Reference\n\n"))
	for _, section := range []string{
		"## Google Docs Tools",
		"## Google Sheets Tools",
		"## Google Drive Tools",
		"## Gmail Tools",
		"### docs_get_document",
		"### sheets_get_values",
		"### drive_create_reply",
		"### gmail_modify_message_labels",
	} {
		assert.Contains(t, markdown, section)
	}
	assert.NotContains(t, markdown, "## Other")

	// Categories are listed alphabetically.
	assert.Less(t, strings.Index(markdown, "## Gmail Tools"), strings.Index(markdown, "## Google Docs Tools"))
	assert.Less(t, strings.Index(markdown, "## Google Docs Tools"), strings.Index(markdown, "## Google Drive Tools"))
}

func TestGetCategoryFromToolName(t *testing.T) {
	tests := map[string]string{
		"docs_get_document":    "Google Docs Tools",
		"sheets_append_values": "Google Sheets Tools",
		"drive_list_comments":  "Google Drive Tools",
		"gmail_list_labels":    "Gmail Tools",
		"calendar_list_events": "Other",
		"nounderscore":         "Other",
	}
	for name, expected := range tests {
		assert.Equal(t, expected, getCategoryFromToolName(name), name)
	}
}

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	cmd := newVersionCmd()
	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "gworkspace-mcp version 1.2.3\n", out.String())
}
