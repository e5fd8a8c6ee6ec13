package cli_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/herodex/internal/cli"
	"github.com/rshade/herodex/internal/marvel/marveltest"
)

// setupCLITest isolates the config directory and clears HERODEX_* overrides.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HERODEX_HOME", home)
	t.Setenv("HERODEX_LOG_LEVEL", "error")
	for _, key := range []string{"HERODEX_API_KEY", "HERODEX_API_BASE", "HERODEX_LOG_FILE", "HERODEX_SERVE_ADDR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return home
}

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command in-process without a terminal.
func execute(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmdWithTerminal("test", func() bool { return false })
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// apiArgs points a command at the fake catalog.
func apiArgs(api *marveltest.Server, args ...string) []string {
	return append(args, "--api-base", api.BaseURL(), "--api-key", marveltest.APIKey)
}
