package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbnav/internal/bridge/httpbridge"
	clitest "github.com/leapstack-labs/dbnav/internal/cli/testutil"
)

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd_Version(t *testing.T) {
	out, _, err := runRoot(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "dbnav v"+Version)
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"serve", "tui", "nav", "query", "db", "events", "version", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCmd_Completion(t *testing.T) {
	out, _, err := runRoot(t, "completion", "bash")

	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")
}

func TestRootCmd_InvalidOutput(t *testing.T) {
	_, _, err := runRoot(t, "nav", "-o", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be one of")
}

func TestRootCmd_FlagsReachCommands(t *testing.T) {
	b := clitest.NewBackend(t, map[string]string{
		httpbridge.MethodGetNavData:   `{"results":{"main.db":{"tables":["t"]}}}`,
		httpbridge.MethodGetCurrentDB: `{"results":"main.db"}`,
		httpbridge.MethodGetRootPath:  `{"results":{"root":"/data"}}`,
	})

	out, _, err := runRoot(t, "--backend", b.URL, "-o", "json", "nav")
	require.NoError(t, err)

	var got struct {
		RootPath string `json:"rootPath"`
		Current  string `json:"currentDatabase"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "/data", got.RootPath)
	assert.Equal(t, "main.db", got.Current)
}

func TestRootCmd_EnvBackend(t *testing.T) {
	b := clitest.NewBackend(t, map[string]string{
		httpbridge.MethodQuery: `{"results":{"cols":["n"],"rows":[[42]]}}`,
	})
	t.Setenv("DBNAV_BACKEND__URL", b.URL)

	out, _, err := runRoot(t, "query", "-o", "markdown", "SELECT 42")

	require.NoError(t, err)
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "1 row returned")
}
