package cmdsfx_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0x5457/book-rec/cmd/cmdsfx"
	"github.com/0x5457/book-rec/internal/app/appfx"
	"github.com/0x5457/book-rec/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func newRunner(t *testing.T) (*cmdsfx.CommandRunner, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book-rec.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog:\n  path: \"\"\nembed:\n  provider: local\nlogging:\n  level: error\n"), 0o644))

	var runner *cmdsfx.CommandRunner
	app := appfx.NewAppWithConfig(appfx.Overrides{ConfigPath: path}, fx.Populate(&runner))
	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() { _ = app.Stop(context.Background()) })

	var out bytes.Buffer
	runner.SetOutput(&out)
	return runner, &out
}

func TestRunRecommendText(t *testing.T) {
	runner, out := newRunner(t)

	require.NoError(t, runner.RunRecommend(context.Background(), "The Hobbit", 3, true, false))
	text := out.String()
	assert.Contains(t, text, "strategy: title")
	assert.Contains(t, text, "title match: The Hobbit")
	assert.Equal(t, 3, strings.Count(text, " by "))
}

func TestRunRecommendJSON(t *testing.T) {
	runner, out := newRunner(t)

	require.NoError(t, runner.RunRecommend(context.Background(), "fantasy", 2, false, true))
	assert.Contains(t, out.String(), `"results"`)
	assert.Contains(t, out.String(), "Harry Potter")
	assert.NotContains(t, out.String(), `"strategy"`)
}

func TestRunRecommendEmptyQuery(t *testing.T) {
	runner, out := newRunner(t)

	require.NoError(t, runner.RunRecommend(context.Background(), "   ", 0, false, false))
	assert.Contains(t, out.String(), "no recommendations")
}

func TestRunGenres(t *testing.T) {
	runner, out := newRunner(t)

	require.NoError(t, runner.RunGenres("a dystopian sci-fi story"))
	assert.Contains(t, out.String(), "dystopia")
	assert.Contains(t, out.String(), "science fiction")

	out.Reset()
	require.NoError(t, runner.RunGenres("zzz"))
	assert.Contains(t, out.String(), "no genres detected")
}

func TestRunCatalog(t *testing.T) {
	runner, out := newRunner(t)

	require.NoError(t, runner.RunCatalog())
	assert.Contains(t, out.String(), "books: 12")
	assert.Contains(t, out.String(), "index: 12 rows (built: false)")
	assert.Contains(t, out.String(), "Atomic Habits")

	require.NoError(t, runner.RunRecommend(context.Background(), "something to read", 1, false, false))
	out.Reset()
	require.NoError(t, runner.RunCatalog())
	assert.Contains(t, out.String(), "index: 12 rows (built: true)")
}

func TestRunnerWithoutComponents(t *testing.T) {
	runner := cmdsfx.NewCommandRunner(cmdsfx.Params{
		Config: config.Default(),
		Logger: zerolog.Nop(),
	})

	assert.Error(t, runner.RunGenres("fantasy"))
	assert.Error(t, runner.RunCatalog())
	assert.Error(t, runner.RunServe(context.Background()))
	assert.Error(t, runner.RunMCPServer("stdio", ""))
}

func TestRunMCPServerUnsupportedTransport(t *testing.T) {
	runner, _ := newRunner(t)

	err := runner.RunMCPServer("carrier-pigeon", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported transport")
}
