package actions

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"gitpilot.dev/gitpilot/internal/ai"
	"gitpilot.dev/gitpilot/internal/git"
	"gitpilot.dev/gitpilot/internal/runtime"
	"gitpilot.dev/gitpilot/internal/tui"
	"gitpilot.dev/gitpilot/testhelpers"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// testEnv is a repository with an origin remote, a drafter backed by a mock
// invoker, a fake GitHub client and a scripted prompter.
type testEnv struct {
	rt       *runtime.Context
	out      *bytes.Buffer
	scene    *testhelpers.GitRepo
	repo     *git.Repo
	invoker  *ai.MockInvoker
	github   *testhelpers.FakeGitHubClient
	prompter *testhelpers.ScriptedPrompter
}

func newTestEnv(t *testing.T, outcomes ...ai.Outcome) *testEnv {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "repo")
	scene, err := testhelpers.NewGitRepo(dir)
	require.NoError(t, err)
	require.NoError(t, scene.CreateChangeAndCommit("initial commit", "init"))
	_, err = scene.CreateBareRemote("origin")
	require.NoError(t, err)

	repo, err := git.Open(dir)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	splog, err := tui.NewSplogWithConfig(out, "")
	require.NoError(t, err)

	invoker := ai.NewMockInvoker(outcomes...)
	drafter := ai.NewGenerator(ai.NewOrchestrator(invoker, splog, ai.DefaultLimits()), "gpt-4.1")

	rt := runtime.NewContext(splog, repo, drafter)
	rt.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")

	gh := testhelpers.NewFakeGitHubClient("octo", "app")
	rt.SetGitHubClient(gh)

	prompter := testhelpers.NewScriptedPrompter()
	rt.Prompter = prompter

	return &testEnv{
		rt:       rt,
		out:      out,
		scene:    scene,
		repo:     repo,
		invoker:  invoker,
		github:   gh,
		prompter: prompter,
	}
}

// interactive makes the environment answer prompts from the script
func (e *testEnv) interactive() *testEnv {
	e.rt.Interactive = true
	return e
}

func (e *testEnv) git(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.scene.RunGitCommandAndGetOutput(args...)
	require.NoError(t, err)
	return out
}
