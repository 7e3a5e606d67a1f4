package prune

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/projecteru2/svcimage/types"
)

type toolCall struct {
	name string
	args []string
}

type fakeRunner struct {
	calls  []toolCall
	failOn string // image ID whose deregistration fails
}

func (f *fakeRunner) Tool(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, toolCall{name: name, args: args})
	if name == deregisterTool && len(args) > 0 && args[0] == f.failOn {
		return "", fmt.Errorf("%s %s: exit status 1", name, args[0])
	}
	return "", nil
}

func TestExecuteDeregistersThenDeletesBundle(t *testing.T) {
	run := &fakeRunner{}
	e := NewExecutor(run)

	plan := &Plan{Delete: []*types.Image{
		{ID: "emi-a", Location: "bucket1/images/myimg.manifest.xml"},
	}}
	removed, err := e.Execute(context.Background(), plan)
	require.NoError(t, err)
	require.Equal(t, []string{"emi-a"}, removed)

	require.Len(t, run.calls, 2)
	require.Equal(t, deregisterTool, run.calls[0].name)
	require.Equal(t, []string{"emi-a"}, run.calls[0].args)
	require.Equal(t, deleteBundleTool, run.calls[1].name)
	require.Equal(t, []string{"-b", "bucket1/images", "-p", "myimg", "--clear"}, run.calls[1].args)
}

func TestExecuteAbortsOnFirstFailure(t *testing.T) {
	run := &fakeRunner{failOn: "emi-b"}
	e := NewExecutor(run)

	plan := &Plan{Delete: []*types.Image{
		{ID: "emi-a", Location: "b/a.manifest.xml"},
		{ID: "emi-b", Location: "b/b.manifest.xml"},
		{ID: "emi-c", Location: "b/c.manifest.xml"},
	}}
	removed, err := e.Execute(context.Background(), plan)
	require.Error(t, err)
	// emi-a stays removed, emi-c is never attempted.
	require.Equal(t, []string{"emi-a"}, removed)
	for _, c := range run.calls {
		require.NotEqual(t, []string{"emi-c"}, c.args)
	}
}
