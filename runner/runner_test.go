package runner

import (
	"context"
	"os"
	"testing"

	"github.com/projecteru2/core/log"
	coretypes "github.com/projecteru2/core/types"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = log.SetupLog(context.TODO(), &coretypes.ServerLogConfig{Level: "debug"}, "")
	os.Exit(m.Run())
}

func TestOutputCapturesStdoutOnly(t *testing.T) {
	r := New(false)
	out, err := r.Output(context.Background(), "sh", "-c", "echo visible; echo hidden >&2")
	require.NoError(t, err)
	require.Equal(t, "visible\n", out)
}

func TestOutputFailureCarriesCombinedOutput(t *testing.T) {
	r := New(false)
	_, err := r.Output(context.Background(), "sh", "-c", "echo partial; echo boom >&2; exit 3")
	require.Error(t, err)
	require.Contains(t, err.Error(), "exit status 3")
	require.Contains(t, err.Error(), "partial")
	require.Contains(t, err.Error(), "boom")
}

func TestOutputMissingBinary(t *testing.T) {
	r := New(false)
	_, err := r.Output(context.Background(), "svcimage-no-such-tool-xyzzy")
	require.Error(t, err)
}

func TestToolAppendsDebugFlag(t *testing.T) {
	r := New(true)
	out, err := r.Tool(context.Background(), "echo", "hello")
	require.NoError(t, err)
	require.Equal(t, "hello --debug\n", out)

	r = New(false)
	out, err = r.Tool(context.Background(), "echo", "hello")
	require.NoError(t, err)
	require.Equal(t, "hello\n", out)
}
