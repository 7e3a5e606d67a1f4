package images

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/projecteru2/svcimage/config"
	"github.com/projecteru2/svcimage/types"
)

func TestGroupByVersion(t *testing.T) {
	conf := testConfig()
	api := newFakeAPI()
	api.images = []*types.Image{
		{ID: "emi-1", Name: "eucalyptus-service-image-v5.0.100", Version: "5.0.100"},
		{ID: "emi-2", Name: "eucalyptus-service-image-v5.0.100", Version: "5.0.100"},
		{ID: "emi-3", Name: "eucalyptus-service-image-v5.1.0", Version: "5.1.0"},
		{ID: "emi-4", Name: "eucalyptus-service-image"},
		{ID: "emi-5", Name: "something-else", Version: "9.9"},
	}
	mgr := NewManager(conf, api, newFakeRun())

	groups, err := mgr.GroupByVersion(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 3)
	require.Equal(t, []string{"emi-1", "emi-2"}, groups.IDs("5.0.100"))
	require.Equal(t, []string{"emi-3"}, groups.IDs("5.1.0"))
	require.Equal(t, []string{"emi-4"}, groups.IDs(types.UntaggedVersion))
}

func TestEnabled(t *testing.T) {
	conf := testConfig()
	api := newFakeAPI()
	api.props[config.WorkerImageProperty("imaging")] = "emi-1"
	api.props[config.WorkerImageProperty("database")] = "emi-2"
	mgr := NewManager(conf, api, newFakeRun())

	enabled, err := mgr.Enabled(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"imaging":  "emi-1",
		"database": "emi-2",
	}, enabled)
}

func TestInstalledVersion(t *testing.T) {
	conf := testConfig()
	run := newFakeRun()
	run.outputs[packageQueryTool] = "5.1.0-0.155\n"
	mgr := NewManager(conf, newFakeAPI(), run)

	version, err := mgr.InstalledVersion(context.Background())
	require.NoError(t, err)
	require.Equal(t, "5.1.0-0.155", version)

	run.outputs[packageQueryTool] = ""
	_, err = mgr.InstalledVersion(context.Background())
	require.Error(t, err)
}

func TestDefaultTarball(t *testing.T) {
	conf := testConfig()
	conf.TarballDir = t.TempDir()
	mgr := NewManager(conf, newFakeAPI(), newFakeRun())

	_, err := mgr.DefaultTarball()
	require.ErrorIs(t, err, types.ErrNoTarball)

	for _, name := range []string{"svc-b.tgz", "svc-a.tgz", "ignored.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(conf.TarballDir, name), []byte("x"), 0o600))
	}
	path, err := mgr.DefaultTarball()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(conf.TarballDir, "svc-a.tgz"), path)
}
