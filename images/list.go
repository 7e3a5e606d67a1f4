package images

import (
	"context"

	"github.com/projecteru2/svcimage/config"
	"github.com/projecteru2/svcimage/types"
)

// GroupByVersion lists every registered service image and partitions the
// result by version tag. Built from a single listing call per run.
func (m *Manager) GroupByVersion(ctx context.Context) (types.VersionGroups, error) {
	imgs, err := m.api.ListImages(ctx, m.conf.ImageBaseName+"*")
	if err != nil {
		return nil, err
	}
	groups := types.VersionGroups{}
	for _, img := range imgs {
		groups.Add(img)
	}
	return groups, nil
}

// Enabled returns the active worker image ID per service, read from one
// configuration property each. Services with no image set are omitted.
func (m *Manager) Enabled(ctx context.Context) (map[string]string, error) {
	enabled := map[string]string{}
	for _, service := range m.conf.Services {
		id, err := m.api.GetProperty(ctx, config.WorkerImageProperty(service))
		if err != nil {
			return nil, err
		}
		if id != "" {
			enabled[service] = id
		}
	}
	return enabled, nil
}
