// Package images implements the service image lifecycle: install from a
// distributed tarball, grouping of registered images by version tag, and
// the queries backing removal decisions.
package images

import (
	"context"

	"github.com/projecteru2/svcimage/cloud"
	"github.com/projecteru2/svcimage/config"
)

// commandRunner is the part of runner.Runner the manager uses.
type commandRunner interface {
	Output(ctx context.Context, name string, args ...string) (string, error)
	Tool(ctx context.Context, name string, args ...string) (string, error)
}

// Manager orchestrates service image operations against the cloud API and
// the external platform tools.
type Manager struct {
	conf *config.Config
	api  cloud.API
	run  commandRunner
}

// NewManager creates a Manager.
func NewManager(conf *config.Config, api cloud.API, run commandRunner) *Manager {
	return &Manager{conf: conf, api: api, run: run}
}
