package images

import (
	"context"
	"fmt"
	"strings"
)

const packageQueryTool = "rpm"

// InstalledVersion returns the version of the locally installed service
// image package, the default version tag for a new install.
func (m *Manager) InstalledVersion(ctx context.Context) (string, error) {
	out, err := m.run.Output(ctx, packageQueryTool,
		"-q", "--queryformat", "%{VERSION}-%{RELEASE}", m.conf.PackageName)
	if err != nil {
		return "", fmt.Errorf("query package %s: %w", m.conf.PackageName, err)
	}
	version := strings.TrimSpace(out)
	if version == "" {
		return "", fmt.Errorf("query package %s: empty version", m.conf.PackageName)
	}
	return version, nil
}
