package images

import (
	"fmt"

	"github.com/projecteru2/svcimage/types"
	"github.com/projecteru2/svcimage/utils"
)

// DefaultTarball locates the distributed tarball in the package's install
// directory. The first glob match in sort order wins.
func (m *Manager) DefaultTarball() (string, error) {
	path, err := utils.FirstGlobMatch(m.conf.TarballDir, m.conf.TarballGlob)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", m.conf.TarballDir, err)
	}
	if path == "" {
		return "", fmt.Errorf("%w: no %s under %s",
			types.ErrNoTarball, m.conf.TarballGlob, m.conf.TarballDir)
	}
	return path, nil
}
