package images

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/projecteru2/core/log"

	"github.com/projecteru2/svcimage/config"
	"github.com/projecteru2/svcimage/progress"
	installProgress "github.com/projecteru2/svcimage/progress/install"
	"github.com/projecteru2/svcimage/types"
)

const (
	extractTool = "tar"
	installTool = "euca-install-image"

	// Fixed registration parameters for the service image.
	imageArch = "x86_64"
	imageVirt = "hvm"
)

// Install registers the service image from tarball under name, tags it with
// version and the provided-service list, and marks it as the active worker
// image for every provided service. Returns the new image ID.
//
// The duplicate-name pre-check runs before anything touches the filesystem,
// so a re-run against an installed version is a clean failure.
func (m *Manager) Install(ctx context.Context, tarball, name, version string, tracker progress.Tracker) (string, error) {
	logger := log.WithFunc("images.Install")

	existing, err := m.api.ListImages(ctx, name)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return "", fmt.Errorf("%w: %s (%s)", types.ErrImageExists, name, existing[0].ID)
	}

	tracker.OnEvent(installProgress.Event{Phase: installProgress.PhaseExtract, Tarball: tarball})
	workDir := filepath.Join(os.TempDir(), "svcimage-"+uuid.NewString())
	if err := os.MkdirAll(workDir, 0o750); err != nil {
		return "", fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir) //nolint:errcheck

	imagePath, err := m.extract(ctx, tarball, workDir)
	if err != nil {
		return "", err
	}

	tracker.OnEvent(installProgress.Event{Phase: installProgress.PhaseRegister, Tarball: tarball})
	out, err := m.run.Tool(ctx, installTool,
		"-n", name,
		"-b", m.conf.ImageBaseName,
		"-r", imageArch,
		"-i", imagePath,
		"--virtualization-type", imageVirt,
		"--user", m.conf.AccountID,
	)
	if err != nil {
		return "", fmt.Errorf("register image %s: %w", name, err)
	}
	id, err := parseImageID(out)
	if err != nil {
		return "", fmt.Errorf("register image %s: %w", name, err)
	}
	logger.Infof(ctx, "registered %s as %s", name, id)

	tracker.OnEvent(installProgress.Event{Phase: installProgress.PhaseTag, ImageID: id})
	tags := map[string]string{
		"type":     m.conf.ImageBaseName,
		"version":  version,
		"provides": strings.Join(m.conf.Services, ","),
	}
	if err := m.api.CreateTags(ctx, id, tags); err != nil {
		return "", err
	}

	// The decompressed image is large; drop it as soon as the bundle is up.
	if err := os.Remove(imagePath); err != nil {
		logger.Warnf(ctx, "remove %s: %v", imagePath, err)
	}

	for _, service := range m.conf.Services {
		tracker.OnEvent(installProgress.Event{Phase: installProgress.PhaseEnable, ImageID: id, Service: service})
		key := config.WorkerImageProperty(service)
		if err := m.api.SetProperty(ctx, key, id); err != nil {
			return "", err
		}
	}

	tracker.OnEvent(installProgress.Event{Phase: installProgress.PhaseDone, ImageID: id})
	return id, nil
}

// extract unpacks tarball into workDir and returns the decompressed image
// path. The extractor lists entries on stdout; the image is the first one.
func (m *Manager) extract(ctx context.Context, tarball, workDir string) (string, error) {
	out, err := m.run.Output(ctx, extractTool, "-xvzSf", tarball, "-C", workDir)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", tarball, err)
	}
	first, _, _ := strings.Cut(out, "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return "", fmt.Errorf("extract %s: empty archive listing", tarball)
	}
	return filepath.Join(workDir, first), nil
}

// parseImageID recovers the image ID from the install tool's stdout. The
// tool's machine-readable summary is the second-to-last line, whose last
// whitespace-separated token is the ID ("IMAGE  emi-xxxxxxxx"). A format
// change in the tool breaks this; there is no stable alternative output.
func parseImageID(out string) (string, error) {
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) < 2 {
		return "", fmt.Errorf("unexpected install tool output: %q", out)
	}
	fields := strings.Fields(lines[len(lines)-2])
	if len(fields) == 0 {
		return "", fmt.Errorf("unexpected install tool output: %q", out)
	}
	return fields[len(fields)-1], nil
}
