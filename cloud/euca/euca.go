// Package euca implements cloud.API on top of the platform admin CLIs.
// The controller's image and property services are external collaborators;
// every call here is one tool invocation with a fixed argument shape.
package euca

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/projecteru2/svcimage/cloud"
	"github.com/projecteru2/svcimage/config"
	"github.com/projecteru2/svcimage/types"
)

const (
	describeImagesTool = "euca-describe-images"
	createTagsTool     = "euca-create-tags"
	propertiesTool     = "euctl"
)

// commandRunner is the part of runner.Runner this client uses.
type commandRunner interface {
	Tool(ctx context.Context, name string, args ...string) (string, error)
}

// Client talks to the cloud controller through the admin CLIs.
type Client struct {
	conf *config.Config
	run  commandRunner
}

var _ cloud.API = (*Client)(nil)

// New creates a Client.
func New(conf *config.Config, run commandRunner) *Client {
	return &Client{conf: conf, run: run}
}

// ListImages lists registered images, filtered by name when non-empty.
// Output parsing follows the tool's tabular format: IMAGE rows carry the
// identifier and manifest location, TAG rows carry key/value pairs that
// are folded back onto the preceding images.
func (c *Client) ListImages(ctx context.Context, name string) ([]*types.Image, error) {
	args := []string{"-U", c.conf.EC2URL}
	if name != "" {
		args = append(args, "--filter", "name="+name)
	}
	out, err := c.run.Tool(ctx, describeImagesTool, args...)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	var images []*types.Image
	byID := map[string]*types.Image{}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "IMAGE":
			if len(fields) < 3 {
				continue
			}
			img := &types.Image{ID: fields[1], Location: fields[2]}
			img.Name = img.Prefix()
			images = append(images, img)
			byID[img.ID] = img
		case "TAG":
			// TAG image <id> <key> <value...>
			if len(fields) < 5 {
				continue
			}
			img, ok := byID[fields[2]]
			if !ok {
				continue
			}
			value := strings.Join(fields[4:], " ")
			switch fields[3] {
			case "version":
				img.Version = value
			case "provides":
				img.Provides = value
			}
		}
	}
	return images, nil
}

// CreateTags attaches tags to an image. Keys are passed in sorted order so
// invocations are reproducible.
func (c *Client) CreateTags(ctx context.Context, id string, tags map[string]string) error {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := []string{"-U", c.conf.EC2URL, id}
	for _, k := range keys {
		args = append(args, "--tag", fmt.Sprintf("%s=%s", k, tags[k]))
	}
	if _, err := c.run.Tool(ctx, createTagsTool, args...); err != nil {
		return fmt.Errorf("tag image %s: %w", id, err)
	}
	return nil
}

// GetProperty reads one configuration property. The tool prints
// "<key> = <value>"; anything else is treated as unset.
func (c *Client) GetProperty(ctx context.Context, key string) (string, error) {
	out, err := c.run.Tool(ctx, propertiesTool, "-U", c.conf.PropertiesURL, key)
	if err != nil {
		return "", fmt.Errorf("get property %s: %w", key, err)
	}
	fields := strings.Fields(out)
	if len(fields) != 3 {
		return "", nil
	}
	return fields[2], nil
}

// SetProperty writes one configuration property.
func (c *Client) SetProperty(ctx context.Context, key, value string) error {
	args := []string{"-U", c.conf.PropertiesURL, fmt.Sprintf("%s=%s", key, value)}
	if _, err := c.run.Tool(ctx, propertiesTool, args...); err != nil {
		return fmt.Errorf("set property %s=%s: %w", key, value, err)
	}
	return nil
}
