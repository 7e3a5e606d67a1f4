package cloud

import (
	"context"

	"github.com/projecteru2/svcimage/types"
)

// API is the slice of the cloud controller surface this tool consumes:
// image listing, image tagging, and the named-property store. A single
// listing call is trusted to be complete at the instant it is made — there
// is no pagination or read-after-write handling.
type API interface {
	// ListImages returns all registered images whose name matches name,
	// which may contain a trailing * wildcard. Version and Provides are
	// populated from the images' tags when present.
	ListImages(ctx context.Context, name string) ([]*types.Image, error)

	// CreateTags attaches the given tags to an image.
	CreateTags(ctx context.Context, id string, tags map[string]string) error

	// GetProperty reads a configuration property; "" when unset.
	GetProperty(ctx context.Context, key string) (string, error)

	// SetProperty writes a configuration property.
	SetProperty(ctx context.Context, key, value string) error
}
