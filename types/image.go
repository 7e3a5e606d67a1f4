package types

import (
	"sort"
	"strings"
)

// UntaggedVersion is the group key for images that carry no version tag.
const UntaggedVersion = "(untagged)"

// manifestSuffix is appended by the bundle tool to every uploaded manifest.
const manifestSuffix = ".manifest.xml"

// Image is one registered service image as reported by the cloud API.
type Image struct {
	// ID is the opaque image identifier assigned at registration (emi-xxxxxxxx).
	ID string `json:"id"`
	// Name is the exact image name used at registration time.
	Name string `json:"name"`
	// Location is the bundle manifest path, bucket/prefix/name.manifest.xml.
	Location string `json:"location"`
	// Version is the value of the image's version tag, empty when untagged.
	Version string `json:"version"`
	// Provides is the comma-separated service list from the provides tag.
	Provides string `json:"provides"`
}

// Bucket returns the bundle bucket path, everything before the last '/'
// of Location. For "bucket1/images/myimg.manifest.xml" this is
// "bucket1/images".
func (i *Image) Bucket() string {
	idx := strings.LastIndex(i.Location, "/")
	if idx < 0 {
		return ""
	}
	return i.Location[:idx]
}

// Prefix returns the bundle object prefix, the final Location element with
// the manifest suffix stripped. For "bucket1/images/myimg.manifest.xml"
// this is "myimg".
func (i *Image) Prefix() string {
	idx := strings.LastIndex(i.Location, "/")
	last := i.Location[idx+1:]
	return strings.TrimSuffix(last, manifestSuffix)
}

// VersionGroups maps a version tag to the images registered under it.
// Images without a version tag are grouped under UntaggedVersion.
type VersionGroups map[string][]*Image

// Add files img into the group for its version tag.
func (g VersionGroups) Add(img *Image) {
	key := img.Version
	if key == "" {
		key = UntaggedVersion
	}
	g[key] = append(g[key], img)
}

// Versions returns all group keys in ascending sort order.
func (g VersionGroups) Versions() []string {
	keys := make([]string, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Newest returns the highest-sorting version key, or "" for an empty group.
// Ordering is plain string comparison, matching how the platform orders
// version tags elsewhere; it is not semver-aware.
func (g VersionGroups) Newest() string {
	newest := ""
	for k := range g {
		if k == UntaggedVersion {
			continue
		}
		if k > newest {
			newest = k
		}
	}
	if newest == "" && len(g[UntaggedVersion]) > 0 {
		return UntaggedVersion
	}
	return newest
}

// IDs returns the image IDs of every group member, in group order.
func (g VersionGroups) IDs(version string) []string {
	imgs := g[version]
	ids := make([]string, 0, len(imgs))
	for _, img := range imgs {
		ids = append(ids, img.ID)
	}
	return ids
}
