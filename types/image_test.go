package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocationSplit(t *testing.T) {
	img := &Image{ID: "emi-00000001", Location: "bucket1/images/myimg.manifest.xml"}
	require.Equal(t, "bucket1/images", img.Bucket())
	require.Equal(t, "myimg", img.Prefix())
}

func TestLocationSplitFlat(t *testing.T) {
	img := &Image{Location: "myimg.manifest.xml"}
	require.Equal(t, "", img.Bucket())
	require.Equal(t, "myimg", img.Prefix())
}

func TestGroupingIsPartition(t *testing.T) {
	imgs := []*Image{
		{ID: "emi-1", Version: "5.0.100"},
		{ID: "emi-2", Version: "5.0.100"},
		{ID: "emi-3", Version: "5.1.0"},
		{ID: "emi-4"},
	}
	groups := VersionGroups{}
	for _, img := range imgs {
		groups.Add(img)
	}

	seen := map[string]int{}
	for _, version := range groups.Versions() {
		for _, img := range groups[version] {
			seen[img.ID]++
		}
	}
	require.Len(t, seen, len(imgs))
	for id, n := range seen {
		require.Equal(t, 1, n, "image %s appears in %d groups", id, n)
	}
	require.Equal(t, []string{"emi-1", "emi-2"}, groups.IDs("5.0.100"))
	require.Equal(t, []string{"emi-4"}, groups.IDs(UntaggedVersion))
}

func TestNewestIsLexicographic(t *testing.T) {
	groups := VersionGroups{}
	groups.Add(&Image{ID: "emi-1", Version: "5.0.9"})
	groups.Add(&Image{ID: "emi-2", Version: "5.0.10"})
	// String ordering, not numeric: "9" sorts above "10".
	require.Equal(t, "5.0.9", groups.Newest())
}

func TestNewestSkipsUntagged(t *testing.T) {
	groups := VersionGroups{}
	groups.Add(&Image{ID: "emi-1"})
	groups.Add(&Image{ID: "emi-2", Version: "5.0.100"})
	require.Equal(t, "5.0.100", groups.Newest())

	only := VersionGroups{}
	only.Add(&Image{ID: "emi-3"})
	require.Equal(t, UntaggedVersion, only.Newest())

	require.Equal(t, "", VersionGroups{}.Newest())
}
