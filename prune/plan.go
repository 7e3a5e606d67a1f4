// Package prune removes registered service image generations. Removal is
// split into a pure planning step over the version grouping and an execution
// step that drives the external deregistration tools, so the retention rules
// are testable without touching the platform.
package prune

import (
	"github.com/projecteru2/svcimage/types"
)

// Policy controls which version groups a plan deletes.
type Policy struct {
	// KeepNewest retains the highest-sorting version group (remove-old).
	// When false every group is a candidate (remove-all).
	KeepNewest bool
	// Force deletes groups even when they contain an enabled image.
	Force bool
}

// SkippedGroup records a version group left in place because one of its
// images is the active worker image for a service.
type SkippedGroup struct {
	Version string
	Enabled []string // enabled image IDs found in the group
}

// Plan is the outcome of applying a Policy to the current grouping.
type Plan struct {
	// Delete lists images to remove, ordered by ascending version.
	Delete []*types.Image
	// KeptVersion is the version retained by KeepNewest, "" otherwise.
	KeptVersion string
	// Skipped lists groups protected by an enabled image.
	Skipped []SkippedGroup
}

// Build applies policy to groups. enabled maps service name to its active
// image ID; any group containing one of those IDs is skipped unless Force.
func Build(groups types.VersionGroups, enabled map[string]string, policy Policy) *Plan {
	enabledIDs := map[string]struct{}{}
	for _, id := range enabled {
		enabledIDs[id] = struct{}{}
	}

	plan := &Plan{}
	if policy.KeepNewest {
		plan.KeptVersion = groups.Newest()
	}

	for _, version := range groups.Versions() {
		if version == plan.KeptVersion && plan.KeptVersion != "" {
			continue
		}
		if !policy.Force {
			var hits []string
			for _, img := range groups[version] {
				if _, ok := enabledIDs[img.ID]; ok {
					hits = append(hits, img.ID)
				}
			}
			if len(hits) > 0 {
				plan.Skipped = append(plan.Skipped, SkippedGroup{Version: version, Enabled: hits})
				continue
			}
		}
		plan.Delete = append(plan.Delete, groups[version]...)
	}
	return plan
}
