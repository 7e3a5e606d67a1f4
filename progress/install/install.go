package install

// Phase represents a stage in the service image install lifecycle.
type Phase int

const (
	PhaseExtract  Phase = iota // Tarball located, extraction started.
	PhaseRegister              // Bundling and registering with the controller.
	PhaseTag                   // Attaching type/version/provides tags.
	PhaseEnable                // Writing per-service worker image properties.
	PhaseDone                  // Install completed successfully.
)

// Event describes a single install progress update.
type Event struct {
	Phase   Phase
	Tarball string // Source tarball path (PhaseExtract).
	ImageID string // Registered image ID (PhaseTag onward).
	Service string // Service being enabled (PhaseEnable).
}
