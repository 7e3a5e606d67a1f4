package types

import "errors"

var (
	// ErrImageExists is returned when installing under a name that is
	// already registered.
	ErrImageExists = errors.New("image name already registered")
	// ErrNoTarball is returned when no installable tarball can be located.
	ErrNoTarball = errors.New("no service image tarball found")
)
