package runtime

import (
	"errors"
	"fmt"
)

var (
	// ErrContainerNotFound is returned when a container name or id no
	// longer resolves on the daemon.
	ErrContainerNotFound = errors.New("container not found")

	// ErrRuntimeUnavailable is returned when the daemon control API
	// cannot be reached at all.
	ErrRuntimeUnavailable = errors.New("container runtime unavailable")

	// ErrMalformedMountSpec is returned for mount specs that cannot be
	// decoded or violate a spec invariant.
	ErrMalformedMountSpec = errors.New("malformed mount spec")
)

// MountError carries the offending spec string alongside
// ErrMalformedMountSpec.
type MountError struct {
	Spec   string
	Reason string
}

func (e *MountError) Error() string {
	return fmt.Sprintf("invalid mount %q: %s", e.Spec, e.Reason)
}

func (e *MountError) Unwrap() error {
	return ErrMalformedMountSpec
}
