package engine

import (
	"errors"
	"fmt"

	"github.com/bassista/dockhand/internal/runtime"
)

// ErrAlreadyAttached is returned when a volume attach request names a
// source that is already mounted in the container. Nothing destructive
// has happened when this error is returned.
var ErrAlreadyAttached = errors.New("volume already attached")

// RecreationLostError reports that the old container was removed but the
// replacement could not be brought up: the destructive step succeeded
// and recreation failed, so neither instance is available. The captured
// pre-change snapshot is attached to enable manual recovery. The engine
// does not retry, because reusing an already-consumed container name is
// not guaranteed safe.
type RecreationLostError struct {
	Name     string
	Stage    string // "create" or "start"
	Snapshot runtime.ContainerSpec
	Err      error
}

func (e *RecreationLostError) Error() string {
	return fmt.Sprintf("container %s lost during recreation (stage %s): %v", e.Name, e.Stage, e.Err)
}

func (e *RecreationLostError) Unwrap() error {
	return e.Err
}
