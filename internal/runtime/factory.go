package runtime

import "fmt"

const (
	RuntimeTypeDocker = "docker"
	RuntimeTypeMemory = "memory"
)

// NewRuntimeFromConfig creates a ContainerRuntime based on the runtime type.
// "memory" backs tests and development; "docker" (the default) talks to
// the daemon configured in the environment.
func NewRuntimeFromConfig(runtimeType string, stopTimeoutSecs int) (ContainerRuntime, error) {
	switch runtimeType {
	case RuntimeTypeMemory:
		return NewMemoryRuntime(), nil
	case RuntimeTypeDocker, "":
		return NewDockerRuntime(stopTimeoutSecs)
	default:
		return nil, fmt.Errorf("unknown runtime type: %s (supported: %s, %s)", runtimeType, RuntimeTypeDocker, RuntimeTypeMemory)
	}
}
