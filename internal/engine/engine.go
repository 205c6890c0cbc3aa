package engine

import "github.com/bassista/dockhand/internal/runtime"

// Engine implements the container reconfiguration and stats aggregation
// logic on top of a ContainerRuntime. The daemon offers no in-place
// update primitive, so every configuration change goes through a
// destructive stop/remove/create/start swap.
type Engine struct {
	rt runtime.ContainerRuntime
}

func New(rt runtime.ContainerRuntime) *Engine {
	return &Engine{rt: rt}
}

// Result is the successful outcome of a recreation: the new container's
// identity plus the names of secondary networks that could not be
// reattached. A container's id is not stable across an update; callers
// must key the logical container by name.
type Result struct {
	ID       string   `json:"id"`
	Warnings []string `json:"warnings,omitempty"`
}
