package engine

import "github.com/bassista/dockhand/internal/runtime"

// UpdateRequest is a partial container update. Every field is
// independently optional: a nil field keeps the snapshot's value, a
// present field replaces the snapshot's value wholesale. Replacement is
// field-level, not element-level - supplying one environment variable
// replaces the entire environment list.
type UpdateRequest struct {
	Image       *string         `json:"image"`
	Environment []string        `json:"environment"`
	Volumes     []string        `json:"volumes"` // colon-delimited bind specs
	Networks    []string        `json:"networks"`
	Ports       runtime.PortMap `json:"ports"`
}

// Merge overlays a partial update onto a snapshot, producing the
// complete target spec for a recreation. Volume strings are decoded
// through the mount translator; a malformed entry fails the merge
// before anything destructive happens.
func Merge(base runtime.ContainerSpec, req UpdateRequest) (runtime.ContainerSpec, error) {
	target := base

	if req.Image != nil {
		target.Image = *req.Image
	}
	if req.Environment != nil {
		target.Env = req.Environment
	}
	if req.Volumes != nil {
		mounts := make([]runtime.Mount, 0, len(req.Volumes))
		for _, spec := range req.Volumes {
			m, err := runtime.ParseBindSpec(spec)
			if err != nil {
				return runtime.ContainerSpec{}, err
			}
			mounts = append(mounts, m)
		}
		target.Mounts = mounts
	}
	if req.Networks != nil {
		target.Networks = req.Networks
	}
	if req.Ports != nil {
		target.Ports = req.Ports
	}
	return target, nil
}
