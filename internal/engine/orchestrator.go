package engine

import (
	"context"
	"fmt"

	"github.com/bassista/dockhand/internal/logger"
	"github.com/bassista/dockhand/internal/metrics"
	"github.com/bassista/dockhand/internal/runtime"
	"github.com/sirupsen/logrus"
)

// UpdateContainer applies a partial configuration update to a container
// by recreating it: the current declared configuration is snapshotted,
// the request is merged onto it, and the container is swapped for a new
// instance built from the merged spec.
func (e *Engine) UpdateContainer(ctx context.Context, nameOrID string, req UpdateRequest) (*Result, error) {
	ins, err := e.rt.Inspect(ctx, nameOrID)
	if err != nil {
		return nil, err
	}

	target, err := Merge(ins.Spec, req)
	if err != nil {
		return nil, err
	}

	return e.recreate(ctx, ins, target)
}

// AttachVolume adds one named volume to a container. This is the
// single-mount variant of an update: the target spec is the snapshot
// plus the new mount. A volume that is already attached fails fast with
// ErrAlreadyAttached before anything destructive happens.
func (e *Engine) AttachVolume(ctx context.Context, nameOrID, volumeName, mountPoint string, mode runtime.MountMode) (*Result, error) {
	ins, err := e.rt.Inspect(ctx, nameOrID)
	if err != nil {
		return nil, err
	}

	if mode == "" {
		mode = runtime.ModeReadWrite
	}
	m := runtime.Mount{
		Source:      volumeName,
		Destination: mountPoint,
		Mode:        mode,
		Kind:        runtime.MountKindVolume,
	}

	if runtime.HasMountConflict(ins.Spec.Mounts, m) {
		return nil, fmt.Errorf("volume %s on container %s: %w", volumeName, ins.Name, ErrAlreadyAttached)
	}

	target := ins.Spec
	target.Mounts = append([]runtime.Mount(nil), ins.Spec.Mounts...)
	if err := target.AddMount(m); err != nil {
		return nil, err
	}

	return e.recreate(ctx, ins, target)
}

// recreate executes the destructive swap: stop (if running), remove,
// create from the target spec, start again if the container was running,
// then reconnect secondary networks.
//
// The failure contract is asymmetric. Before the remove has succeeded
// any error leaves the original container in place and is returned
// as-is. After it, a create or start failure is a RecreationLostError
// carrying the pre-change snapshot: the logical container is gone and
// only manual recovery can bring it back.
func (e *Engine) recreate(ctx context.Context, ins runtime.InspectResult, target runtime.ContainerSpec) (*Result, error) {
	log := logger.WithComponent("engine").WithField("container", ins.Name)
	wasRunning := ins.Running

	if wasRunning {
		if err := e.rt.Stop(ctx, ins.ID); err != nil {
			metrics.RecreationsTotal.WithLabelValues("stop_failed").Inc()
			return nil, fmt.Errorf("recreate %s: %w", ins.Name, err)
		}
	}

	if err := e.rt.Remove(ctx, ins.ID, false); err != nil {
		metrics.RecreationsTotal.WithLabelValues("remove_failed").Inc()
		return nil, fmt.Errorf("recreate %s: %w", ins.Name, err)
	}

	// Past the point of no return: the old record is gone. The remaining
	// steps must not be abandoned on request cancellation, or the
	// logical container stays absent with no error surfaced.
	ctx = context.WithoutCancel(ctx)

	newID, err := e.rt.Create(ctx, ins.Name, target)
	if err != nil {
		metrics.RecreationsTotal.WithLabelValues("lost").Inc()
		log.Errorf("create failed after remove, container lost: %v", err)
		return nil, &RecreationLostError{Name: ins.Name, Stage: "create", Snapshot: ins.Spec, Err: err}
	}

	if wasRunning {
		if err := e.rt.Start(ctx, newID); err != nil {
			metrics.RecreationsTotal.WithLabelValues("lost").Inc()
			log.Errorf("start failed after recreation: %v", err)
			return nil, &RecreationLostError{Name: ins.Name, Stage: "start", Snapshot: ins.Spec, Err: err}
		}
	}

	warnings := e.reattachNetworks(ctx, log, newID, target.Networks)

	metrics.RecreationsTotal.WithLabelValues("success").Inc()
	log.Infof("container recreated as %s (%d network warnings)", newID, len(warnings))
	return &Result{ID: newID, Warnings: warnings}, nil
}

// reattachNetworks connects the new container to every network beyond
// the first; the first was supplied at creation time. Connections are
// independent: a failure is recorded as a warning and the next network
// is still attempted, and prior successful connections are not reverted.
func (e *Engine) reattachNetworks(ctx context.Context, log *logrus.Entry, id string, networks []string) []string {
	if len(networks) < 2 {
		return nil
	}
	var warnings []string
	for _, netName := range networks[1:] {
		if err := e.rt.ConnectNetwork(ctx, id, netName); err != nil {
			metrics.ReattachFailures.Inc()
			log.Warnf("failed to reconnect network %s: %v", netName, err)
			warnings = append(warnings, netName)
		}
	}
	return warnings
}
