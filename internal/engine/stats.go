package engine

import (
	"context"
	"math"

	"github.com/bassista/dockhand/internal/logger"
	"github.com/bassista/dockhand/internal/runtime"
)

// CPUPercent derives an instantaneous CPU percentage from two
// cumulative-counter samples of the same container. A system delta of
// zero or less means the pair is stale: the result is exactly 0.0,
// never negative or undefined.
func CPUPercent(prev, cur runtime.StatSample) float64 {
	if cur.SystemCPUUsage <= prev.SystemCPUUsage {
		return 0.0
	}
	if cur.CPUTotalUsage < prev.CPUTotalUsage {
		return 0.0
	}
	cpuDelta := float64(cur.CPUTotalUsage - prev.CPUTotalUsage)
	systemDelta := float64(cur.SystemCPUUsage - prev.SystemCPUUsage)
	return (cpuDelta / systemDelta) * float64(cur.OnlineCPUs) * 100.0
}

// ResourceUsage is the aggregated disk usage of one resource class.
type ResourceUsage struct {
	TotalSize   int64 `json:"total_size"`
	Count       int   `json:"count"`
	Reclaimable int64 `json:"reclaimable"`
}

// UsageSummary is the aggregated disk usage across all resource classes.
type UsageSummary struct {
	Images     ResourceUsage `json:"images"`
	Containers ResourceUsage `json:"containers"`
	Volumes    ResourceUsage `json:"volumes"`
	BuildCache ResourceUsage `json:"build_cache"`
}

// AggregateUsage folds the daemon's raw disk usage into per-class
// totals. Reclaimable is defined per class: images with no referencing
// containers, writable layers of non-running containers, volumes with a
// zero reference count, and the full build cache.
func AggregateUsage(du runtime.DiskUsage) UsageSummary {
	var s UsageSummary

	for _, img := range du.Images {
		s.Images.TotalSize += img.Size
		s.Images.Count++
		if img.Containers == 0 {
			s.Images.Reclaimable += img.Size
		}
	}
	for _, c := range du.Containers {
		s.Containers.TotalSize += c.SizeRw
		s.Containers.Count++
		if !c.Running {
			s.Containers.Reclaimable += c.SizeRw
		}
	}
	for _, v := range du.Volumes {
		s.Volumes.TotalSize += v.Size
		s.Volumes.Count++
		if v.RefCount == 0 {
			s.Volumes.Reclaimable += v.Size
		}
	}
	for _, b := range du.BuildCache {
		s.BuildCache.TotalSize += b.Size
		s.BuildCache.Count++
		s.BuildCache.Reclaimable += b.Size
	}
	return s
}

// ContainerStats is the live resource usage of one container.
type ContainerStats struct {
	Name        string  `json:"name"`
	CPUPercent  float64 `json:"cpu_percent"`
	MemoryBytes uint64  `json:"memory_bytes"`
	MemoryMB    float64 `json:"memory_mb"`
}

// ContainerUsage fetches one stats sample pair for a container and
// derives its CPU percentage and memory usage.
func (e *Engine) ContainerUsage(ctx context.Context, nameOrID string) (ContainerStats, error) {
	snap, err := e.rt.Stats(ctx, nameOrID)
	if err != nil {
		return ContainerStats{}, err
	}
	return ContainerStats{
		Name:        nameOrID,
		CPUPercent:  CPUPercent(snap.Prev, snap.Cur),
		MemoryBytes: snap.Cur.MemoryUsage,
		MemoryMB:    roundTwo(float64(snap.Cur.MemoryUsage) / (1024 * 1024)),
	}, nil
}

// SystemInfo is the daemon-wide resource view served by GET /system.
type SystemInfo struct {
	ContainersRunning int          `json:"containers_running"`
	ContainersStopped int          `json:"containers_stopped"`
	ContainersPaused  int          `json:"containers_paused"`
	ContainersTotal   int          `json:"containers_total"`
	ImagesCount       int          `json:"images_count"`
	VolumesCount      int          `json:"volumes_count"`
	NetworksCount     int          `json:"networks_count"`
	ServerVersion     string       `json:"server_version"`
	TotalCPUPercent   float64      `json:"total_cpu_percent"`
	TotalMemoryBytes  uint64       `json:"total_memory_bytes"`
	TotalMemoryMB     float64      `json:"total_memory_mb"`
	SystemDF          UsageSummary `json:"system_df"`
}

// SystemInfo aggregates daemon counters, per-container live usage and
// disk usage into one view. Per-container stats are fetched in parallel
// to avoid sequential timeout accumulation; non-running containers
// contribute zero to the totals.
func (e *Engine) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	counts, err := e.rt.Counts(ctx)
	if err != nil {
		return nil, err
	}

	containers, err := e.rt.List(ctx, true)
	if err != nil {
		return nil, err
	}

	info := &SystemInfo{
		ContainersRunning: counts.ContainersRunning,
		ContainersStopped: counts.ContainersStopped,
		ContainersPaused:  counts.ContainersPaused,
		ContainersTotal:   counts.ContainersTotal,
		ImagesCount:       counts.Images,
		ServerVersion:     counts.ServerVersion,
	}

	if networks, err := e.rt.Networks(ctx); err == nil {
		info.NetworksCount = len(networks)
	}
	if volumes, err := e.rt.Volumes(ctx); err == nil {
		info.VolumesCount = len(volumes)
	}

	type usageResult struct {
		cpu float64
		mem uint64
	}
	resultChan := make(chan usageResult, len(containers))
	pending := 0
	for _, c := range containers {
		if c.State != "running" {
			continue
		}
		pending++
		go func(name string) {
			snap, err := e.rt.Stats(ctx, name)
			if err != nil {
				logger.WithComponent("engine").Warnf("failed to get stats for container %s: %v", name, err)
				resultChan <- usageResult{}
				return
			}
			resultChan <- usageResult{
				cpu: CPUPercent(snap.Prev, snap.Cur),
				mem: snap.Cur.MemoryUsage,
			}
		}(c.Name)
	}
	for i := 0; i < pending; i++ {
		res := <-resultChan
		info.TotalCPUPercent += res.cpu
		info.TotalMemoryBytes += res.mem
	}
	info.TotalCPUPercent = roundTwo(info.TotalCPUPercent)
	info.TotalMemoryMB = roundTwo(float64(info.TotalMemoryBytes) / (1024 * 1024))

	// Usage reporting is best-effort: an unreachable df endpoint yields
	// an all-zero summary instead of failing the whole system view.
	du, err := e.rt.DiskUsage(ctx)
	if err != nil {
		logger.WithComponent("engine").Warnf("disk usage unavailable, reporting zeros: %v", err)
		info.SystemDF = UsageSummary{}
		return info, nil
	}
	info.SystemDF = AggregateUsage(du)
	return info, nil
}

func roundTwo(v float64) float64 {
	return math.Round(v*100) / 100
}
