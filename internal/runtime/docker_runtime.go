package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/netip"
	"sort"
	"strings"

	"github.com/containerd/errdefs"
	"github.com/moby/moby/api/types/container"
	"github.com/moby/moby/api/types/mount"
	"github.com/moby/moby/api/types/network"
	"github.com/moby/moby/client"
)

// DockerRuntime drives a Docker daemon through one long-lived client.
// The client is safe for concurrent use; DockerRuntime adds no locking
// and no per-request reconnection.
type DockerRuntime struct {
	cli DockerClient

	// stopTimeoutSecs is how long the daemon waits for a container to
	// exit on stop before killing it. Zero keeps the daemon default.
	stopTimeoutSecs int
}

func NewDockerRuntime(stopTimeoutSecs int) (*DockerRuntime, error) {
	cli, err := client.New(client.FromEnv)
	if err != nil {
		return nil, fmt.Errorf("cannot create Docker client: %w", err)
	}
	return &DockerRuntime{cli: cli, stopTimeoutSecs: stopTimeoutSecs}, nil
}

// NewDockerRuntimeWithClient builds a DockerRuntime on a caller-provided
// client, mainly for tests.
func NewDockerRuntimeWithClient(cli DockerClient) *DockerRuntime {
	return &DockerRuntime{cli: cli}
}

// wrapErr maps daemon errors onto the runtime error kinds.
func wrapErr(op, nameOrID string, err error) error {
	switch {
	case errdefs.IsNotFound(err):
		return fmt.Errorf("%s %s: %w", op, nameOrID, ErrContainerNotFound)
	case errdefs.IsUnavailable(err):
		return fmt.Errorf("%s %s: %w", op, nameOrID, ErrRuntimeUnavailable)
	default:
		return fmt.Errorf("%s %s: %w", op, nameOrID, err)
	}
}

func (d *DockerRuntime) Inspect(ctx context.Context, nameOrID string) (InspectResult, error) {
	res, err := d.cli.ContainerInspect(ctx, nameOrID, client.ContainerInspectOptions{})
	if err != nil {
		return InspectResult{}, wrapErr("inspect container", nameOrID, err)
	}
	return normalizeInspect(res.Container), nil
}

// normalizeInspect reads the daemon's inspect payload into the engine's
// normalized record. Fields are taken exactly as stored; mounts are
// structurally decoded, nothing else is validated.
func normalizeInspect(ctr container.InspectResponse) InspectResult {
	out := InspectResult{
		ID:      ctr.ID,
		Name:    strings.TrimPrefix(ctr.Name, "/"),
		Created: ctr.Created,
	}
	if ctr.State != nil {
		out.Running = ctr.State.Running
		out.State = string(ctr.State.Status)
	}
	if ctr.Config != nil {
		out.Spec.Image = ctr.Config.Image
		out.Spec.Env = append([]string(nil), ctr.Config.Env...)
		out.Labels = ctr.Config.Labels
	}
	for _, mp := range ctr.Mounts {
		out.Spec.Mounts = append(out.Spec.Mounts, mountFromPoint(mp))
	}
	if ctr.NetworkSettings != nil {
		out.Spec.Networks = orderedNetworks(ctr)
	}
	if ctr.HostConfig != nil {
		out.Spec.Ports = fromPortMap(ctr.HostConfig.PortBindings)
	}
	return out
}

func mountFromPoint(mp container.MountPoint) Mount {
	m := Mount{
		Source:      mp.Source,
		Destination: mp.Destination,
		Mode:        ModeReadWrite,
		Kind:        MountKindBind,
	}
	if mp.Type == mount.TypeVolume {
		m.Kind = MountKindVolume
		m.Source = mp.Name
	}
	if !mp.RW {
		m.Mode = ModeReadOnly
	}
	return m
}

// orderedNetworks returns the container's network names with the attach
// network first. The inspect payload stores networks in a map, so the
// remaining entries are sorted to keep the order stable.
func orderedNetworks(ctr container.InspectResponse) []string {
	names := make([]string, 0, len(ctr.NetworkSettings.Networks))
	for name := range ctr.NetworkSettings.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	if ctr.HostConfig == nil {
		return names
	}
	primary := string(ctr.HostConfig.NetworkMode)
	for i, name := range names {
		if name == primary && i > 0 {
			names = append([]string{name}, append(names[:i:i], names[i+1:]...)...)
			break
		}
	}
	return names
}

func fromPortMap(pm network.PortMap) PortMap {
	if len(pm) == 0 {
		return nil
	}
	out := make(PortMap, len(pm))
	for port, bindings := range pm {
		converted := make([]PortBinding, 0, len(bindings))
		for _, b := range bindings {
			hostIP := ""
			if b.HostIP.IsValid() {
				hostIP = b.HostIP.String()
			}
			converted = append(converted, PortBinding{HostIP: hostIP, HostPort: b.HostPort})
		}
		out[port.String()] = converted
	}
	return out
}

func toPortMap(pm PortMap) (network.PortMap, error) {
	if len(pm) == 0 {
		return nil, nil
	}
	out := make(network.PortMap, len(pm))
	for portSpec, bindings := range pm {
		port, err := network.ParsePort(portSpec)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", portSpec, err)
		}
		converted := make([]network.PortBinding, 0, len(bindings))
		for _, b := range bindings {
			binding := network.PortBinding{HostPort: b.HostPort}
			if b.HostIP != "" {
				addr, err := netip.ParseAddr(b.HostIP)
				if err != nil {
					return nil, fmt.Errorf("invalid host ip %q for port %q: %w", b.HostIP, portSpec, err)
				}
				binding.HostIP = addr
			}
			converted = append(converted, binding)
		}
		out[port] = converted
	}
	return out, nil
}

func (d *DockerRuntime) IsRunning(ctx context.Context, nameOrID string) (bool, error) {
	res, err := d.cli.ContainerInspect(ctx, nameOrID, client.ContainerInspectOptions{})
	if err != nil {
		return false, wrapErr("inspect container", nameOrID, err)
	}
	if res.Container.State == nil {
		return false, nil
	}
	return res.Container.State.Running, nil
}

func (d *DockerRuntime) List(ctx context.Context, all bool) ([]ContainerInfo, error) {
	res, err := d.cli.ContainerList(ctx, client.ContainerListOptions{All: all, Size: true})
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	infos := make([]ContainerInfo, 0, len(res.Items))
	for _, c := range res.Items {
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}
		infos = append(infos, ContainerInfo{
			ID:     c.ID,
			Name:   name,
			Image:  c.Image,
			State:  string(c.State),
			Status: c.Status,
		})
	}
	return infos, nil
}

func (d *DockerRuntime) Start(ctx context.Context, nameOrID string) error {
	if _, err := d.cli.ContainerStart(ctx, nameOrID, client.ContainerStartOptions{}); err != nil {
		return wrapErr("start container", nameOrID, err)
	}
	return nil
}

func (d *DockerRuntime) Stop(ctx context.Context, nameOrID string) error {
	opts := client.ContainerStopOptions{}
	if d.stopTimeoutSecs > 0 {
		timeout := d.stopTimeoutSecs
		opts.Timeout = &timeout
	}
	if _, err := d.cli.ContainerStop(ctx, nameOrID, opts); err != nil {
		return wrapErr("stop container", nameOrID, err)
	}
	return nil
}

func (d *DockerRuntime) Restart(ctx context.Context, nameOrID string) error {
	if _, err := d.cli.ContainerRestart(ctx, nameOrID, client.ContainerRestartOptions{}); err != nil {
		return wrapErr("restart container", nameOrID, err)
	}
	return nil
}

func (d *DockerRuntime) Remove(ctx context.Context, nameOrID string, force bool) error {
	if _, err := d.cli.ContainerRemove(ctx, nameOrID, client.ContainerRemoveOptions{Force: force}); err != nil {
		return wrapErr("remove container", nameOrID, err)
	}
	return nil
}

func (d *DockerRuntime) Rename(ctx context.Context, nameOrID, newName string) error {
	if _, err := d.cli.ContainerRename(ctx, nameOrID, client.ContainerRenameOptions{NewName: newName}); err != nil {
		return wrapErr("rename container", nameOrID, err)
	}
	return nil
}

func (d *DockerRuntime) Create(ctx context.Context, name string, spec ContainerSpec) (string, error) {
	cfg := &container.Config{
		Image: spec.Image,
		Env:   spec.Env,
	}

	binds := make([]string, 0, len(spec.Mounts))
	for _, m := range spec.Mounts {
		binds = append(binds, m.BindSpec())
	}
	portBindings, err := toPortMap(spec.Ports)
	if err != nil {
		return "", fmt.Errorf("create container %s: %w", name, err)
	}
	hostCfg := &container.HostConfig{
		Binds:        binds,
		PortBindings: portBindings,
	}

	var netCfg *network.NetworkingConfig
	if len(spec.Networks) > 0 {
		// Only the primary network is supplied at creation; the engine
		// connects the rest afterwards.
		netCfg = &network.NetworkingConfig{
			EndpointsConfig: map[string]*network.EndpointSettings{
				spec.Networks[0]: {},
			},
		}
	}

	res, err := d.cli.ContainerCreate(ctx, client.ContainerCreateOptions{
		Name:             name,
		Config:           cfg,
		HostConfig:       hostCfg,
		NetworkingConfig: netCfg,
	})
	if err != nil {
		return "", wrapErr("create container", name, err)
	}
	return res.ID, nil
}

func (d *DockerRuntime) ConnectNetwork(ctx context.Context, nameOrID, networkName string) error {
	_, err := d.cli.NetworkConnect(ctx, networkName, client.NetworkConnectOptions{Container: nameOrID})
	if err != nil {
		return wrapErr("connect network", networkName, err)
	}
	return nil
}

func (d *DockerRuntime) DisconnectNetwork(ctx context.Context, nameOrID, networkName string) error {
	_, err := d.cli.NetworkDisconnect(ctx, networkName, client.NetworkDisconnectOptions{Container: nameOrID})
	if err != nil {
		return wrapErr("disconnect network", networkName, err)
	}
	return nil
}

func (d *DockerRuntime) Stats(ctx context.Context, nameOrID string) (StatsSnapshot, error) {
	res, err := d.cli.ContainerStats(ctx, nameOrID, client.ContainerStatsOptions{})
	if err != nil {
		return StatsSnapshot{}, wrapErr("stats for container", nameOrID, err)
	}
	defer func() { _ = res.Body.Close() }()

	var s container.StatsResponse
	if err := json.NewDecoder(res.Body).Decode(&s); err != nil {
		return StatsSnapshot{}, fmt.Errorf("decode stats for container %s: %w", nameOrID, err)
	}

	cpus := s.CPUStats.OnlineCPUs
	if cpus == 0 {
		cpus = uint32(len(s.CPUStats.CPUUsage.PercpuUsage))
	}
	if cpus == 0 {
		cpus = 1
	}

	return StatsSnapshot{
		Prev: StatSample{
			CPUTotalUsage:  s.PreCPUStats.CPUUsage.TotalUsage,
			SystemCPUUsage: s.PreCPUStats.SystemUsage,
			OnlineCPUs:     cpus,
		},
		Cur: StatSample{
			CPUTotalUsage:  s.CPUStats.CPUUsage.TotalUsage,
			SystemCPUUsage: s.CPUStats.SystemUsage,
			OnlineCPUs:     cpus,
			MemoryUsage:    s.MemoryStats.Usage,
		},
	}, nil
}

func (d *DockerRuntime) DiskUsage(ctx context.Context) (DiskUsage, error) {
	res, err := d.cli.DiskUsage(ctx, client.DiskUsageOptions{})
	if err != nil {
		return DiskUsage{}, fmt.Errorf("disk usage: %w", err)
	}

	var du DiskUsage
	for _, img := range res.Images.Items {
		du.Images = append(du.Images, ImageUsage{Size: img.Size, Containers: img.Containers})
	}
	for _, c := range res.Containers.Items {
		du.Containers = append(du.Containers, ContainerUsage{
			SizeRw:  c.SizeRw,
			Running: c.State == "running",
		})
	}
	for _, v := range res.Volumes.Items {
		vu := VolumeUsage{}
		if v.UsageData != nil {
			vu.Size = v.UsageData.Size
			vu.RefCount = v.UsageData.RefCount
		}
		du.Volumes = append(du.Volumes, vu)
	}
	for _, b := range res.BuildCache.Items {
		du.BuildCache = append(du.BuildCache, CacheUsage{Size: b.Size})
	}
	return du, nil
}

func (d *DockerRuntime) Counts(ctx context.Context) (SystemCounts, error) {
	res, err := d.cli.Info(ctx, client.InfoOptions{})
	if err != nil {
		return SystemCounts{}, fmt.Errorf("system info: %w", err)
	}
	info := res.Info
	return SystemCounts{
		ContainersTotal:   info.Containers,
		ContainersRunning: info.ContainersRunning,
		ContainersPaused:  info.ContainersPaused,
		ContainersStopped: info.ContainersStopped,
		Images:            info.Images,
		ServerVersion:     info.ServerVersion,
	}, nil
}

func (d *DockerRuntime) Networks(ctx context.Context) ([]NetworkInfo, error) {
	res, err := d.cli.NetworkList(ctx, client.NetworkListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	infos := make([]NetworkInfo, 0, len(res.Items))
	for _, n := range res.Items {
		infos = append(infos, NetworkInfo{ID: n.ID, Name: n.Name, Driver: n.Driver, Scope: n.Scope})
	}
	return infos, nil
}

func (d *DockerRuntime) CreateNetwork(ctx context.Context, name, driver string, options map[string]string) (string, error) {
	res, err := d.cli.NetworkCreate(ctx, name, client.NetworkCreateOptions{
		Driver:  driver,
		Options: options,
	})
	if err != nil {
		return "", fmt.Errorf("create network %s: %w", name, err)
	}
	return res.ID, nil
}

func (d *DockerRuntime) RemoveNetwork(ctx context.Context, nameOrID string) error {
	if _, err := d.cli.NetworkRemove(ctx, nameOrID, client.NetworkRemoveOptions{}); err != nil {
		return wrapErr("remove network", nameOrID, err)
	}
	return nil
}

func (d *DockerRuntime) Volumes(ctx context.Context) ([]VolumeInfo, error) {
	res, err := d.cli.VolumeList(ctx, client.VolumeListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list volumes: %w", err)
	}
	infos := make([]VolumeInfo, 0, len(res.Items))
	for _, v := range res.Items {
		infos = append(infos, VolumeInfo{Name: v.Name, Driver: v.Driver, Mountpoint: v.Mountpoint})
	}
	return infos, nil
}

func (d *DockerRuntime) CreateVolume(ctx context.Context, name, driver string, options map[string]string) (VolumeInfo, error) {
	res, err := d.cli.VolumeCreate(ctx, client.VolumeCreateOptions{
		Name:       name,
		Driver:     driver,
		DriverOpts: options,
	})
	if err != nil {
		return VolumeInfo{}, fmt.Errorf("create volume %s: %w", name, err)
	}
	v := res.Volume
	return VolumeInfo{Name: v.Name, Driver: v.Driver, Mountpoint: v.Mountpoint}, nil
}

func (d *DockerRuntime) RemoveVolume(ctx context.Context, name string, force bool) error {
	if _, err := d.cli.VolumeRemove(ctx, name, client.VolumeRemoveOptions{Force: force}); err != nil {
		return wrapErr("remove volume", name, err)
	}
	return nil
}

func (d *DockerRuntime) Images(ctx context.Context) ([]ImageInfo, error) {
	res, err := d.cli.ImageList(ctx, client.ImageListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	infos := make([]ImageInfo, 0, len(res.Items))
	for _, img := range res.Items {
		infos = append(infos, ImageInfo{ID: img.ID, Tags: img.RepoTags, Size: img.Size})
	}
	return infos, nil
}
