package runtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/bassista/dockhand/internal/logger"
)

// MemoryRuntime is a ContainerRuntime implementation that keeps all
// state in memory. It backs tests and development setups where no
// Docker socket is available.
type MemoryRuntime struct {
	mu       sync.RWMutex
	nextID   int
	byName   map[string]*memContainer
	networks map[string]NetworkInfo
	volumes  map[string]VolumeInfo
}

type memContainer struct {
	id      string
	running bool
	spec    ContainerSpec
}

func NewMemoryRuntime() *MemoryRuntime {
	return &MemoryRuntime{
		byName:   map[string]*memContainer{},
		networks: map[string]NetworkInfo{},
		volumes:  map[string]VolumeInfo{},
	}
}

// Seed registers a container without going through Create, for tests.
func (m *MemoryRuntime) Seed(name string, spec ContainerSpec, running bool) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("mem-%d", m.nextID)
	m.byName[name] = &memContainer{id: id, running: running, spec: spec}
	return id
}

func (m *MemoryRuntime) lookup(nameOrID string) (string, *memContainer, bool) {
	if c, ok := m.byName[nameOrID]; ok {
		return nameOrID, c, true
	}
	for name, c := range m.byName {
		if c.id == nameOrID {
			return name, c, true
		}
	}
	return "", nil, false
}

func (m *MemoryRuntime) Inspect(_ context.Context, nameOrID string) (InspectResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name, c, ok := m.lookup(nameOrID)
	if !ok {
		return InspectResult{}, fmt.Errorf("inspect container %s: %w", nameOrID, ErrContainerNotFound)
	}
	state := "exited"
	if c.running {
		state = "running"
	}
	return InspectResult{ID: c.id, Name: name, Running: c.running, State: state, Spec: c.spec}, nil
}

func (m *MemoryRuntime) IsRunning(_ context.Context, nameOrID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, c, ok := m.lookup(nameOrID)
	if !ok {
		return false, fmt.Errorf("inspect container %s: %w", nameOrID, ErrContainerNotFound)
	}
	return c.running, nil
}

func (m *MemoryRuntime) List(_ context.Context, all bool) ([]ContainerInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]ContainerInfo, 0, len(m.byName))
	for name, c := range m.byName {
		if !all && !c.running {
			continue
		}
		state := "exited"
		if c.running {
			state = "running"
		}
		infos = append(infos, ContainerInfo{ID: c.id, Name: name, Image: c.spec.Image, State: state})
	}
	return infos, nil
}

func (m *MemoryRuntime) Start(_ context.Context, nameOrID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, c, ok := m.lookup(nameOrID)
	if !ok {
		return fmt.Errorf("start container %s: %w", nameOrID, ErrContainerNotFound)
	}
	logger.WithComponent("memory-runtime").Debugf("starting container: %s", nameOrID)
	c.running = true
	return nil
}

func (m *MemoryRuntime) Stop(_ context.Context, nameOrID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, c, ok := m.lookup(nameOrID)
	if !ok {
		return fmt.Errorf("stop container %s: %w", nameOrID, ErrContainerNotFound)
	}
	logger.WithComponent("memory-runtime").Debugf("stopping container: %s", nameOrID)
	c.running = false
	return nil
}

func (m *MemoryRuntime) Restart(ctx context.Context, nameOrID string) error {
	if err := m.Stop(ctx, nameOrID); err != nil {
		return err
	}
	return m.Start(ctx, nameOrID)
}

func (m *MemoryRuntime) Remove(_ context.Context, nameOrID string, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, _, ok := m.lookup(nameOrID)
	if !ok {
		return fmt.Errorf("remove container %s: %w", nameOrID, ErrContainerNotFound)
	}
	delete(m.byName, name)
	return nil
}

func (m *MemoryRuntime) Rename(_ context.Context, nameOrID, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, c, ok := m.lookup(nameOrID)
	if !ok {
		return fmt.Errorf("rename container %s: %w", nameOrID, ErrContainerNotFound)
	}
	delete(m.byName, name)
	m.byName[newName] = c
	return nil
}

func (m *MemoryRuntime) Create(_ context.Context, name string, spec ContainerSpec) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byName[name]; exists {
		return "", fmt.Errorf("create container %s: name already in use", name)
	}
	m.nextID++
	id := fmt.Sprintf("mem-%d", m.nextID)
	m.byName[name] = &memContainer{id: id, spec: spec}
	logger.WithComponent("memory-runtime").Debugf("created container %s with id %s", name, id)
	return id, nil
}

func (m *MemoryRuntime) ConnectNetwork(_ context.Context, nameOrID, networkName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, c, ok := m.lookup(nameOrID)
	if !ok {
		return fmt.Errorf("connect network: container %s: %w", nameOrID, ErrContainerNotFound)
	}
	for _, n := range c.spec.Networks {
		if n == networkName {
			return nil
		}
	}
	c.spec.Networks = append(c.spec.Networks, networkName)
	return nil
}

func (m *MemoryRuntime) DisconnectNetwork(_ context.Context, nameOrID, networkName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, c, ok := m.lookup(nameOrID)
	if !ok {
		return fmt.Errorf("disconnect network: container %s: %w", nameOrID, ErrContainerNotFound)
	}
	for i, n := range c.spec.Networks {
		if n == networkName {
			c.spec.Networks = append(c.spec.Networks[:i], c.spec.Networks[i+1:]...)
			return nil
		}
	}
	return nil
}

// Stats returns zero samples: there is no real container to measure.
func (m *MemoryRuntime) Stats(_ context.Context, nameOrID string) (StatsSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, _, ok := m.lookup(nameOrID); !ok {
		return StatsSnapshot{}, fmt.Errorf("stats for container %s: %w", nameOrID, ErrContainerNotFound)
	}
	return StatsSnapshot{}, nil
}

func (m *MemoryRuntime) DiskUsage(_ context.Context) (DiskUsage, error) {
	return DiskUsage{}, nil
}

func (m *MemoryRuntime) Counts(_ context.Context) (SystemCounts, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := SystemCounts{ServerVersion: "memory"}
	for _, c := range m.byName {
		counts.ContainersTotal++
		if c.running {
			counts.ContainersRunning++
		} else {
			counts.ContainersStopped++
		}
	}
	return counts, nil
}

func (m *MemoryRuntime) Networks(_ context.Context) ([]NetworkInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]NetworkInfo, 0, len(m.networks))
	for _, n := range m.networks {
		infos = append(infos, n)
	}
	return infos, nil
}

func (m *MemoryRuntime) CreateNetwork(_ context.Context, name, driver string, _ map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("net-%d", m.nextID)
	m.networks[name] = NetworkInfo{ID: id, Name: name, Driver: driver, Scope: "local"}
	return id, nil
}

func (m *MemoryRuntime) RemoveNetwork(_ context.Context, nameOrID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.networks, nameOrID)
	return nil
}

func (m *MemoryRuntime) Volumes(_ context.Context) ([]VolumeInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	infos := make([]VolumeInfo, 0, len(m.volumes))
	for _, v := range m.volumes {
		infos = append(infos, v)
	}
	return infos, nil
}

func (m *MemoryRuntime) CreateVolume(_ context.Context, name, driver string, _ map[string]string) (VolumeInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := VolumeInfo{Name: name, Driver: driver, Mountpoint: "/var/lib/memory/" + name}
	m.volumes[name] = v
	return v, nil
}

func (m *MemoryRuntime) RemoveVolume(_ context.Context, name string, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.volumes, name)
	return nil
}

func (m *MemoryRuntime) Images(_ context.Context) ([]ImageInfo, error) {
	return nil, nil
}
