package runtime

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRuntime_Lifecycle(t *testing.T) {
	m := NewMemoryRuntime()
	ctx := context.Background()

	id, err := m.Create(ctx, "web", ContainerSpec{Image: "nginx:1.27"})
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	running, err := m.IsRunning(ctx, "web")
	assert.NoError(t, err)
	assert.False(t, running)

	assert.NoError(t, m.Start(ctx, "web"))
	running, _ = m.IsRunning(ctx, "web")
	assert.True(t, running)

	assert.NoError(t, m.Stop(ctx, "web"))
	running, _ = m.IsRunning(ctx, "web")
	assert.False(t, running)

	assert.NoError(t, m.Remove(ctx, "web", false))
	_, err = m.Inspect(ctx, "web")
	assert.True(t, errors.Is(err, ErrContainerNotFound))
}

func TestMemoryRuntime_CreateDuplicateName(t *testing.T) {
	m := NewMemoryRuntime()
	ctx := context.Background()

	_, err := m.Create(ctx, "web", ContainerSpec{Image: "nginx:1.27"})
	assert.NoError(t, err)
	_, err = m.Create(ctx, "web", ContainerSpec{Image: "nginx:1.28"})
	assert.Error(t, err)
}

func TestMemoryRuntime_LookupByID(t *testing.T) {
	m := NewMemoryRuntime()
	ctx := context.Background()

	id := m.Seed("web", ContainerSpec{Image: "nginx:1.27"}, true)

	ins, err := m.Inspect(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "web", ins.Name)
	assert.True(t, ins.Running)
	assert.Equal(t, "running", ins.State)
}

func TestMemoryRuntime_Rename(t *testing.T) {
	m := NewMemoryRuntime()
	ctx := context.Background()
	m.Seed("web", ContainerSpec{Image: "nginx:1.27"}, false)

	assert.NoError(t, m.Rename(ctx, "web", "web-old"))

	_, err := m.Inspect(ctx, "web")
	assert.True(t, errors.Is(err, ErrContainerNotFound))
	ins, err := m.Inspect(ctx, "web-old")
	assert.NoError(t, err)
	assert.Equal(t, "web-old", ins.Name)
}

func TestMemoryRuntime_NetworkConnectDisconnect(t *testing.T) {
	m := NewMemoryRuntime()
	ctx := context.Background()
	m.Seed("web", ContainerSpec{Networks: []string{"frontend"}}, true)

	assert.NoError(t, m.ConnectNetwork(ctx, "web", "backend"))
	// connecting twice is idempotent
	assert.NoError(t, m.ConnectNetwork(ctx, "web", "backend"))

	ins, _ := m.Inspect(ctx, "web")
	assert.Equal(t, []string{"frontend", "backend"}, ins.Spec.Networks)

	assert.NoError(t, m.DisconnectNetwork(ctx, "web", "backend"))
	ins, _ = m.Inspect(ctx, "web")
	assert.Equal(t, []string{"frontend"}, ins.Spec.Networks)
}

func TestMemoryRuntime_Counts(t *testing.T) {
	m := NewMemoryRuntime()
	ctx := context.Background()
	m.Seed("a", ContainerSpec{}, true)
	m.Seed("b", ContainerSpec{}, true)
	m.Seed("c", ContainerSpec{}, false)

	counts, err := m.Counts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 3, counts.ContainersTotal)
	assert.Equal(t, 2, counts.ContainersRunning)
	assert.Equal(t, 1, counts.ContainersStopped)
}

func TestMemoryRuntime_ListRunningOnly(t *testing.T) {
	m := NewMemoryRuntime()
	ctx := context.Background()
	m.Seed("a", ContainerSpec{}, true)
	m.Seed("b", ContainerSpec{}, false)

	all, err := m.List(ctx, true)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	running, err := m.List(ctx, false)
	assert.NoError(t, err)
	assert.Len(t, running, 1)
	assert.Equal(t, "a", running[0].Name)
}

func TestMemoryRuntime_VolumesAndNetworks(t *testing.T) {
	m := NewMemoryRuntime()
	ctx := context.Background()

	v, err := m.CreateVolume(ctx, "data", "local", nil)
	assert.NoError(t, err)
	assert.Equal(t, "data", v.Name)

	id, err := m.CreateNetwork(ctx, "frontend", "bridge", nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	vols, _ := m.Volumes(ctx)
	assert.Len(t, vols, 1)
	nets, _ := m.Networks(ctx)
	assert.Len(t, nets, 1)

	assert.NoError(t, m.RemoveVolume(ctx, "data", false))
	assert.NoError(t, m.RemoveNetwork(ctx, "frontend"))
	vols, _ = m.Volumes(ctx)
	assert.Empty(t, vols)
}
