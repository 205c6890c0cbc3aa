package runtime

import "context"

// ContainerRuntime abstracts the daemon control API. A single long-lived
// implementation is constructed at startup and injected into every
// component; there is no per-request reconnection.
//
// Reconfiguration of the same container name is not serialized here: two
// concurrent updates can race through stop/remove and one will fail with
// ErrContainerNotFound. Callers that need that guarantee must serialize
// per container name themselves.
type ContainerRuntime interface {
	// Inspect reads a container's declared configuration and observed
	// state into a normalized record.
	Inspect(ctx context.Context, nameOrID string) (InspectResult, error)
	IsRunning(ctx context.Context, nameOrID string) (bool, error)
	List(ctx context.Context, all bool) ([]ContainerInfo, error)

	Start(ctx context.Context, nameOrID string) error
	Stop(ctx context.Context, nameOrID string) error
	Restart(ctx context.Context, nameOrID string) error
	Remove(ctx context.Context, nameOrID string, force bool) error
	Rename(ctx context.Context, nameOrID, newName string) error

	// Create instantiates a container from a spec. Only the primary
	// network (spec.Networks[0]) is attached at creation time.
	Create(ctx context.Context, name string, spec ContainerSpec) (string, error)

	ConnectNetwork(ctx context.Context, nameOrID, network string) error
	DisconnectNetwork(ctx context.Context, nameOrID, network string) error

	// Stats returns one one-shot sample pair for a container.
	Stats(ctx context.Context, nameOrID string) (StatsSnapshot, error)
	// DiskUsage returns the daemon's raw per-resource disk usage.
	DiskUsage(ctx context.Context) (DiskUsage, error)
	Counts(ctx context.Context) (SystemCounts, error)

	Networks(ctx context.Context) ([]NetworkInfo, error)
	CreateNetwork(ctx context.Context, name, driver string, options map[string]string) (string, error)
	RemoveNetwork(ctx context.Context, nameOrID string) error

	Volumes(ctx context.Context) ([]VolumeInfo, error)
	CreateVolume(ctx context.Context, name, driver string, options map[string]string) (VolumeInfo, error)
	RemoveVolume(ctx context.Context, name string, force bool) error

	Images(ctx context.Context) ([]ImageInfo, error)
}
