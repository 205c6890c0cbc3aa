package runtime

// MountKind distinguishes host-path bind mounts from named volumes.
type MountKind string

const (
	MountKindBind   MountKind = "bind"
	MountKindVolume MountKind = "volume"
)

// MountMode is the access mode of a mount. Read-write is the default and
// is omitted from the colon-delimited bind string form.
type MountMode string

const (
	ModeReadWrite MountMode = "rw"
	ModeReadOnly  MountMode = "ro"
)

// Mount describes a single mount of a container: a host path or volume
// name mapped to an absolute path inside the container.
type Mount struct {
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Mode        MountMode `json:"mode"`
	Kind        MountKind `json:"kind"`
}

// PortBinding is one host-side binding for a container port.
type PortBinding struct {
	HostIP   string `json:"host_ip"`
	HostPort string `json:"host_port"`
}

// PortMap maps a container port spec ("80/tcp") to its host bindings.
type PortMap map[string][]PortBinding

// ContainerSpec is the declared configuration of a container: everything
// the daemon needs to synthesize an equivalent container. It is built
// once per reconfiguration attempt and not mutated afterwards.
type ContainerSpec struct {
	Image    string   `json:"image"`
	Env      []string `json:"environment"`
	Mounts   []Mount  `json:"mounts"`
	Networks []string `json:"networks"` // first entry is the primary network, supplied at creation
	Ports    PortMap  `json:"ports"`
}

// AddMount appends a mount to the spec. A second mount targeting an
// already-used destination is rejected.
func (s *ContainerSpec) AddMount(m Mount) error {
	for _, existing := range s.Mounts {
		if existing.Destination == m.Destination {
			return &MountError{Spec: m.Destination, Reason: "destination already in use"}
		}
	}
	s.Mounts = append(s.Mounts, m)
	return nil
}

// InspectResult is the normalized view of a container as currently
// stored by the daemon.
type InspectResult struct {
	ID      string
	Name    string
	State   string
	Status  string
	Created string
	Running bool
	Labels  map[string]string
	Spec    ContainerSpec
}

// ContainerInfo is one entry of a container listing.
type ContainerInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	State  string `json:"state"`
	Status string `json:"status"`
}

// NetworkInfo is one entry of a network listing.
type NetworkInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Driver string `json:"driver"`
	Scope  string `json:"scope"`
}

// VolumeInfo is one entry of a volume listing.
type VolumeInfo struct {
	Name       string `json:"name"`
	Driver     string `json:"driver"`
	Mountpoint string `json:"mountpoint"`
}

// ImageInfo is one entry of an image listing.
type ImageInfo struct {
	ID   string   `json:"id"`
	Tags []string `json:"tags"`
	Size int64    `json:"size"`
}

// StatSample is one cumulative-counter snapshot of a container. Two
// consecutive samples are required to derive a CPU percentage; a single
// sample carries no rate information.
type StatSample struct {
	CPUTotalUsage  uint64
	SystemCPUUsage uint64
	OnlineCPUs     uint32
	MemoryUsage    uint64
}

// StatsSnapshot carries the previous and current sample of one
// container, as reported by a single one-shot stats call.
type StatsSnapshot struct {
	Prev StatSample
	Cur  StatSample
}

// ImageUsage is the disk usage of a single image.
type ImageUsage struct {
	Size       int64
	Containers int64 // number of containers referencing the image
}

// ContainerUsage is the writable-layer usage of a single container.
type ContainerUsage struct {
	SizeRw  int64
	Running bool
}

// VolumeUsage is the disk usage of a single volume.
type VolumeUsage struct {
	Size     int64
	RefCount int64
}

// CacheUsage is the size of a single build-cache record.
type CacheUsage struct {
	Size int64
}

// DiskUsage is the raw per-resource disk usage reported by the daemon.
type DiskUsage struct {
	Images     []ImageUsage
	Containers []ContainerUsage
	Volumes    []VolumeUsage
	BuildCache []CacheUsage
}

// SystemCounts are the daemon-wide counters used by the system info view.
type SystemCounts struct {
	ContainersTotal   int
	ContainersRunning int
	ContainersPaused  int
	ContainersStopped int
	Images            int
	ServerVersion     string
}
