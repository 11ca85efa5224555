package domain

// Container represents a container known to the engine.
type Container struct {
	ID     string
	Name   string
	Image  string
	State  string
	Status string
	Labels map[string]string
}

// Service returns the compose service label of the container.
func (c Container) Service() string {
	return c.Labels[LabelComposeService]
}

// Project returns the compose project label of the container.
func (c Container) Project() string {
	return c.Labels[LabelComposeProject]
}

// IsDead reports whether the container has exited or is dead.
func (c Container) IsDead() bool {
	return c.State == string(ContainerStatusExited) || c.State == string(ContainerStatusDead)
}

// ContainerFilter narrows a container listing.
type ContainerFilter struct {
	// Project restricts the listing to one compose project.
	Project string
	// All includes stopped containers.
	All bool
}

// ContainerStatus represents the coarse engine state of a container.
type ContainerStatus string

const (
	ContainerStatusRunning    ContainerStatus = "running"
	ContainerStatusCreated    ContainerStatus = "created"
	ContainerStatusRestarting ContainerStatus = "restarting"
	ContainerStatusExited     ContainerStatus = "exited"
	ContainerStatusPaused     ContainerStatus = "paused"
	ContainerStatusDead       ContainerStatus = "dead"
)

// ServiceContainer is one row of the compose process table.
type ServiceContainer struct {
	Name    string
	Service string
	State   string
	Health  string
	Status  string
	Ports   []string
}

// NetworkInfo represents network configuration and state.
type NetworkInfo struct {
	ID         string
	Name       string
	Driver     string
	Containers []string
	Labels     map[string]string
}

// InUse reports whether any container is attached to the network.
func (n NetworkInfo) InUse() bool {
	return len(n.Containers) > 0
}

// Volume represents a named or anonymous engine volume.
type Volume struct {
	Name   string
	Driver string
	Labels map[string]string
}

// EngineInfo holds engine diagnostics rendered by the info command.
type EngineInfo struct {
	ServerVersion     string
	APIVersion        string
	OperatingSystem   string
	KernelVersion     string
	Architecture      string
	Containers        int
	ContainersRunning int
	ContainersStopped int
	Images            int
	StorageDriver     string
	DockerRootDir     string
}
