package registry

import "github.com/bnema/mediastack/internal/domain"

// Declared networks.
const (
	NetworkMedia     = "media"
	NetworkDownloads = "downloads"
)

// DefaultNetworks returns the networks the stack requires.
func DefaultNetworks() []domain.NetworkDescriptor {
	return []domain.NetworkDescriptor{
		{Name: NetworkMedia, Driver: domain.DefaultNetworkDriver},
		{Name: NetworkDownloads, Driver: domain.DefaultNetworkDriver},
	}
}

var (
	mediaOnly     = []string{NetworkMedia}
	downloadsOnly = []string{NetworkDownloads}
	bothNetworks  = []string{NetworkMedia, NetworkDownloads}
)

// DefaultCatalog returns the service catalog in declared order.
// A new service must be inserted after every service of a lower tier.
func DefaultCatalog() []domain.ServiceDescriptor {
	return []domain.ServiceDescriptor{
		// Databases
		{Name: "postgres", Tier: domain.TierDatabase, HealthChecked: true, Networks: mediaOnly},
		{Name: "redis", Tier: domain.TierDatabase, HealthChecked: true, Networks: mediaOnly},

		// Download infrastructure
		{Name: "gluetun", Tier: domain.TierDownload, HealthChecked: true, Networks: downloadsOnly},
		{Name: "qbittorrent", Tier: domain.TierDownload, Networks: downloadsOnly, Port: 8080},
		{Name: "sabnzbd", Tier: domain.TierDownload, Networks: downloadsOnly, Port: 8081},
		{Name: "prowlarr", Tier: domain.TierDownload, Networks: bothNetworks, Port: 9696},
		{Name: "flaresolverr", Tier: domain.TierDownload, Networks: downloadsOnly},

		// Library management
		{Name: "sonarr", Tier: domain.TierManagement, Networks: bothNetworks, Port: 8989},
		{Name: "radarr", Tier: domain.TierManagement, Networks: bothNetworks, Port: 7878},
		{Name: "lidarr", Tier: domain.TierManagement, Networks: bothNetworks, Port: 8686},
		{Name: "readarr", Tier: domain.TierManagement, Networks: bothNetworks, Port: 8787},
		{Name: "bazarr", Tier: domain.TierManagement, Networks: mediaOnly, Port: 6767},

		// Post-processing
		{Name: "unpackerr", Tier: domain.TierPostProcessing, Networks: downloadsOnly},
		{Name: "recyclarr", Tier: domain.TierPostProcessing, Networks: mediaOnly},
		{Name: "tdarr", Tier: domain.TierPostProcessing, Networks: mediaOnly, Port: 8265},

		// Front-ends
		{Name: "jellyfin", Tier: domain.TierFrontend, HealthChecked: true, Networks: mediaOnly, Port: 8096, Path: "/web"},
		{Name: "jellyseerr", Tier: domain.TierFrontend, Networks: mediaOnly, Port: 5055},
		{Name: "wikijs", Tier: domain.TierFrontend, HealthChecked: true, Networks: mediaOnly, Port: 3000},

		// Utilities
		{Name: "homepage", Tier: domain.TierUtility, Networks: mediaOnly, Port: 3010},
		{Name: "filebrowser", Tier: domain.TierUtility, HealthChecked: true, Networks: mediaOnly, Port: 8090},

		// Monitoring
		{Name: "uptime-kuma", Tier: domain.TierMonitoring, HealthChecked: true, Networks: mediaOnly, Port: 3001},
		{Name: "dozzle", Tier: domain.TierMonitoring, Networks: mediaOnly, Port: 9999},
	}
}
