package envfile

import "strings"

// Placeholder marks a credential that still needs a generated value.
const Placeholder = "changeme"

// Recognized keys.
const (
	KeyTimezone = "TZ"
	KeyPUID     = "PUID"
	KeyPGID     = "PGID"

	KeyMediaRoot  = "MEDIA_ROOT"
	KeyMoviesPath = "MOVIES_PATH"
	KeyTVPath     = "TV_PATH"
	KeyMusicPath  = "MUSIC_PATH"
	KeyBooksPath  = "BOOKS_PATH"

	KeyDownloadsRoot       = "DOWNLOADS_ROOT"
	KeyDownloadsComplete   = "DOWNLOADS_COMPLETE"
	KeyDownloadsIncomplete = "DOWNLOADS_INCOMPLETE"
	KeyTorrentsWatch       = "TORRENTS_WATCH"

	KeyConfigRoot        = "CONFIG_ROOT"
	KeyBackupDestination = "BACKUP_DESTINATION"
)

// secretKind decides the length of a generated value.
type secretKind int

const (
	kindPassword secretKind = iota
	kindAPIKey
)

type secretKey struct {
	name string
	kind secretKind
}

var secretKeys = []secretKey{
	{"POSTGRES_PASSWORD", kindPassword},
	{"WIKI_DB_PASSWORD", kindPassword},
	{"QBITTORRENT_PASSWORD", kindPassword},
	{"SONARR_API_KEY", kindAPIKey},
	{"RADARR_API_KEY", kindAPIKey},
	{"LIDARR_API_KEY", kindAPIKey},
	{"PROWLARR_API_KEY", kindAPIKey},
	{"JELLYSEERR_API_KEY", kindAPIKey},
	{"SABNZBD_API_KEY", kindAPIKey},
}

// SecretKeys returns the credential keys in template order.
func SecretKeys() []string {
	keys := make([]string, 0, len(secretKeys))
	for _, k := range secretKeys {
		keys = append(keys, k.name)
	}
	return keys
}

// IsSecretKey reports whether key holds a credential.
func IsSecretKey(key string) bool {
	for _, k := range secretKeys {
		if k.name == key {
			return true
		}
	}
	return false
}

// MediaKeys lists the keys naming media library directories.
var MediaKeys = []string{KeyMediaRoot, KeyMoviesPath, KeyTVPath, KeyMusicPath, KeyBooksPath}

// DownloadKeys lists the keys naming download directories.
var DownloadKeys = []string{KeyDownloadsRoot, KeyDownloadsComplete, KeyDownloadsIncomplete, KeyTorrentsWatch}

type section struct {
	title   string
	entries [][2]string
}

var defaultSections = []section{
	{"Core settings", [][2]string{
		{KeyTimezone, "Etc/UTC"},
		{KeyPUID, "1000"},
		{KeyPGID, "1000"},
	}},
	{"Media library", [][2]string{
		{KeyMediaRoot, "/srv/media"},
		{KeyMoviesPath, "${MEDIA_ROOT}/movies"},
		{KeyTVPath, "${MEDIA_ROOT}/tv"},
		{KeyMusicPath, "${MEDIA_ROOT}/music"},
		{KeyBooksPath, "${MEDIA_ROOT}/books"},
	}},
	{"Downloads", [][2]string{
		{KeyDownloadsRoot, "/srv/downloads"},
		{KeyDownloadsComplete, "${DOWNLOADS_ROOT}/complete"},
		{KeyDownloadsIncomplete, "${DOWNLOADS_ROOT}/incomplete"},
		{KeyTorrentsWatch, "${DOWNLOADS_ROOT}/watch"},
	}},
	{"Service configuration and backups", [][2]string{
		{KeyConfigRoot, "./config"},
		{KeyBackupDestination, "/srv/backups"},
	}},
}

// defaultContent renders a new configuration resource.
func defaultContent() string {
	var b strings.Builder
	b.WriteString("# mediastack environment\n")
	b.WriteString("# Values are passed to compose as-is. Run `mediastack secrets` to fill credentials.\n")

	for _, s := range defaultSections {
		b.WriteString("\n# " + s.title + "\n")
		for _, e := range s.entries {
			b.WriteString(e[0] + "=" + e[1] + "\n")
		}
	}

	b.WriteString("\n# Credentials\n")
	for _, k := range secretKeys {
		b.WriteString(k.name + "=" + Placeholder + "\n")
	}
	return b.String()
}
