package addressables

// Config holds configuration for addressable resource loading.
type Config struct {
	// Mode selects the loading path (live, authoring).
	Mode string `mapstructure:"mode" default:"live"`
	// Marker is the folder name that marks a subtree as addressable.
	Marker string `mapstructure:"marker" default:"AddressableResources"`
	// ContentRoot is the local project directory scanned in authoring mode.
	ContentRoot string `mapstructure:"content_root" default:"."`
	// BundleRoot is the directory served by the fallback (bundled) loader.
	BundleRoot string `mapstructure:"bundle_root" default:"Resources"`
	// Manifest is the key table manifest path.
	Manifest string `mapstructure:"manifest" default:"resources.toml"`
	// TableSource selects where the key table comes from (manifest, database, storage, directory).
	TableSource string `mapstructure:"table_source" default:"manifest"`
	// Prefix is prepended to reference addresses when reading from the bucket.
	Prefix string `mapstructure:"prefix" default:""`
	// MaxConcurrentLoads bounds how many loads fetch and decode at once.
	MaxConcurrentLoads int `mapstructure:"max_concurrent_loads" default:"8"`
	// Watch rescans the content root on changes in authoring mode.
	Watch bool `mapstructure:"watch" default:"true"`
}

const (
	TableSourceManifest  = "manifest"
	TableSourceDatabase  = "database"
	TableSourceStorage   = "storage"
	TableSourceDirectory = "directory"
)
