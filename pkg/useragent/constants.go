package useragent

// Classifier types reported in Client.Type and Device.Type.
const (
	// TypeBrowser labels clients found by the browser classifier
	TypeBrowser = "browser"

	// TypePortableMediaPlayer labels devices found by the media player classifier
	TypePortableMediaPlayer = "portable media player"
)

// DefaultMaxLength is the longest user agent Parse accepts by default.
const DefaultMaxLength = 2048

// Fixture file names, relative to the root of the rules file system.
const (
	BrowsersFile            = "browsers.yml"
	BrowserEnginesFile      = "browser_engines.yml"
	BrowserCatalogFile      = "browser_catalog.yml"
	EngineCatalogFile       = "engine_catalog.yml"
	PortableMediaPlayerFile = "portable_media_player.yml"
	DeviceBrandsFile        = "device_brands.yml"
)

// FixtureFiles lists every file a rules directory must provide.
var FixtureFiles = []string{
	BrowsersFile,
	BrowserEnginesFile,
	BrowserCatalogFile,
	EngineCatalogFile,
	PortableMediaPlayerFile,
	DeviceBrandsFile,
}
