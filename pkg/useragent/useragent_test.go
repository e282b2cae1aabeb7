package useragent_test

import (
	"errors"
	"io/fs"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicedetector/pkg/cascade"
	"github.com/dmitrymomot/devicedetector/pkg/classifier"
	"github.com/dmitrymomot/devicedetector/pkg/logger"
	"github.com/dmitrymomot/devicedetector/pkg/resultcache"
	"github.com/dmitrymomot/devicedetector/pkg/useragent"
)

func newParser(t *testing.T, opts ...useragent.Option) *useragent.Parser {
	t.Helper()
	p, err := useragent.New(append([]useragent.Option{useragent.WithLogger(logger.Discard())}, opts...)...)
	require.NoError(t, err)
	return p
}

// fixturesWith returns the embedded fixtures with files replaced.
func fixturesWith(t *testing.T, files map[string]string) fs.FS {
	t.Helper()
	fsys := fstest.MapFS{}
	for _, name := range useragent.FixtureFiles {
		data, err := fs.ReadFile(useragent.Fixtures(), name)
		require.NoError(t, err)
		fsys[name] = &fstest.MapFile{Data: data}
	}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	tests := []struct {
		name       string
		ua         string
		client     *useragent.Client
		device     *useragent.Device
		identifier string
	}{
		{
			name: "Chrome desktop",
			ua:   chromeDesktopUA,
			client: &useragent.Client{
				Type:          useragent.TypeBrowser,
				Name:          "Chrome",
				ShortCode:     "CH",
				Version:       "91.0.4472.124",
				Engine:        "Blink",
				EngineVersion: "91.0.4472.124",
				Family:        "Chrome",
			},
			identifier: "Chrome/91.0 (Blink)",
		},
		{
			name: "Safari on iPhone",
			ua:   safariMobileUA,
			client: &useragent.Client{
				Type:          useragent.TypeBrowser,
				Name:          "Mobile Safari",
				ShortCode:     "MF",
				Version:       "14.0",
				Engine:        "WebKit",
				EngineVersion: "605.1.15",
				Family:        "Safari",
				MobileOnly:    true,
			},
			identifier: "Mobile Safari/14.0 (WebKit)",
		},
		{
			name: "Edge",
			ua:   edgeBrowserUA,
			client: &useragent.Client{
				Type:          useragent.TypeBrowser,
				Name:          "Microsoft Edge",
				ShortCode:     "PS",
				Version:       "91.0.864.59",
				Engine:        "Blink",
				EngineVersion: "91.0.4472.124",
				Family:        "Internet Explorer",
			},
			identifier: "Microsoft Edge/91.0 (Blink)",
		},
		{
			name: "Zune HD",
			ua:   zuneUA,
			client: &useragent.Client{
				Type:      useragent.TypeBrowser,
				Name:      "IE Mobile",
				ShortCode: "IM",
				Version:   "7.11",
				Engine:    "Trident",
				Family:    "Internet Explorer",
			},
			device: &useragent.Device{
				Type:      useragent.TypePortableMediaPlayer,
				Brand:     "Microsoft",
				BrandCode: "MS",
				Model:     "Zune HD",
			},
			identifier: "IE Mobile/7.11 (Trident, Microsoft Zune HD)",
		},
		{
			name: "Walkman",
			ua:   "Mozilla/5.0 (Linux; U; Android 4.0.4; ja-jp; NWZ-Z1050 Build/3.01.02) AppleWebKit/534.30 (KHTML, like Gecko) Version/4.0 Safari/534.30",
			client: &useragent.Client{
				Type:          useragent.TypeBrowser,
				Name:          "Android Browser",
				ShortCode:     "AN",
				Version:       "4.0",
				Engine:        "WebKit",
				EngineVersion: "534.30",
				Family:        "Android Browser",
			},
			device: &useragent.Device{
				Type:      useragent.TypePortableMediaPlayer,
				Brand:     "Sony",
				BrandCode: "SO",
				Model:     "Walkman NWZ-Z1050",
			},
			identifier: "Android Browser/4.0 (WebKit, Sony Walkman NWZ-Z1050)",
		},
		{
			name:       "bot",
			ua:         botUA,
			identifier: "Unknown device",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ua, err := p.Parse(tc.ua)
			require.NoError(t, err)
			assert.Equal(t, tc.ua, ua.String())
			assert.Equal(t, tc.client, ua.Client)
			assert.Equal(t, tc.device, ua.Device)
			assert.Equal(t, tc.identifier, ua.GetShortIdentifier())
			assert.Equal(t, tc.client == nil && tc.device == nil, ua.IsUnknown())
			assert.Equal(t, tc.client != nil, ua.IsBrowser())
			assert.Equal(t, tc.device != nil, ua.IsPortableMediaPlayer())
		})
	}
}

func TestParser_EngineResolution(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	tests := []struct {
		name   string
		ua     string
		engine string
	}{
		{"Maxthon 4 switched to WebKit", "Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Maxthon/4.4.3.4000 Chrome/30.0.1599.101 Safari/537.36", "WebKit"},
		{"Maxthon 2 stays on Trident", "Mozilla/4.0 (compatible; MSIE 7.0; Windows NT 5.1; Maxthon 2.0)", "Trident"},
		{"Pale Moon 29 uses Goanna", "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:68.0) Gecko/20100101 Goanna/4.8 Firefox/68.0 PaleMoon/29.2.1", "Goanna"},
		{"Pale Moon 24 uses Gecko", "Mozilla/5.0 (Windows NT 6.1; WOW64; rv:24.7) Gecko/20140802 Firefox/24.7 PaleMoon/24.7.1", "Gecko"},
		{"Opera 12 uses Presto", "Opera/9.80 (Windows NT 6.1; WOW64) Presto/2.12.388 Version/12.18", "Presto"},
		{"Iron 27 is still WebKit", "Mozilla/5.0 (Windows NT 6.1) AppleWebKit/537.36 (KHTML, like Gecko) Iron/27.0.1500.0 Chrome/27.0.1500.0 Safari/537.36", "WebKit"},
		{"MIUI falls back to the engine rules", "Mozilla/5.0 (Linux; U; Android 10; en-us; Redmi Note 8 Build/QKQ1.200114.002) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/89.0.4389.116 Mobile Safari/537.36 XiaoMi/MiuiBrowser/12.10.5-go", "Blink"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ua, err := p.Parse(tc.ua)
			require.NoError(t, err)
			require.NotNil(t, ua.Client)
			assert.Equal(t, tc.engine, ua.Client.Engine)
		})
	}
}

func TestParser_Errors(t *testing.T) {
	t.Parallel()
	p := newParser(t, useragent.WithMaxLength(64))
	assert.Equal(t, 64, p.MaxLength())

	_, err := p.Parse("")
	assert.ErrorIs(t, err, useragent.ErrEmptyUserAgent)

	_, err = p.Parse("   \t")
	assert.ErrorIs(t, err, useragent.ErrEmptyUserAgent)

	_, err = p.Parse(chromeDesktopUA)
	assert.ErrorIs(t, err, useragent.ErrUserAgentTooLong)

	ua, err := p.Parse(strings.Repeat("a", 64))
	require.NoError(t, err)
	assert.True(t, ua.IsUnknown())
}

func TestParser_DefaultMaxLength(t *testing.T) {
	t.Parallel()
	p := newParser(t)
	assert.Equal(t, useragent.DefaultMaxLength, p.MaxLength())

	_, err := p.Parse("Mozilla/5.0 " + strings.Repeat("x", useragent.DefaultMaxLength))
	assert.ErrorIs(t, err, useragent.ErrUserAgentTooLong)
}

func TestParser_VersionTruncation(t *testing.T) {
	t.Parallel()
	p := newParser(t, useragent.WithVersionTruncation(cascade.TruncateMajor))

	ua, err := p.Parse(chromeDesktopUA)
	require.NoError(t, err)
	require.NotNil(t, ua.Client)
	assert.Equal(t, "91", ua.Client.Version)
	assert.Equal(t, "Blink", ua.Client.Engine)
	assert.Equal(t, "91", ua.Client.EngineVersion)
}

func TestParser_InvariantViolation(t *testing.T) {
	t.Parallel()

	fsys := fixturesWith(t, map[string]string{
		useragent.BrowsersFile: "- regex: 'Foo(Bar)/(\\d+[\\.\\d]+)'\n  name: '$1'\n  version: '$2'\n",
	})
	p := newParser(t, useragent.WithFS(fsys))

	_, err := p.Parse("FooBar/1.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, useragent.ErrParsingFailed)
	assert.ErrorIs(t, err, classifier.ErrInvariantViolation)

	var inv *classifier.InvariantError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "Bar", inv.Name)
	assert.Equal(t, 0, inv.Rule)
}

func TestNew_InvalidFixtures(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		fsys := fixturesWith(t, nil).(fstest.MapFS)
		delete(fsys, useragent.EngineCatalogFile)

		_, err := useragent.New(useragent.WithFS(fsys))
		assert.ErrorIs(t, err, useragent.ErrLoadFixtures)
		assert.ErrorIs(t, useragent.ValidateFixtures(fsys), useragent.ErrLoadFixtures)
	})

	t.Run("unknown catalog name", func(t *testing.T) {
		t.Parallel()
		fsys := fixturesWith(t, map[string]string{
			useragent.BrowsersFile: "- regex: 'Foo/(\\d+[\\.\\d]+)'\n  name: 'Foo Browser'\n  version: '$1'\n",
		})

		_, err := useragent.New(useragent.WithFS(fsys))
		assert.ErrorIs(t, err, classifier.ErrUnknownName)
		assert.Error(t, useragent.ValidateFixtures(fsys))
	})

	t.Run("unknown engine", func(t *testing.T) {
		t.Parallel()
		fsys := fixturesWith(t, map[string]string{
			useragent.BrowsersFile: "- regex: 'Chrome/(\\d+[\\.\\d]+)'\n  name: 'Chrome'\n  version: '$1'\n  engine:\n    default: 'Quantum'\n",
		})

		_, err := useragent.New(useragent.WithFS(fsys))
		assert.ErrorIs(t, err, classifier.ErrUnknownEngine)
	})

	t.Run("missing version", func(t *testing.T) {
		t.Parallel()
		fsys := fixturesWith(t, map[string]string{
			useragent.BrowsersFile: "- regex: 'Chrome'\n  name: 'Chrome'\n",
		})

		_, err := useragent.New(useragent.WithFS(fsys))
		assert.ErrorIs(t, err, useragent.ErrLoadFixtures)
	})
}

func TestParser_Cache(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		lookups = map[resultcache.Result]int{}
	)
	store := resultcache.NewMemoryStore(16)
	p := newParser(t,
		useragent.WithCache(store),
		useragent.WithCacheObserver(resultcache.ObserverFunc(func(_ string, r resultcache.Result) {
			mu.Lock()
			defer mu.Unlock()
			lookups[r]++
		})),
	)

	first, err := p.Parse(zuneUA)
	require.NoError(t, err)
	second, err := p.Parse(zuneUA)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, store.Len())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, lookups[resultcache.Miss])
	assert.Equal(t, 2, lookups[resultcache.Hit])
}

func TestParser_SharedCacheSeparatesParsers(t *testing.T) {
	t.Parallel()

	t.Run("truncation level", func(t *testing.T) {
		t.Parallel()
		store := resultcache.NewMemoryStore(16)

		full, err := newParser(t, useragent.WithCache(store)).Parse(chromeDesktopUA)
		require.NoError(t, err)
		require.NotNil(t, full.Client)
		require.NotEqual(t, "91", full.Client.Version)

		major, err := newParser(t,
			useragent.WithCache(store),
			useragent.WithVersionTruncation(cascade.TruncateMajor),
		).Parse(chromeDesktopUA)
		require.NoError(t, err)
		require.NotNil(t, major.Client)
		assert.Equal(t, "91", major.Client.Version)
		assert.Equal(t, 4, store.Len())
	})

	t.Run("rules", func(t *testing.T) {
		t.Parallel()
		store := resultcache.NewMemoryStore(16)

		before, err := newParser(t, useragent.WithCache(store)).Parse(chromeDesktopUA)
		require.NoError(t, err)
		require.True(t, before.IsBrowser())

		fsys := fixturesWith(t, map[string]string{
			useragent.BrowsersFile: "- regex: 'NoSuchBrowser/(\\d+[\\.\\d]+)'\n  name: 'Chrome'\n  version: '$1'\n",
		})
		after, err := newParser(t, useragent.WithCache(store), useragent.WithFS(fsys)).Parse(chromeDesktopUA)
		require.NoError(t, err)
		assert.False(t, after.IsBrowser())
		assert.Equal(t, 4, store.Len())
	})
}

func TestParser_CacheStoresAbsentResults(t *testing.T) {
	t.Parallel()

	store := resultcache.NewMemoryStore(16)
	p := newParser(t, useragent.WithCache(store))

	ua, err := p.Parse(botUA)
	require.NoError(t, err)
	assert.True(t, ua.IsUnknown())
	assert.Equal(t, 2, store.Len())

	ua, err = p.Parse(botUA)
	require.NoError(t, err)
	assert.True(t, ua.IsUnknown())
}

func TestParser_Observer(t *testing.T) {
	t.Parallel()

	var (
		mu       sync.Mutex
		outcomes = map[string]classifier.Outcome{}
	)
	p := newParser(t, useragent.WithObserver(classifier.ObserverFunc(func(name string, o classifier.Outcome) {
		mu.Lock()
		defer mu.Unlock()
		outcomes[name] = o
	})))

	_, err := p.Parse(chromeDesktopUA)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, classifier.OutcomeMatched, outcomes[useragent.TypeBrowser])
	assert.Equal(t, classifier.OutcomeGuarded, outcomes[useragent.TypePortableMediaPlayer])
}

func TestParser_Accessors(t *testing.T) {
	t.Parallel()
	p := newParser(t)

	assert.Equal(t, useragent.TypeBrowser, p.Browser().Type())
	assert.Equal(t, useragent.TypePortableMediaPlayer, p.PortableMediaPlayer().Type())
	assert.Equal(t, "browser", p.Browser().Catalog().Domain())
}

func TestParse_Default(t *testing.T) {
	t.Parallel()

	ua, err := useragent.Parse(chromeDesktopUA)
	require.NoError(t, err)
	require.NotNil(t, ua.Client)
	assert.Equal(t, "Chrome", ua.Client.Name)

	_, err = useragent.Parse("")
	assert.ErrorIs(t, err, useragent.ErrEmptyUserAgent)
}

func TestUserAgent_GetShortIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ua       useragent.UserAgent
		expected string
	}{
		{"unknown", useragent.UserAgent{}, "Unknown device"},
		{
			"device only",
			useragent.UserAgent{Device: &useragent.Device{Brand: "Apple", Model: "iPod Touch"}},
			"Apple iPod Touch",
		},
		{
			"client without version or engine",
			useragent.UserAgent{Client: &useragent.Client{Name: "Avant Browser"}},
			"Avant Browser/?",
		},
		{
			"long version is shortened",
			useragent.UserAgent{Client: &useragent.Client{Name: "Chrome", Version: "91.0.4472.124", Engine: "Blink"}},
			"Chrome/91.0 (Blink)",
		},
		{
			"client and device",
			useragent.UserAgent{
				Client: &useragent.Client{Name: "Mobile Safari", Version: "12.1.2", Engine: "WebKit"},
				Device: &useragent.Device{Brand: "Apple", Model: "iPod Touch"},
			},
			"Mobile Safari/12.1 (WebKit, Apple iPod Touch)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, tc.ua.GetShortIdentifier())
		})
	}
}

func TestUserAgent_IsMobileOnly(t *testing.T) {
	t.Parallel()

	assert.True(t, useragent.UserAgent{Client: &useragent.Client{MobileOnly: true}}.IsMobileOnly())
	assert.False(t, useragent.UserAgent{Client: &useragent.Client{}}.IsMobileOnly())
	assert.False(t, useragent.UserAgent{}.IsMobileOnly())
}
