package useragent

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/dmitrymomot/devicedetector/pkg/cascade"
	"github.com/dmitrymomot/devicedetector/pkg/classifier"
	"github.com/dmitrymomot/devicedetector/pkg/logger"
	"github.com/dmitrymomot/devicedetector/pkg/resultcache"
)

// UserAgent contains the parsed information from a user agent string.
// Client and Device are nil when nothing was detected.
type UserAgent struct {
	Raw    string  `json:"user_agent"`
	Client *Client `json:"client"`
	Device *Device `json:"device"`
}

// String returns the user agent as a string
func (ua UserAgent) String() string { return ua.Raw }

// IsBrowser returns true if the client is a browser
func (ua UserAgent) IsBrowser() bool { return ua.Client != nil && ua.Client.Type == TypeBrowser }

// IsPortableMediaPlayer returns true if the device is a portable media player
func (ua UserAgent) IsPortableMediaPlayer() bool {
	return ua.Device != nil && ua.Device.Type == TypePortableMediaPlayer
}

// IsMobileOnly returns true if the client only exists on mobile devices
func (ua UserAgent) IsMobileOnly() bool { return ua.Client != nil && ua.Client.MobileOnly }

// IsUnknown returns true if neither a client nor a device was detected
func (ua UserAgent) IsUnknown() bool { return ua.Client == nil && ua.Device == nil }

// GetShortIdentifier returns a short human-readable identifier for the session.
// Format: Name/Version (Engine, Brand Model), dropping the parts that are unknown.
func (ua UserAgent) GetShortIdentifier() string {
	var device string
	if ua.Device != nil {
		device = strings.TrimSpace(ua.Device.Brand + " " + ua.Device.Model)
	}

	if ua.Client == nil {
		if device != "" {
			return device
		}
		return "Unknown device"
	}

	version := cascade.TruncateVersion(ua.Client.Version, cascade.TruncateMinor)
	if version == "" {
		version = "?"
	}
	id := ua.Client.Name + "/" + version

	details := make([]string, 0, 2)
	if ua.Client.Engine != "" {
		details = append(details, ua.Client.Engine)
	}
	if device != "" {
		details = append(details, device)
	}
	if len(details) == 0 {
		return id
	}
	return fmt.Sprintf("%s (%s)", id, strings.Join(details, ", "))
}

type recordClassifier interface {
	Classify(ua string) (classifier.Record, bool, error)
}

// Parser runs the browser and portable media player classifiers over a user
// agent. It is immutable and safe for concurrent use.
type Parser struct {
	browser   *classifier.Classifier
	player    *classifier.Classifier
	classify  recordClassifier
	detect    recordClassifier
	maxLength int
	log       *slog.Logger
}

// New loads the fixtures and builds a parser.
func New(opts ...Option) (*Parser, error) {
	o := newOptions(opts)

	browser, err := NewBrowserClassifier(o.fsys, opts...)
	if err != nil {
		return nil, err
	}
	player, err := NewPortableMediaPlayerClassifier(o.fsys, opts...)
	if err != nil {
		return nil, err
	}

	p := &Parser{
		browser:   browser,
		player:    player,
		classify:  browser,
		detect:    player,
		maxLength: o.maxLength,
		log:       o.log.With(logger.Component("useragent")),
	}
	if o.cache != nil {
		ns, err := fingerprint(o.fsys, o.truncation)
		if err != nil {
			return nil, err
		}
		cacheOpts := []resultcache.Option{
			resultcache.WithNamespace(ns),
			resultcache.WithLogger(o.log),
			resultcache.WithObserver(o.cacheObserver),
		}
		p.classify = resultcache.New(browser, o.cache, cacheOpts...)
		p.detect = resultcache.New(player, o.cache, cacheOpts...)
	}
	return p, nil
}

// Browser returns the browser classifier.
func (p *Parser) Browser() *classifier.Classifier { return p.browser }

// PortableMediaPlayer returns the portable media player classifier.
func (p *Parser) PortableMediaPlayer() *classifier.Classifier { return p.player }

// MaxLength returns the longest user agent Parse accepts.
func (p *Parser) MaxLength() int { return p.maxLength }

// Parse classifies ua. An unknown user agent is not an error: the result
// has a nil Client and Device.
func (p *Parser) Parse(ua string) (UserAgent, error) {
	if strings.TrimSpace(ua) == "" {
		return UserAgent{}, ErrEmptyUserAgent
	}
	if len(ua) > p.maxLength {
		return UserAgent{}, fmt.Errorf("%w: %d bytes, limit %d", ErrUserAgentTooLong, len(ua), p.maxLength)
	}

	result := UserAgent{Raw: ua}

	rec, found, err := p.classify.Classify(ua)
	if err != nil {
		return result, errors.Join(ErrParsingFailed, err)
	}
	if found {
		result.Client = newClient(p.browser, rec)
	}

	rec, found, err = p.detect.Classify(ua)
	if err != nil {
		return result, errors.Join(ErrParsingFailed, err)
	}
	if found {
		result.Device = newDevice(rec)
	}

	return result, nil
}

var defaultParser = sync.OnceValues(func() (*Parser, error) {
	return New()
})

// Parse classifies ua with a parser built from the embedded fixtures.
func Parse(ua string) (UserAgent, error) {
	p, err := defaultParser()
	if err != nil {
		return UserAgent{}, errors.Join(ErrParsingFailed, err)
	}
	return p.Parse(ua)
}
