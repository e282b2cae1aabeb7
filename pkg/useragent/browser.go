package useragent

import (
	"fmt"
	"io/fs"

	"github.com/dmitrymomot/devicedetector/pkg/classifier"
	"github.com/dmitrymomot/devicedetector/pkg/engine"
	"github.com/dmitrymomot/devicedetector/pkg/rules"
)

// Client represents the detected client application
type Client struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	ShortCode     string `json:"short_name"`
	Version       string `json:"version"`
	Engine        string `json:"engine"`
	EngineVersion string `json:"engine_version"`
	Family        string `json:"family,omitempty"`
	MobileOnly    bool   `json:"mobile_only"`
}

// NewBrowserClassifier builds the browser classifier from the fixtures in
// fsys. Only the logging, observer and truncation options apply.
func NewBrowserClassifier(fsys fs.FS, opts ...Option) (*classifier.Classifier, error) {
	o := newOptions(opts)

	browsers, err := loadCatalog(fsys, BrowserCatalogFile)
	if err != nil {
		return nil, err
	}
	engines, err := loadCatalog(fsys, EngineCatalogFile)
	if err != nil {
		return nil, err
	}
	engineRules, err := loadRules(fsys, BrowserEnginesFile)
	if err != nil {
		return nil, err
	}
	resolver, err := engine.NewResolver(engines, engineRules)
	if err != nil {
		return nil, fmt.Errorf("browser engines: %w", err)
	}
	set, err := loadRules(fsys, BrowsersFile, rules.RequireVersion())
	if err != nil {
		return nil, err
	}

	c, err := classifier.New(classifier.Config{
		Type:              TypeBrowser,
		Rules:             set,
		Catalog:           browsers,
		Engines:           resolver,
		VersionTruncation: o.truncation,
		Observer:          o.observer,
		Logger:            o.log,
	})
	if err != nil {
		return nil, fmt.Errorf("browser classifier: %w", err)
	}
	return c, nil
}

func newClient(c *classifier.Classifier, rec classifier.Record) *Client {
	family, _ := c.Family(rec)
	return &Client{
		Type:          rec.Type,
		Name:          rec.Name,
		ShortCode:     rec.ShortCode,
		Version:       rec.Version,
		Engine:        rec.Engine,
		EngineVersion: rec.EngineVersion,
		Family:        family,
		MobileOnly:    c.IsMobileOnly(rec),
	}
}
