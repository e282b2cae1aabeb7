package useragent

import (
	"fmt"
	"io/fs"

	"github.com/dmitrymomot/devicedetector/pkg/cascade"
	"github.com/dmitrymomot/devicedetector/pkg/classifier"
	"github.com/dmitrymomot/devicedetector/pkg/pattern"
)

// Device represents the detected device
type Device struct {
	Type      string `json:"type"`
	Brand     string `json:"brand"`
	BrandCode string `json:"brand_code"`
	Model     string `json:"model"`
}

// NewPortableMediaPlayerClassifier builds the portable media player
// classifier from the fixtures in fsys. The cascade only runs for inputs
// matched by the combined expression of all its rules.
func NewPortableMediaPlayerClassifier(fsys fs.FS, opts ...Option) (*classifier.Classifier, error) {
	o := newOptions(opts)

	brands, err := loadCatalog(fsys, DeviceBrandsFile)
	if err != nil {
		return nil, err
	}
	set, err := loadRules(fsys, PortableMediaPlayerFile)
	if err != nil {
		return nil, err
	}
	guard, err := cascade.NewOverallGuard(set, pattern.Compile)
	if err != nil {
		return nil, fmt.Errorf("portable media player guard: %w", err)
	}

	c, err := classifier.New(classifier.Config{
		Type:        TypePortableMediaPlayer,
		Rules:       set,
		Catalog:     brands,
		Guard:       guard,
		PostProcess: buildModel,
		Observer:    o.observer,
		Logger:      o.log,
	})
	if err != nil {
		return nil, fmt.Errorf("portable media player classifier: %w", err)
	}
	return c, nil
}

// buildModel expands the model as a name: underscores are part of model
// names, not version separators.
func buildModel(rec classifier.Record, m cascade.Match) classifier.Record {
	rec.Version = cascade.BuildName(m.Rule.Version, m)
	return rec
}

func newDevice(rec classifier.Record) *Device {
	return &Device{
		Type:      rec.Type,
		Brand:     rec.Name,
		BrandCode: rec.ShortCode,
		Model:     rec.Version,
	}
}
