package engine

import "errors"

var (
	ErrNilCatalog    = errors.New("engine resolver needs an engine catalog")
	ErrNilRuleSet    = errors.New("engine resolver needs an engine rule-set")
	ErrUnknownEngine = errors.New("engine name is not in the engine catalog")
)
