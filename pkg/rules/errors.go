package rules

import "errors"

var (
	ErrEmptyRuleSet      = errors.New("rule-set has no entries")
	ErrMissingPattern    = errors.New("rule entry has no regex")
	ErrMissingName       = errors.New("rule entry has no name template")
	ErrMissingVersion    = errors.New("rule entry has no version template")
	ErrInvalidPattern    = errors.New("rule entry has an invalid regex")
	ErrInvalidEngineSpec = errors.New("rule entry has an invalid engine block")
	ErrDecodeRuleSet     = errors.New("failed to decode rule-set")
)
