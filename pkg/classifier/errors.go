package classifier

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyType          = errors.New("classifier: type is required")
	ErrNilRuleSet         = errors.New("classifier: rule-set is required")
	ErrNilCatalog         = errors.New("classifier: catalog is required")
	ErrUnknownName        = errors.New("classifier: rule name not in catalog")
	ErrUnknownEngine      = errors.New("classifier: engine not in engine catalog")
	ErrInvariantViolation = errors.New("classifier: invariant violation")
)

// InvariantError reports a matched rule whose expanded name is not in the
// catalog.
type InvariantError struct {
	Type      string
	Rule      int
	Name      string
	UserAgent string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s rule %d produced %q which is not in the catalog",
		ErrInvariantViolation, e.Type, e.Rule, e.Name)
}

func (e *InvariantError) Unwrap() error { return ErrInvariantViolation }
