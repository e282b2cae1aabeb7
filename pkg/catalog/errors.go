package catalog

import "errors"

var (
	ErrInvalidEntry        = errors.New("catalog entry needs a code and a name")
	ErrDuplicateCode       = errors.New("duplicate short code in catalog")
	ErrDuplicateName       = errors.New("duplicate canonical name in catalog")
	ErrUnknownCode         = errors.New("short code is not in the catalog")
	ErrAmbiguousIdentifier = errors.New("short code collides with a canonical name")
	ErrInvalidFamily       = errors.New("catalog family needs a name")
	ErrDecodeCatalog       = errors.New("failed to decode catalog")
)
