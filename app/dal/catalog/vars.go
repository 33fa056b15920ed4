package catalog

import "errors"

// ErrNotFound reports that the catalog holds no product or no changelog for an id.
// It is the expected answer for delisted products, not a failure.
var ErrNotFound = errors.New("catalog: record not found")
var ErrInvalidParam = errors.New("catalog: invalid param")
var ErrUnknownDriver = errors.New("catalog: unknown driver")
