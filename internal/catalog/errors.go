package catalog

import "errors"

// ErrInvalidInput reports a create request whose name or url is blank.
var ErrInvalidInput = errors.New("invalid input")
