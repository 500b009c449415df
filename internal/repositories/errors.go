package repositories

import "errors"

// ErrNotFound is returned when a record does not exist. Handlers translate
// it into a 404 envelope via errors.Is.
var ErrNotFound = errors.New("record not found")
