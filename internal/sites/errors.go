package sites

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryRequired = errors.New("sites: repository required")
	ErrNameRequired       = errors.New("sites: name is required")
	ErrSEOConfigInvalid   = errors.New("sites: seo config does not match schema")
)

// NotFoundError reports a missing site row.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
