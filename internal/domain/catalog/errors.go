package catalog

import "errors"

var (
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceInUse    = errors.New("service is referenced by recorded services")
)
