package core

import "errors"

var (
	ErrEmptyName     = errors.New("greetsite: name is empty")
	ErrInvalidName   = errors.New("greetsite: name is malformed")
	ErrPageNotFound  = errors.New("greetsite: page not found")
	ErrTemplate      = errors.New("greetsite: template error")
	ErrRouteNotFound = errors.New("greetsite: route not found")
)

// IsNotFoundError reports whether err is a missing page or an unknown route.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrPageNotFound) || errors.Is(err, ErrRouteNotFound)
}
