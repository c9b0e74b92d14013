package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	GreetingPrefix = "Hello, "
	GreetingSuffix = "!"
)

// Greet returns the greeting for name. The name is used as given; it must
// contain a non-space character, be valid UTF-8 and hold no control
// characters.
func Greet(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}
	if !utf8.ValidString(name) || strings.IndexFunc(name, unicode.IsControl) != -1 {
		return "", ErrInvalidName
	}
	return GreetingPrefix + name + GreetingSuffix, nil
}
