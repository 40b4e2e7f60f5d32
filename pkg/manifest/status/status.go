// Package status exports errors produced by manifest loading.
package status

import (
	"github.com/pakrat-io/pakrat/pkg/errors"
)

var (
	// ErrSource indicates a configuration source that could not be read
	// or parsed
	ErrSource = errors.New("unreadable configuration source")

	// ErrLoadField indicates a package 'load' field of an unsupported
	// kind: only booleans, strings, and lists of strings select variants
	ErrLoadField = errors.New("unsupported kind for 'load' field")
)
