// SPDX-License-Identifier: MIT

package config

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidConfig is returned by Validate for unusable values.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrRead wraps failures to read or decode a configuration source.
	ErrRead = errors.New("config: cannot read configuration")
)
