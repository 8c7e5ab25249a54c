// SPDX-License-Identifier: MIT

package superlattice

import "github.com/cockroachdb/errors"

// ErrBadRange indicates a size range that is empty or starts below 1.
var ErrBadRange = errors.New("superlattice: invalid size range")
