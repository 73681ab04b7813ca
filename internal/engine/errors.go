// Copyright 2026 The Adlens Authors
// SPDX-License-Identifier: MIT

package engine

import "errors"

// ErrEmptyDataset indicates an aggregate operation was attempted over zero
// rows. Callers are expected to check the row count before summarizing.
var ErrEmptyDataset = errors.New("empty dataset")

// ErrInvalidConfig indicates a benchmark or threshold that cannot be used,
// e.g. a zero or negative divisor. Raised at configuration time, never
// per-row.
var ErrInvalidConfig = errors.New("invalid config")
