// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package source

import (
	"errors"
	"fmt"
)

var (
	// ErrAdapterUnavailable indicates the backing service is not installed
	// or not running. Surfaced as a status the consumer can render and
	// retry, never fatal.
	ErrAdapterUnavailable = errors.New("adapter unavailable")

	// ErrStoreRequired is returned when a constructor is missing its
	// backing store.
	ErrStoreRequired = errors.New("backing store required")

	// ErrEmptyQuery is returned by adapters that cannot answer an empty
	// query.
	ErrEmptyQuery = errors.New("query cannot be empty")
)

// AdapterError wraps a transient failure from one adapter so the caller can
// attribute it to a source. Failures are isolated per adapter and degrade to
// zero results from that source.
type AdapterError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *AdapterError) Error() string {
	return fmt.Sprintf("adapter %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *AdapterError) Unwrap() error {
	return e.Err
}
