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


package deliver

import "errors"

var (
	// ErrSinkRequired is returned when a sink is not provided.
	ErrSinkRequired = errors.New("sink required")

	// ErrInvalidChunkSize is returned for non-positive chunk sizes.
	ErrInvalidChunkSize = errors.New("chunk sizes must be positive")

	// ErrInvalidTickInterval is returned for a non-positive tick interval.
	ErrInvalidTickInterval = errors.New("tick interval must be positive")
)
