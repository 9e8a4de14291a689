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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidCandidate indicates a Candidate failed validation.
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrInvalidKind indicates an unknown Kind value.
	ErrInvalidKind = errors.New("invalid candidate kind")

	// ErrEmptyKey indicates the candidate Key field is empty.
	ErrEmptyKey = errors.New("candidate key cannot be empty")

	// ErrEmptyDisplayName indicates the DisplayName field is empty.
	ErrEmptyDisplayName = errors.New("display name cannot be empty")

	// ErrEmptyPath indicates a path-kind candidate without a path.
	ErrEmptyPath = errors.New("path cannot be empty for path-kind candidates")

	// ErrInvalidBatch indicates a Batch failed validation.
	ErrInvalidBatch = errors.New("invalid batch")
)
