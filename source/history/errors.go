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


package history

import "errors"

var (
	// ErrNotFound indicates that the requested entry was not recorded.
	ErrNotFound = errors.New("history entry not found")

	// ErrEmptyPath indicates that an operation was given an empty path.
	ErrEmptyPath = errors.New("path is empty")

	// ErrStoreClosed indicates that the history store is closed.
	ErrStoreClosed = errors.New("history store is closed")
)
