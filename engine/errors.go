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


package engine

import "errors"

var (
	// ErrSchedulerRequired is returned when a delivery scheduler is not provided.
	ErrSchedulerRequired = errors.New("delivery scheduler required")

	// ErrEmptyQuery is returned by the synchronous search for an empty query.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrSuperseded is returned by the synchronous search when a newer
	// query replaced it before results were delivered.
	ErrSuperseded = errors.New("query superseded")
)
