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


// Package core defines the domain model shared by every palette component:
// queries and their derived classifications, generation tokens, candidates
// and their kinds, streaming batches, history entries, and the key
// normalization rules that give candidates from different sources a common
// deduplication identity.
//
// The package is dependency-light and side-effect free; all concurrency and
// I/O live in the engine and source packages.
package core
