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


// Package rank turns the merged candidate set of one generation into the
// single ordered list shown to the user.
//
// The pipeline is deduplication (cross-source path collisions collapse to
// the most trusted source), scoring (one pure function over named weight
// constants), and a stable sort with explicit tie-break rules. Special
// candidates and plugin actions occupy fixed bands ahead of everything else.
// An empty query degenerates to a pure usage/recency ordering for the
// default "recently used" view.
package rank
