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


// Package source defines the adapter contracts between the query engine and
// its data sources, plus the error taxonomy shared by all adapters.
//
// Two shapes of source exist:
//
//   - Adapter: a single request/response call returning candidates for one
//     domain (applications, file history, notes, plugins, system folders).
//   - StreamingAdapter: the high-volume filesystem index, which emits partial
//     batches followed by one final authoritative result set.
//
// Concrete implementations live in the subpackages (apps, history, notes,
// plugins, folders, fsindex, ai, builtin). Each adapter call is independently
// cancellable and ignorable: a slow adapter returning for a superseded
// generation must not mutate shared state, so adapters only ever return
// values and leave all bookkeeping to the engine.
package source
