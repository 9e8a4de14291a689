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


// Package engine orchestrates query execution across all candidate sources.
//
// The moving parts, in dispatch order:
//
//   - Debouncer: collapses rapid edits into one settled query per pause,
//     waiting longer for short queries than long ones.
//   - Generations: mints a monotonically increasing token per settled query
//     and supersedes the previous one. Cancellation is cooperative: every
//     component re-checks its generation before committing state, and a
//     mismatch is a silent drop rather than an error.
//   - Worker pool fan-out: each adapter searches concurrently; a slow or
//     failing adapter only ever costs its own results.
//   - Accumulator: the sole consumer of the streaming adapter's batches,
//     reconciled against the terminal authoritative response.
//   - Publish: merged results are deduplicated and ranked, then handed to
//     the delivery scheduler for incremental reveal.
//
// No operation blocks the input path; the only waits are adapter calls, the
// settle timer, and the scheduler's per-tick pacing.
package engine
