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


// Package history persists the file-open history on BadgerDB and serves it
// as a launcher candidate source.
//
// The store is the system of record for which files and folders the user has
// opened, how often, and when. It seeds the in-memory open-history map once
// at startup; after that, launches update the map synchronously and write
// back to the store fire-and-forget.
//
// Constructors return the Store interface, not the concrete type, so tests
// and ephemeral callers can swap in NewMemoryStore:
//
//	st, err := history.NewStore("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
// All Store implementations are safe for concurrent use.
package history
