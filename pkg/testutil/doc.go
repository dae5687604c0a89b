// Package testutil provides utilities for testing fileconv components.
//
// Key components:
//   - TestEnvironment: isolates configuration, state and NO_COLOR for one test
//     and holds the filesystem the code under test reads and writes
//   - FileTree: declarative directory layouts written in one call
//   - Sample documents: the same small document in every supported format
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated only when the code under test
//     goes through the real filesystem
//   - Define test data inline, not in external files
package testutil
