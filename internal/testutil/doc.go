// Package testutil provides shared helpers for package tests: a scripted
// executor that replays canned execution results without a real interpreter,
// and a fluent document builder. Kept internal so the public API surface
// stays free of test-only constructs.
package testutil
