// Package testutil provides deterministic helpers for predgo tests: a seeded
// thread-safe RNG, sorted set generation, and a brute-force predecessor
// reference.
package testutil
