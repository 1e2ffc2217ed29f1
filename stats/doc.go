// Package stats collects per-run counters for the search engine. The
// engine updates a Statistics value in place during fit; callers read it
// (or serialize it to JSON) between rounds.
package stats
