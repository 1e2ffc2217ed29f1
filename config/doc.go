// Package config holds the search engine's tunable parameters
// as a plain struct resolved from
// functional options, plus a YAML loader for the CLI. The engine treats
// a resolved Config as immutable for the duration of a fit.
package config
