// Package dataset is the boundary between raw training data and the
// search core. It holds the static, read-only bitset representation
// of a training set (per-attribute and per-label bitsets) that every
// Cover is intersected against, plus the text/CSV → StaticDataset readers
// and a numpy-style array bridge.
//
// StaticDataset never mutates after construction; Cover is the owner of
// all mutable, reversible state (see package cover).
package dataset
