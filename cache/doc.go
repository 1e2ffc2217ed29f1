// Package cache implements the literal-set -> CacheEntry trie the search
// engine memoizes sub-problems in.
//
// Keys are canonical (sorted) sequences of core.Item literals. A trie
// rooted at the empty set stores one node per visited literal set; each
// node owns a map from its next literal to a child node. Entries never
// move once allocated: callers may hold onto an Index returned from
// Insert and use it as a fast path back to the same Entry, since the
// value's address never changes underneath a caller.
package cache
