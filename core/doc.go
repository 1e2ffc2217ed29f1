// Package core defines the shared vocabulary of the DL85 branch-and-bound
// engine: the item/literal encoding used to label tree edges, the small
// enums that parameterize a search run, and the transient records
// (RuleContext, SearchResult) passed between the search engine, the rule
// framework, and the cache.
//
// core has no dependency on any other package in this module; every other
// package depends on it.
package core
