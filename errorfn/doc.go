// Package errorfn defines the node-error capability the search engine
// minimizes: a function from a node's class distribution (or raw sample
// indices) to (error, majority label). The default is misclassification
// count; callers may plug any function with the same signature.
package errorfn
