// Package iterator implements lazy, pull-based sequences with composable
// combinators.
//
// An [Iterator] yields one value per call to Next, and reports exhaustion via
// its second return value, rather than via a sentinel value, or an error. This
// means exhaustion is never conflated with a legitimately produced zero value
// (e.g. nil).
//
// # Exhaustion
//
// Every iterator returned by this package is sticky: once Next has returned
// false, all subsequent calls will also return false, even if the underlying
// source would otherwise produce more values. Iterators are not restartable.
//
// # Combinators
//
// Sources:
//   - [From] (dynamic normalization), [FromSlice], [FromSliceStep], [FromFunc], [FromSeq]
//   - [Count], [Repeat], [RepeatN]
//
// Transformations:
//   - [Filter], [Map], [Slice], [Chain], [Cycle], [Tee]
//
// Consumers:
//   - [Reduce], [Fold], [ToSlice], [All]
//
// # Concurrency
//
// Iterators are not safe for concurrent use. In particular, the branches
// returned by [Tee] share a buffer, and must all be consumed from the same
// goroutine (or externally synchronized).
package iterator
