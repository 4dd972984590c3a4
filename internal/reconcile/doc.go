// Package reconcile compares the two independent entries of one polling
// station and derives the correction map a human fills in to resolve them.
//
// The engine never picks one operator's number over the other's. It only
// detects disagreement and leaves the resolution slot empty.
package reconcile
