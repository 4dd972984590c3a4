// Package path parses path expressions such as
// "political_group_votes[0].candidate_votes[3].votes" and reads or writes
// the leaf they address inside a nested record.
//
// # Path Syntax
//
// A path is a sequence of segments:
//   - Identifiers: "voters_counts", "poll_card_count"
//   - Indexes in brackets: "political_group_votes[1]"
//   - Indexes after a dot: "political_group_votes.1"
//
// Both index notations parse to the same segments; String always emits the
// bracket form, which is the canonical form used as a form-value key.
//
// # Records
//
// Records are Go structs addressed through their json field names. Only two
// container kinds are walked: structs (record of fields) and slices (array of
// values), optionally behind pointers. Leaves are booleans, integers and
// strings, optionally behind pointers. Anything else is reported as a
// *ShapeError: a path that does not fit the record it is applied to is a
// programming error and must never be defaulted away.
package path
