// Package tally defines the polling station results record and the
// election definition that fixes its shape.
//
// The shape of a Results value (how many political group blocks, how many
// candidates in each) is set by NewResults and never changes afterwards;
// form activity only changes leaf values.
package tally
