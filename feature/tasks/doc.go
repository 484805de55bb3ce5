// Package tasks manages monitoring assignments.
//
// A task is a labelled set of target chat ids owned by an operator; the
// monitor only watches chats that appear in an active task. Target ids are
// stored JSON-encoded, and malformed data decodes to an empty list so one
// bad row cannot break the listing.
package tasks
