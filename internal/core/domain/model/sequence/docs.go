// Package sequence formats and parses the human-readable identifiers handed
// out to bookings and loading sheets.
//
// LR numbers look like MU2501-0007: a two-letter branch code, the two-digit
// year and month, a dash and a sequence padded to four digits. The sequence
// is scoped to the branch code and the month.
//
// OGPL numbers look like OGPL-20250115-0001 and are scoped to the
// organization and the calendar day.
//
// The Next functions are pure: they take the most recent stored number (or
// nil) and return the candidate for the next record. A stored number that
// cannot be parsed never fails generation; the sequence restarts at 1.
// Uniqueness is enforced by the persistence layer, and callers retry on
// conflict.
package sequence
