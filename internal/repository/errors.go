// Package repository implements all persistence and the invariant-preserving
// operations over the roster database. Repositories receive a *sql.DB at
// construction; every operation that touches more than one table runs inside
// a single transaction, so no partially applied state is ever visible
// outside an operation. Sentinel errors below are the full error contract
// the handler layer translates into HTTP responses.
package repository

import "errors"

// ErrNotFound is returned when a referenced id (wrestler, show, title,
// match) does not exist. Handlers translate this into 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an operation would violate an invariant or
// clashes with existing state, such as booking the same wrestler into a
// match twice. Handlers translate this into 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidParticipant is returned by RecordResult when the proposed
// winner is not among the match's participants.
var ErrInvalidParticipant = errors.New("winner is not a match participant")

// ErrAlreadyResolved is returned when a result is recorded for a match
// whose winner is already set. Resolution is single-shot; the stored
// result never changes through this path.
var ErrAlreadyResolved = errors.New("match already resolved")

// ErrTitleRetired is returned when crowning is attempted on a title whose
// is_active flag is false. A retired belt keeps its history readable but
// cannot gain new reigns.
var ErrTitleRetired = errors.New("title is retired")
