package domain

import "errors"

// Domain errors as sentinel values.
// Call sites wrap them with context using fmt.Errorf("%w: ...").
var (
	// ErrMalformedRecord: missing or invalid input fields. Evaluation aborts for the whole batch.
	ErrMalformedRecord = errors.New("malformed pricing record")

	// ErrModelUnavailable: the demand model could not be reached or broke its contract.
	ErrModelUnavailable = errors.New("demand model unavailable")

	// ErrJoinMismatch: a record has no historical-detail row for its key.
	ErrJoinMismatch = errors.New("historical detail missing for pricing record")

	// ErrUndefinedLift: a baseline sum is zero so the lift ratio is undefined.
	ErrUndefinedLift = errors.New("lift is undefined for a zero baseline")

	// ErrCommitFailure: the transaction log rejected the batch; nothing was recorded.
	ErrCommitFailure = errors.New("pricing commit failed")

	// ErrScopeNotFound: no current rows exist for the requested brand and item.
	ErrScopeNotFound = errors.New("pricing scope not found")

	// ErrBatchNotFound: no transactions exist for the requested batch.
	ErrBatchNotFound = errors.New("transaction batch not found")
)

// ErrorKind is the closed set of failure conditions surfaced to callers.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMalformedRecord
	KindModelUnavailable
	KindJoinMismatch
	KindUndefinedLift
	KindCommitFailure
	KindNotFound
)

// String returns the stable code used at the transport boundary.
func (k ErrorKind) String() string {
	switch k {
	case KindMalformedRecord:
		return "MALFORMED_RECORD"
	case KindModelUnavailable:
		return "MODEL_UNAVAILABLE"
	case KindJoinMismatch:
		return "JOIN_MISMATCH"
	case KindUndefinedLift:
		return "UNDEFINED_LIFT"
	case KindCommitFailure:
		return "COMMIT_FAILURE"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "UNKNOWN"
	}
}

// KindOf classifies err. Commit failures win over the cause that triggered them.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrCommitFailure):
		return KindCommitFailure
	case errors.Is(err, ErrMalformedRecord):
		return KindMalformedRecord
	case errors.Is(err, ErrModelUnavailable):
		return KindModelUnavailable
	case errors.Is(err, ErrJoinMismatch):
		return KindJoinMismatch
	case errors.Is(err, ErrUndefinedLift):
		return KindUndefinedLift
	case errors.Is(err, ErrScopeNotFound), errors.Is(err, ErrBatchNotFound):
		return KindNotFound
	default:
		return KindUnknown
	}
}
