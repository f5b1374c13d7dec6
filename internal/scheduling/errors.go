package scheduling

import (
	"errors"
	"fmt"
)

// RejectionKind identifies why an assignment or status change was refused.
// Every kind except KindStoreFailure is a business-rule rejection; callers
// should not retry those without changed input.
type RejectionKind string

const (
	KindNotFound          RejectionKind = "NOT_FOUND"
	KindInvalidState      RejectionKind = "INVALID_STATE"
	KindDoctorUnavailable RejectionKind = "DOCTOR_UNAVAILABLE"
	KindProfileMissing    RejectionKind = "PROFILE_MISSING"
	KindInvalidDate       RejectionKind = "INVALID_DATE"
	KindInvalidWindow     RejectionKind = "INVALID_WINDOW"
	KindSlotConflict      RejectionKind = "SLOT_CONFLICT"
	KindStoreFailure      RejectionKind = "STORE_FAILURE"
)

// Rejection is an expected, recoverable-by-caller outcome of the scheduling
// pipeline. It carries a kind so callers can branch programmatically rather
// than matching on message text.
type Rejection struct {
	Kind    RejectionKind
	Message string
	Err     error
}

func (r *Rejection) Error() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %s: %v", r.Kind, r.Message, r.Err)
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

func (r *Rejection) Unwrap() error {
	return r.Err
}

func reject(kind RejectionKind, message string) error {
	return &Rejection{Kind: kind, Message: message}
}

func storeFailure(message string, err error) error {
	return &Rejection{Kind: KindStoreFailure, Message: message, Err: err}
}

// KindOf extracts the rejection kind from an error, or "" if the error did
// not originate from the scheduling pipeline.
func KindOf(err error) RejectionKind {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Kind
	}
	return ""
}

// IsKind reports whether err is a scheduling rejection of the given kind.
func IsKind(err error, kind RejectionKind) bool {
	return KindOf(err) == kind
}
