package order

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ReturnPhase enumerates the phases of the two-phase return-verification
// workflow layered on cancelled/returned orders.
type ReturnPhase int

const (
	// ReturnNone means no return has been submitted.
	ReturnNone ReturnPhase = iota

	// ReturnSubmitted means the driver handed the parcel back to the company
	// and the submission awaits manager/owner verification.
	ReturnSubmitted

	// ReturnVerified means a manager or owner confirmed the physical return.
	// Verification is final and triggers exactly one restock.
	ReturnVerified
)

// ReturnState is a tagged variant modelling the return-verification
// sub-state machine explicitly, so the invalid combinations that three
// loose booleans would permit are unrepresentable. The zero value is
// ReturnNone and is valid.
//
// Transitions: None -> Submitted (SubmitReturn, idempotent while
// submitted) -> Verified (VerifyReturn, hard idempotency guard).
type ReturnState struct {
	phase       ReturnPhase
	reason      string
	submittedAt *time.Time
	verifiedAt  *time.Time
	verifiedBy  *kernel.UUID
}

// RestoreReturnState reconstructs a ReturnState from persistence, rejecting
// combinations the workflow cannot produce.
func RestoreReturnState(
	phase ReturnPhase,
	reason string,
	submittedAt *time.Time,
	verifiedAt *time.Time,
	verifiedBy *kernel.UUID,
) (ReturnState, error) {
	switch phase {
	case ReturnNone:
		if submittedAt != nil || verifiedAt != nil || verifiedBy != nil {
			return ReturnState{}, errs.NewValueIsInvalidErrorWithCause("returnState is invalid",
				fmt.Errorf("phase none cannot carry timestamps or a verifier"))
		}
		return ReturnState{}, nil
	case ReturnSubmitted:
		if submittedAt == nil {
			return ReturnState{}, errs.NewValueIsRequiredError("returnSubmittedAt")
		}
		if verifiedAt != nil || verifiedBy != nil {
			return ReturnState{}, errs.NewValueIsInvalidErrorWithCause("returnState is invalid",
				fmt.Errorf("phase submitted cannot carry verification fields"))
		}
		return ReturnState{phase: phase, reason: reason, submittedAt: submittedAt}, nil
	case ReturnVerified:
		if submittedAt == nil {
			return ReturnState{}, errs.NewValueIsRequiredError("returnSubmittedAt")
		}
		if verifiedAt == nil {
			return ReturnState{}, errs.NewValueIsRequiredError("returnVerifiedAt")
		}
		if verifiedBy == nil {
			return ReturnState{}, errs.NewValueIsRequiredError("returnVerifiedBy")
		}
		if err := verifiedBy.Validate(); err != nil {
			return ReturnState{}, err
		}
		return ReturnState{
			phase:       phase,
			reason:      reason,
			submittedAt: submittedAt,
			verifiedAt:  verifiedAt,
			verifiedBy:  verifiedBy,
		}, nil
	default:
		return ReturnState{}, errs.NewValueIsInvalidErrorWithCause("returnState is invalid",
			fmt.Errorf("%d is not a valid return phase", int(phase)))
	}
}

// Phase returns the current workflow phase.
func (r ReturnState) Phase() ReturnPhase {
	return r.phase
}

// Reason returns the driver-supplied return reason, if any.
func (r ReturnState) Reason() string {
	return r.reason
}

// SubmittedAt returns when the return was submitted, nil before submission.
func (r ReturnState) SubmittedAt() *time.Time {
	return r.submittedAt
}

// VerifiedAt returns when the return was verified, nil before verification.
func (r ReturnState) VerifiedAt() *time.Time {
	return r.verifiedAt
}

// VerifiedBy returns who verified the return, nil before verification.
func (r ReturnState) VerifiedBy() *kernel.UUID {
	return r.verifiedBy
}

// IsSubmitted reports whether the return reached at least the submitted phase.
func (r ReturnState) IsSubmitted() bool {
	return r.phase == ReturnSubmitted || r.phase == ReturnVerified
}

// IsVerified reports whether the return completed verification.
func (r ReturnState) IsVerified() bool {
	return r.phase == ReturnVerified
}

// AwaitingVerification reports a submitted but not yet verified return.
func (r ReturnState) AwaitingVerification() bool {
	return r.phase == ReturnSubmitted
}

// submit moves None -> Submitted. The returned bool reports whether state
// changed: a retry while already submitted or verified is a no-op, since a
// driver may re-send the same submission.
func (r ReturnState) submit(reason string, now time.Time) (ReturnState, bool) {
	if r.phase != ReturnNone {
		return r, false
	}

	submittedAt := now
	return ReturnState{
		phase:       ReturnSubmitted,
		reason:      reason,
		submittedAt: &submittedAt,
	}, true
}

// verify moves Submitted -> Verified. The caller supplies the order ID for
// error context only.
func (r ReturnState) verify(orderID string, by kernel.UUID, now time.Time) (ReturnState, error) {
	switch r.phase {
	case ReturnVerified:
		return r, NewAlreadyVerifiedError(orderID)
	case ReturnNone:
		return r, NewInvalidStateError(orderID, "return has not been submitted to the company")
	default:
	}

	if err := by.Validate(); err != nil {
		return r, err
	}

	verifiedAt := now
	verifiedBy := by
	return ReturnState{
		phase:       ReturnVerified,
		reason:      r.reason,
		submittedAt: r.submittedAt,
		verifiedAt:  &verifiedAt,
		verifiedBy:  &verifiedBy,
	}, nil
}
