package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the shipment lifecycle state of an order.
//
// Unlike a strictly linear pipeline, any non-delivered status may move to any
// other non-delivered status, and into Delivered from any prior status. This
// reflects real-world correction needs: a mis-assigned "picked_up" can be
// reverted back to "pending". The one hard rule is that Delivered is frozen;
// see Order.ChangeStatus.
//
// Status is a value object providing canonical string representations for
// persistence and display. "return_verified" is deliberately not a Status:
// it is a display label derived from the return-verification workflow
// layered on Cancelled/Returned.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	Pending

	// Assigned indicates a driver has been scheduled for the order.
	Assigned

	// PickedUp indicates the driver has collected the parcel.
	PickedUp

	// InTransit indicates the parcel is moving toward the customer.
	InTransit

	// OutForDelivery indicates the parcel is on the last leg.
	OutForDelivery

	// Delivered is a terminal outcome. Once reached, the order's status,
	// driver, and driver commission are frozen.
	Delivered

	// NoResponse indicates the customer could not be reached. It is not
	// terminal: drivers keep retrying or the order gets cancelled.
	NoResponse

	// Returned is a terminal outcome eligible for return verification.
	Returned

	// Cancelled is a terminal outcome eligible for return verification.
	Cancelled
)

// getStatusStrings returns canonical keys for all statuses.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Assigned:       "assigned",
		PickedUp:       "picked_up",
		InTransit:      "in_transit",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		NoResponse:     "no_response",
		Returned:       "returned",
		Cancelled:      "cancelled",
	}
}

// getValidStatusStrings returns only valid statuses, keyed for parsing.
func getValidStatusStrings() map[string]Status {
	return map[string]Status{
		"pending":          Pending,
		"assigned":         Assigned,
		"picked_up":        PickedUp,
		"in_transit":       InTransit,
		"out_for_delivery": OutForDelivery,
		"delivered":        Delivered,
		"no_response":      NoResponse,
		"returned":         Returned,
		"cancelled":        Cancelled,
	}
}

// getStatusAliases returns the historical spellings that feed into the fixed
// state set. Applied on every read/write boundary before comparison so that
// legacy rows and sloppy clients never create duplicate buckets.
func getStatusAliases() map[string]Status {
	return map[string]Status{
		"open":      Pending,
		"shipped":   InTransit,
		"contacted": InTransit,
		"attempted": InTransit,
		"picked":    PickedUp,
		"pickedup":  PickedUp,
	}
}

// normalizeStatus lowercases the input and folds spaces and dashes into
// underscores ("Picked Up", "picked-up" -> "picked_up").
func normalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// ParseStatus canonicalizes a free-form status string into a Status.
// Returns a ValueIsInvalidError for input outside the fixed state set.
func ParseStatus(raw string) (Status, error) {
	normalized := normalizeStatus(raw)

	if status, ok := getStatusAliases()[normalized]; ok {
		return status, nil
	}
	if status, ok := getValidStatusStrings()[normalized]; ok {
		return status, nil
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid shipment status", raw),
	)
}

// Validate checks if the Status value is a member of the fixed state set.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", int(s)),
		)
	}
	return nil
}

// String returns the canonical key of the status, e.g. "picked_up".
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is a terminal outcome.
// The "open" report bucket is every status for which this is false.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned || s == Cancelled
}

// IsReturnEligible reports whether the return-verification workflow applies.
func (s Status) IsReturnEligible() bool {
	return s == Returned || s == Cancelled
}
