package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Role identifies who created an order. The settlement breakdown branches on
// it: dropshipper-created orders settle against the blended dropship price,
// agent-created orders earn the agent commission.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleOwner is the company owner.
	RoleOwner

	// RoleManager is a country or warehouse manager.
	RoleManager

	// RoleAgent is a sales agent earning a commission on order totals.
	RoleAgent

	// RoleDropshipper is a reseller paying a blended dropship+purchase price
	// and keeping the margin versus the customer-facing total.
	RoleDropshipper

	// RoleWebsite marks orders placed through the storefront.
	RoleWebsite
)

// getRoleStrings returns canonical keys for all roles.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:     "unknown",
		RoleOwner:       "owner",
		RoleManager:     "manager",
		RoleAgent:       "agent",
		RoleDropshipper: "dropshipper",
		RoleWebsite:     "website",
	}
}

// ParseRole canonicalizes a role string. Returns a ValueIsInvalidError for
// anything outside the fixed role set.
func ParseRole(raw string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for role, key := range getRoleStrings() {
		if role != RoleUnknown && key == normalized {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid",
		fmt.Errorf("%q is not a valid creator role", raw),
	)
}

// Validate checks that the role is a member of the fixed role set.
func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleWebsite {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid",
			fmt.Errorf("%d is not a valid role", int(r)),
		)
	}
	return nil
}

// String returns the canonical role key, e.g. "dropshipper".
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Creator attributes an order to the identity and role that created it.
// It is an immutable value object.
type Creator struct {
	id   kernel.UUID
	role Role

	isConstructed bool
}

// NewCreator creates a Creator with a valid identity and role.
func NewCreator(id kernel.UUID, role Role) (Creator, error) {
	if err := id.Validate(); err != nil {
		return Creator{}, err
	}
	if err := role.Validate(); err != nil {
		return Creator{}, err
	}

	return Creator{id: id, role: role, isConstructed: true}, nil
}

// Validate ensures the Creator was built via NewCreator.
func (c Creator) Validate() error {
	if !c.isConstructed {
		return ErrCreatorIsNotConstructed
	}
	return nil
}

// ID returns the creator's identity.
func (c Creator) ID() kernel.UUID {
	return c.id
}

// Role returns the creator's role.
func (c Creator) Role() Role {
	return c.role
}
