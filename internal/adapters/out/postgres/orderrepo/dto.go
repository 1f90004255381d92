// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status and country are stored as their canonical string keys so reporting
// queries can group on them directly.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceNumber string    `gorm:"index"`

	Country   string `gorm:"index"`
	City      string
	PhoneCode string

	ShippingFee float64
	Discount    float64
	Total       *float64

	Status      string `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time

	DriverID         *uuid.UUID `gorm:"type:uuid;index"`
	DriverCommission float64
	AssignedManager  *uuid.UUID `gorm:"type:uuid"`

	CreatedByID   uuid.UUID `gorm:"type:uuid;index"`
	CreatedByRole string

	InvestorID      *uuid.UUID `gorm:"type:uuid"`
	InvestorAmount  float64
	InvestorPending bool
	CommissionerID  *uuid.UUID `gorm:"type:uuid"`
	ReferenceProfit float64

	ReturnPhase       int
	ReturnReason      string
	ReturnSubmittedAt *time.Time
	ReturnVerifiedAt  *time.Time
	ReturnVerifiedBy  *uuid.UUID `gorm:"type:uuid"`

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line in the order_items table.
type ItemDTO struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	Position          int
	ProductRef        string
	Quantity          int
	UnitPrice         float64
	BaseCurrency      string
	PurchasePrice     float64
	DropshippingPrice float64
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for i, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:           aggregate.ID().Bytes(),
			Position:          i,
			ProductRef:        item.ProductRef(),
			Quantity:          item.Quantity(),
			UnitPrice:         item.UnitPrice(),
			BaseCurrency:      string(item.BaseCurrency()),
			PurchasePrice:     item.PurchasePrice(),
			DropshippingPrice: item.DropshippingPrice(),
		})
	}

	var investorID *uuid.UUID
	var investorAmount float64
	var investorPending bool
	if investor := aggregate.InvestorProfit(); investor != nil {
		raw := investor.InvestorID.Bytes()
		investorID = &raw
		investorAmount = investor.Amount
		investorPending = investor.Pending
	}

	returnState := aggregate.ReturnState()
	var returnVerifiedBy *uuid.UUID
	if verifier := returnState.VerifiedBy(); verifier != nil {
		raw := verifier.Bytes()
		returnVerifiedBy = &raw
	}

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		InvoiceNumber: aggregate.InvoiceNumber(),

		Country:   aggregate.Country().String(),
		City:      aggregate.City(),
		PhoneCode: aggregate.PhoneCode(),

		ShippingFee: aggregate.ShippingFee(),
		Discount:    aggregate.Discount(),
		Total:       aggregate.Total(),

		Status:      aggregate.Status().String(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		ShippedAt:   aggregate.ShippedAt(),
		DeliveredAt: aggregate.DeliveredAt(),

		DriverID:         optionalID(aggregate.DriverID()),
		DriverCommission: aggregate.DriverCommission(),
		AssignedManager:  optionalID(aggregate.AssignedManager()),

		CreatedByID:   aggregate.CreatedBy().ID().Bytes(),
		CreatedByRole: aggregate.CreatedBy().Role().String(),

		InvestorID:      investorID,
		InvestorAmount:  investorAmount,
		InvestorPending: investorPending,
		CommissionerID:  optionalID(aggregate.CommissionerID()),
		ReferenceProfit: aggregate.ReferenceProfit(),

		ReturnPhase:       int(returnState.Phase()),
		ReturnReason:      returnState.Reason(),
		ReturnSubmittedAt: returnState.SubmittedAt(),
		ReturnVerifiedAt:  returnState.VerifiedAt(),
		ReturnVerifiedBy:  returnVerifiedBy,

		Items: items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lifecycle timestamps and
// return state using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	role, err := order.ParseRole(dto.CreatedByRole)
	if err != nil {
		return nil, err
	}
	creatorID, err := kernel.UUIDFromBytes(dto.CreatedByID[:])
	if err != nil {
		return nil, err
	}
	creator, err := order.NewCreator(creatorID, role)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(
			itemDTO.ProductRef,
			itemDTO.Quantity,
			itemDTO.UnitPrice,
			kernel.Currency(itemDTO.BaseCurrency),
			itemDTO.PurchasePrice,
			itemDTO.DropshippingPrice,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	driverID, err := domainID(dto.DriverID)
	if err != nil {
		return nil, err
	}
	assignedManager, err := domainID(dto.AssignedManager)
	if err != nil {
		return nil, err
	}
	commissionerID, err := domainID(dto.CommissionerID)
	if err != nil {
		return nil, err
	}
	returnVerifiedBy, err := domainID(dto.ReturnVerifiedBy)
	if err != nil {
		return nil, err
	}

	var investorProfit *order.InvestorShare
	if dto.InvestorID != nil {
		investorID, investorErr := kernel.UUIDFromBytes((*dto.InvestorID)[:])
		if investorErr != nil {
			return nil, investorErr
		}
		investorProfit = &order.InvestorShare{
			InvestorID: investorID,
			Amount:     dto.InvestorAmount,
			Pending:    dto.InvestorPending,
		}
	}

	returnState, err := order.RestoreReturnState(
		order.ReturnPhase(dto.ReturnPhase),
		dto.ReturnReason,
		dto.ReturnSubmittedAt,
		dto.ReturnVerifiedAt,
		returnVerifiedBy,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.OrderSnapshot{
		ID:            id,
		InvoiceNumber: dto.InvoiceNumber,

		Country:   kernel.CanonicalCountry(dto.Country),
		City:      dto.City,
		PhoneCode: dto.PhoneCode,

		Items:       items,
		ShippingFee: dto.ShippingFee,
		Discount:    dto.Discount,
		Total:       dto.Total,

		Status:      status,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		ShippedAt:   dto.ShippedAt,
		DeliveredAt: dto.DeliveredAt,

		DriverID:         driverID,
		DriverCommission: dto.DriverCommission,
		AssignedManager:  assignedManager,

		CreatedBy: creator,

		InvestorProfit:  investorProfit,
		CommissionerID:  commissionerID,
		ReferenceProfit: dto.ReferenceProfit,

		ReturnState: returnState,
	})
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
