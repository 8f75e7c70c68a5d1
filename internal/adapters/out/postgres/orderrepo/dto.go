// Package orderrepo persists order aggregates with GORM. An order is stored
// as one row in "orders" plus one row per line in "order_lines".
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
)

// OrderDTO is the "orders" row. Statuses are stored as their string codes.
// Version is the optimistic-concurrency token and is bumped by every update.
type OrderDTO struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email          string         `gorm:"type:varchar(320);not null;index"`
	Address        AddressDTO     `gorm:"embedded;embeddedPrefix:address_"`
	OrderDate      time.Time      `gorm:"not null;index"`
	Status         string         `gorm:"type:varchar(16);not null"`
	DeliveryStatus string         `gorm:"type:varchar(16);not null;index"`
	Version        int            `gorm:"not null;default:0"`
	Lines          []OrderLineDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is embedded in the orders table with the address_ prefix.
type AddressDTO struct {
	City    string `gorm:"not null"`
	Street  string `gorm:"not null"`
	Zipcode string `gorm:"type:varchar(16);not null"`
}

// OrderLineDTO is an "order_lines" row. Seq is the 0-based creation order
// and, together with OrderID, the primary key.
type OrderLineDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey;autoIncrement:false"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null"`
	ItemName   string    `gorm:"not null"`
	OrderPrice int       `gorm:"not null"`
	Count      int       `gorm:"not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	lines := o.Lines()
	lineDTOs := make([]OrderLineDTO, 0, len(lines))
	for _, l := range lines {
		lineDTOs = append(lineDTOs, OrderLineDTO{
			OrderID:    id,
			Seq:        l.Seq(),
			ItemID:     l.ItemID().Bytes(),
			ItemName:   l.ItemName(),
			OrderPrice: l.OrderPrice(),
			Count:      l.Count(),
		})
	}

	return OrderDTO{
		ID:    id,
		Email: o.Email(),
		Address: AddressDTO{
			City:    o.Address().City(),
			Street:  o.Address().Street(),
			Zipcode: o.Address().Zipcode(),
		},
		OrderDate:      o.OrderDate(),
		Status:         o.Status().String(),
		DeliveryStatus: o.DeliveryStatus().String(),
		Version:        o.Version(),
		Lines:          lineDTOs,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(dto.Address.City, dto.Address.Street, dto.Address.Zipcode)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseOrderStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	deliveryStatus, err := order.ParseDeliveryStatus(dto.DeliveryStatus)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		itemID, idErr := kernel.UUIDFromBytes(l.ItemID[:])
		if idErr != nil {
			return nil, idErr
		}

		line, lineErr := order.RestoreLine(l.Seq, itemID, l.ItemName, l.OrderPrice, l.Count)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, dto.Email, address, dto.OrderDate, lines, status, deliveryStatus, dto.Version)
}

// toDomainList restores every row it can. Rows that fail are returned as
// unreadable in their original order.
func toDomainList(dtos []OrderDTO) ([]*order.Order, []ports.UnreadableOrder) {
	orders := make([]*order.Order, 0, len(dtos))
	unreadable := make([]ports.UnreadableOrder, 0)
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			id, _ := kernel.UUIDFromBytes(dto.ID[:])
			unreadable = append(unreadable, ports.UnreadableOrder{ID: id, Err: err})
			continue
		}
		orders = append(orders, o)
	}
	return orders, unreadable
}
