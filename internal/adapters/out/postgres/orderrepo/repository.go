package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormOrderRepository creates a repository over db, which may be a
// transaction handle. Rows skipped by list reads are reported to logger.
func NewGormOrderRepository(db *gorm.DB, logger *slog.Logger) *GormOrderRepository {
	return &GormOrderRepository{
		db:     db,
		logger: logger.With("component", "order_repository"),
	}
}

// Add inserts the order row and its lines.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes both statuses and bumps the version, but only if the stored
// version still equals aggregate.Version(). Lines are left alone.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().Bytes()
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", id, aggregate.Version()).
		Updates(map[string]any{
			"status":          aggregate.Status().String(),
			"delivery_status": aggregate.DeliveryStatus().String(),
			"version":         gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
	}

	return errs.NewVersionIsInvalidErrorWithCause("version",
		fmt.Errorf("order %s is no longer at version %d", aggregate.ID(), aggregate.Version()))
}

// Get retrieves an order by id. A missing order is reported as found=false.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, bool, error) {
	if err := id.Validate(); err != nil {
		return nil, false, err
	}

	var dto OrderDTO
	if err := r.withLines(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, false, err
	}
	return o, true, nil
}

// GetAllByEmail retrieves every order placed with email, newest first.
func (r *GormOrderRepository) GetAllByEmail(ctx context.Context, email string) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.withLines(ctx).
		Where("email = ?", email).
		Order("order_date DESC").Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.readable(ctx, dtos), nil
}

// GetRecentByEmail retrieves at most limit orders placed with email, newest first.
func (r *GormOrderRepository) GetRecentByEmail(ctx context.Context, email string, limit int) ([]*order.Order, error) {
	if limit < 1 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OrderDTO
	err := r.withLines(ctx).
		Where("email = ?", email).
		Order("order_date DESC").Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.readable(ctx, dtos), nil
}

// GetAllByDeliveryStatusIn retrieves the orders in any of statuses, oldest
// first, whatever their commercial status.
func (r *GormOrderRepository) GetAllByDeliveryStatusIn(
	ctx context.Context,
	statuses ...order.DeliveryStatus,
) ([]*order.Order, []ports.UnreadableOrder, error) {
	if len(statuses) == 0 {
		return []*order.Order{}, []ports.UnreadableOrder{}, nil
	}

	codes := make([]string, 0, len(statuses))
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return nil, nil, err
		}
		codes = append(codes, s.String())
	}

	var dtos []OrderDTO
	err := r.withLines(ctx).
		Where("delivery_status IN ?", codes).
		Order("order_date").Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, nil, err
	}

	orders, unreadable := toDomainList(dtos)
	return orders, unreadable, nil
}

// GetAll retrieves every order, newest first.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withLines(ctx).Order("order_date DESC").Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.readable(ctx, dtos), nil
}

// readable restores the rows of a list read, logging and dropping the ones
// that fail.
func (r *GormOrderRepository) readable(ctx context.Context, dtos []OrderDTO) []*order.Order {
	orders, unreadable := toDomainList(dtos)
	for _, u := range unreadable {
		r.logger.WarnContext(ctx, "Skipping unreadable order", "order_id", u.ID.String(), "error", u.Err)
	}
	return orders
}

func (r *GormOrderRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	})
}
