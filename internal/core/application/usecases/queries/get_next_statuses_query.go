package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetNextStatusesQueryIsNotConstructed = errors.New(
	"GetNextStatusesQuery must be created via NewGetNextStatusesQuery constructor",
)

// GetNextStatusesQuery asks which statuses an order may move to.
type GetNextStatusesQuery struct {
	orderID uuid.UUID
	guard   guard.ConstructorGuard
}

func NewGetNextStatusesQuery(orderID uuid.UUID) (GetNextStatusesQuery, error) {
	if orderID == uuid.Nil {
		return GetNextStatusesQuery{}, errs.NewValueIsRequiredError("orderId")
	}
	return GetNextStatusesQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetNextStatusesQuery) OrderID() uuid.UUID { return q.orderID }

func (q GetNextStatusesQuery) Validate() error {
	return q.guard.Validate(ErrGetNextStatusesQueryIsNotConstructed)
}

type GetNextStatusesQueryResponse struct {
	CurrentStatus order.Status
	OrderType     order.Type
	NextStatuses  []order.Status
}

type GetNextStatusesQueryHandler struct {
	db *gorm.DB
}

func NewGetNextStatusesQueryHandler(db *gorm.DB) GetNextStatusesQueryHandler {
	return GetNextStatusesQueryHandler{db: db}
}

func (h GetNextStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetNextStatusesQuery,
) (GetNextStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetNextStatusesQueryResponse{}, err
	}

	var status, orderType string
	err := h.db.WithContext(ctx).
		Raw(`SELECT status, type FROM orders WHERE id = ?`, query.OrderID()).
		Row().
		Scan(&status, &orderType)
	if errors.Is(err, sql.ErrNoRows) {
		return GetNextStatusesQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetNextStatusesQueryResponse{}, err
	}

	current := order.Status(status)
	t := order.Type(orderType)
	return GetNextStatusesQueryResponse{
		CurrentStatus: current,
		OrderType:     t,
		NextStatuses:  current.NextStatuses(t),
	}, nil
}
