package service

import (
	"context"

	"go.uber.org/zap"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/models"
	"reclaim-market/internal/util"
)

// OrderStore is the persistence surface the order service needs.
type OrderStore interface {
	GetMaterialByID(ctx context.Context, id int64) (*models.Material, error)
	DecrementStock(ctx context.Context, materialID int64, qty int) error
	RestockMaterial(ctx context.Context, materialID int64, qty int) error

	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ApproveOrder(ctx context.Context, orderID int64) error
	RejectOrder(ctx context.Context, orderID int64) error
	MarkOrderPickedUp(ctx context.Context, orderID int64) error
	CompleteOrder(ctx context.Context, orderID int64) error
	AdminCancelOrder(ctx context.Context, orderID int64) error
	ListOrdersByBuyer(ctx context.Context, buyerID int64) ([]models.Order, error)
	ListOrdersBySeller(ctx context.Context, sellerID int64) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)

	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// OrderService coordinates the order lifecycle: actor gating, inventory
// mutation, payment gating and notification dispatch.
type OrderService struct {
	store           OrderStore
	cache           ListingCache
	publisher       Publisher
	restockOnCancel bool
	logger          *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store OrderStore, cache ListingCache, publisher Publisher, restockOnCancel bool) *OrderService {
	return &OrderService{
		store:           store,
		cache:           cache,
		publisher:       publisher,
		restockOnCancel: restockOnCancel,
		logger:          util.GetLogger(),
	}
}

// CreateOrderRequest carries a buyer's claim on a material.
type CreateOrderRequest struct {
	MaterialID    int64                `json:"material_id"`
	Quantity      int                  `json:"quantity"`
	LogisticsMode models.LogisticsMode `json:"logistics_mode"`
}

// Decision values accepted by Decide.
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// Create places an order: it decrements material stock atomically and
// records the order in PLACED with payment pending. This is the only
// operation that mutates inventory.
func (s *OrderService) Create(ctx context.Context, buyer *models.User, req *CreateOrderRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Create")
	defer span.End()

	if req.Quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}
	if req.LogisticsMode == "" {
		req.LogisticsMode = models.LogisticsDirect
	}
	if !models.ValidLogisticsMode(req.LogisticsMode) {
		return nil, apperr.Validation("unknown logistics mode: %s", req.LogisticsMode)
	}

	material, err := s.store.GetMaterialByID(ctx, req.MaterialID)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("material_not_found").Inc()
		return nil, err
	}
	if material.Status != models.MaterialActive {
		util.OrdersFailedTotal.WithLabelValues("material_not_active").Inc()
		return nil, apperr.NotFound("material not available: %d", req.MaterialID)
	}
	if req.Quantity > material.Quantity {
		util.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
		return nil, apperr.InsufficientStock()
	}

	// The decrement re-checks availability in a single conditional
	// UPDATE; the read above only produces friendlier errors.
	if err := s.store.DecrementStock(ctx, material.ID, req.Quantity); err != nil {
		util.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
		return nil, err
	}

	order := &models.Order{
		BuyerID:       buyer.ID,
		SellerID:      material.SellerID,
		MaterialID:    material.ID,
		Quantity:      req.Quantity,
		LogisticsMode: req.LogisticsMode,
		OrderStatus:   models.OrderPlaced,
		PaymentStatus: models.PaymentPending,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, err
	}

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("material_id", material.ID),
		zap.Int("quantity", order.Quantity))

	s.invalidateListing(ctx)
	s.publishOrderEvent(ctx, models.EventTypeOrderPlaced, order, material.Name)

	return order, nil
}

// Decide is the seller's approve/reject call on a PLACED order.
func (s *OrderService) Decide(ctx context.Context, actor *models.User, orderID int64, action string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Decide")
	defer span.End()

	if action != DecisionApprove && action != DecisionReject {
		return nil, apperr.Validation("action must be APPROVE or REJECT")
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SellerID != actor.ID {
		return nil, apperr.Forbidden("not the seller of this order")
	}
	if order.OrderStatus != models.OrderPlaced {
		return nil, apperr.InvalidState("order is %s, only PLACED orders can be decided", order.OrderStatus)
	}

	switch action {
	case DecisionApprove:
		if err := s.store.ApproveOrder(ctx, orderID); err != nil {
			return nil, err
		}
		order.OrderStatus = models.OrderApproved
		util.OrdersApprovedTotal.Inc()
		s.publishOrderEvent(ctx, models.EventTypeOrderApproved, order, "")

	case DecisionReject:
		if err := s.store.RejectOrder(ctx, orderID); err != nil {
			return nil, err
		}
		order.OrderStatus = models.OrderCancelled
		order.CancelledBy = models.CancelledBySeller
		util.OrdersRejectedTotal.Inc()
		util.OrdersCancelledTotal.WithLabelValues("seller").Inc()
		s.restock(ctx, order)
		s.publishOrderEvent(ctx, models.EventTypeOrderRejected, order, "")
	}

	s.logger.Info("Order decided",
		zap.Int64("order_id", orderID),
		zap.String("action", action))

	return order, nil
}

// MarkPickedUp flags an order as shipped. The gate is a verified
// payment, not the lifecycle state.
func (s *OrderService) MarkPickedUp(ctx context.Context, actor *models.User, orderID int64) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.MarkPickedUp")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SellerID != actor.ID {
		return nil, apperr.Forbidden("not the seller of this order")
	}
	if order.PaymentStatus != models.PaymentPaid {
		return nil, apperr.InvalidState("payment has not been verified for this order")
	}

	if err := s.store.MarkOrderPickedUp(ctx, orderID); err != nil {
		return nil, err
	}
	order.OrderStatus = models.OrderPickedUp

	util.OrdersPickedUpTotal.Inc()
	s.publishOrderEvent(ctx, models.EventTypeOrderPickedUp, order, "")

	return order, nil
}

// Complete is the buyer's delivery confirmation on a PICKED_UP order.
func (s *OrderService) Complete(ctx context.Context, actor *models.User, orderID int64) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Complete")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != actor.ID {
		return nil, apperr.Forbidden("not the buyer of this order")
	}
	if order.OrderStatus != models.OrderPickedUp {
		return nil, apperr.InvalidState("order is %s, only PICKED_UP orders can be completed", order.OrderStatus)
	}

	if err := s.store.CompleteOrder(ctx, orderID); err != nil {
		return nil, err
	}
	order.OrderStatus = models.OrderCompleted

	util.OrdersCompletedTotal.Inc()
	s.publishOrderEvent(ctx, models.EventTypeOrderCompleted, order, "")

	return order, nil
}

// AdminCancel force-cancels any non-terminal order. Role gating happens
// at the route; this only checks the lifecycle state.
func (s *OrderService) AdminCancel(ctx context.Context, orderID int64) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.AdminCancel")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if models.Terminal(order.OrderStatus) {
		return nil, apperr.InvalidState("order is already %s", order.OrderStatus)
	}

	if err := s.store.AdminCancelOrder(ctx, orderID); err != nil {
		return nil, err
	}
	order.OrderStatus = models.OrderCancelled
	order.CancelledBy = models.CancelledByAdmin

	util.OrdersCancelledTotal.WithLabelValues("admin").Inc()
	s.restock(ctx, order)
	s.publishOrderEvent(ctx, models.EventTypeOrderCancelled, order, "")

	s.logger.Info("Order cancelled by admin", zap.Int64("order_id", orderID))
	return order, nil
}

// MyBuys returns the buyer's orders.
func (s *OrderService) MyBuys(ctx context.Context, buyer *models.User) ([]models.Order, error) {
	return s.store.ListOrdersByBuyer(ctx, buyer.ID)
}

// MySells returns the seller's orders.
func (s *OrderService) MySells(ctx context.Context, seller *models.User) ([]models.Order, error) {
	return s.store.ListOrdersBySeller(ctx, seller.ID)
}

// All returns every order for the admin view.
func (s *OrderService) All(ctx context.Context) ([]models.Order, error) {
	return s.store.ListAllOrders(ctx)
}

// restock optionally returns a cancelled order's quantity to the
// material. The historical behavior is to keep the decrement, so this
// is off unless configured on.
func (s *OrderService) restock(ctx context.Context, order *models.Order) {
	if !s.restockOnCancel {
		return
	}
	if err := s.store.RestockMaterial(ctx, order.MaterialID, order.Quantity); err != nil {
		s.logger.Error("Failed to restock material after cancellation",
			zap.Int64("order_id", order.ID),
			zap.Int64("material_id", order.MaterialID),
			zap.Error(err))
		return
	}
	s.invalidateListing(ctx)
}

func (s *OrderService) invalidateListing(ctx context.Context) {
	if err := s.cache.InvalidateListing(ctx); err != nil {
		s.logger.Warn("Listing cache invalidation failed", zap.Error(err))
	}
}

// publishOrderEvent assembles and publishes a lifecycle notification.
// Failures are logged and swallowed: notifications never roll back a
// transition.
func (s *OrderService) publishOrderEvent(ctx context.Context, eventType string, order *models.Order, materialName string) {
	if materialName == "" {
		if material, err := s.store.GetMaterialByID(ctx, order.MaterialID); err == nil {
			materialName = material.Name
		}
	}

	event := &models.OrderEvent{
		BaseEvent:    newBaseEvent(eventType),
		OrderID:      order.ID,
		MaterialName: materialName,
		CancelledBy:  order.CancelledBy,
	}

	if buyer, err := s.store.GetUserByID(ctx, order.BuyerID); err == nil {
		event.Buyer = models.Party{Name: buyer.Name, Email: buyer.Email}
	} else {
		s.logger.Warn("Failed to resolve buyer for notification", zap.Error(err))
	}
	if seller, err := s.store.GetUserByID(ctx, order.SellerID); err == nil {
		event.Seller = models.Party{Name: seller.Name, Email: seller.Email}
	} else {
		s.logger.Warn("Failed to resolve seller for notification", zap.Error(err))
	}

	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish order event",
			zap.String("event_type", eventType),
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}
}
