package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/gateway"
	"reclaim-market/internal/models"
	"reclaim-market/internal/util"
)

// PaymentStore is the persistence surface the payment service needs.
type PaymentStore interface {
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetMaterialByID(ctx context.Context, id int64) (*models.Material, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	MarkOrderPaid(ctx context.Context, orderID int64, gatewayOrderID, gatewayPaymentID, signature string) error
}

// Gateway creates payment orders at the external processor.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*gateway.Order, error)
	KeyID() string
}

// PaymentService creates gateway payment intents and verifies the
// signed settlement callback.
type PaymentService struct {
	store     PaymentStore
	gateway   Gateway
	publisher Publisher
	keySecret string
	currency  string
	logger    *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(store PaymentStore, gw Gateway, publisher Publisher, keySecret, currency string) *PaymentService {
	return &PaymentService{
		store:     store,
		gateway:   gw,
		publisher: publisher,
		keySecret: keySecret,
		currency:  currency,
		logger:    util.GetLogger(),
	}
}

// IntentResponse is handed to the client to open the gateway checkout.
type IntentResponse struct {
	GatewayOrderID string `json:"gateway_order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	KeyID          string `json:"key_id"`
}

// VerifyRequest is the client-submitted settlement callback.
type VerifyRequest struct {
	OrderID          int64  `json:"order_id"`
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}

// CreateIntent asks the gateway for an order covering the amount owed.
// The amount is always computed server-side from the material's base
// price; nothing client-supplied is trusted. No local state changes.
func (s *PaymentService) CreateIntent(ctx context.Context, actor *models.User, orderID int64) (*IntentResponse, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.CreateIntent")
	defer span.End()

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != actor.ID {
		return nil, apperr.Forbidden("not the buyer of this order")
	}
	if order.PaymentStatus == models.PaymentPaid {
		return nil, apperr.AlreadyPaid()
	}

	amount, err := s.orderAmount(ctx, order)
	if err != nil {
		return nil, err
	}
	amountMinor := amount.Shift(2).IntPart()

	gwOrder, err := s.gateway.CreateOrder(ctx, amountMinor, s.currency, fmt.Sprintf("order_%d", orderID))
	if err != nil {
		return nil, err
	}

	util.PaymentIntentsTotal.Inc()
	s.logger.Info("Payment intent created",
		zap.Int64("order_id", orderID),
		zap.String("gateway_order_id", gwOrder.ID),
		zap.Int64("amount_minor", amountMinor))

	return &IntentResponse{
		GatewayOrderID: gwOrder.ID,
		Amount:         amountMinor,
		Currency:       s.currency,
		KeyID:          s.gateway.KeyID(),
	}, nil
}

// Verify checks the settlement signature and marks the order paid at
// most once. The order's lifecycle state is deliberately untouched; a
// later pickup call is gated on the payment status set here.
func (s *PaymentService) Verify(ctx context.Context, req *VerifyRequest) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "PaymentService.Verify")
	defer span.End()

	if req.OrderID == 0 || req.GatewayOrderID == "" || req.GatewayPaymentID == "" || req.Signature == "" {
		util.PaymentVerifyFailedTotal.WithLabelValues("missing_fields").Inc()
		return nil, apperr.Validation("missing payment details")
	}

	order, err := s.store.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == models.PaymentPaid {
		util.PaymentVerifyFailedTotal.WithLabelValues("already_paid").Inc()
		return nil, apperr.AlreadyPaid()
	}

	if !gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature, s.keySecret) {
		util.PaymentVerifyFailedTotal.WithLabelValues("invalid_signature").Inc()
		s.logger.Warn("Payment signature mismatch", zap.Int64("order_id", req.OrderID))
		return nil, apperr.InvalidSignature()
	}

	if err := s.store.MarkOrderPaid(ctx, req.OrderID, req.GatewayOrderID, req.GatewayPaymentID, req.Signature); err != nil {
		return nil, err
	}
	order.PaymentStatus = models.PaymentPaid
	order.GatewayOrderID = req.GatewayOrderID
	order.GatewayPaymentID = req.GatewayPaymentID

	util.PaymentsVerifiedTotal.Inc()
	s.logger.Info("Payment verified",
		zap.Int64("order_id", order.ID),
		zap.String("gateway_payment_id", req.GatewayPaymentID))

	s.publishVerified(ctx, order)
	return order, nil
}

func (s *PaymentService) orderAmount(ctx context.Context, order *models.Order) (decimal.Decimal, error) {
	material, err := s.store.GetMaterialByID(ctx, order.MaterialID)
	if err != nil {
		return decimal.Zero, err
	}
	return material.BasePrice.Mul(decimal.NewFromInt(int64(order.Quantity))), nil
}

func (s *PaymentService) publishVerified(ctx context.Context, order *models.Order) {
	event := &models.PaymentVerifiedEvent{
		BaseEvent: newBaseEvent(models.EventTypePaymentVerified),
		OrderID:   order.ID,
	}
	if amount, err := s.orderAmount(ctx, order); err == nil {
		event.Amount = amount.StringFixed(2) + " " + s.currency
	}
	if buyer, err := s.store.GetUserByID(ctx, order.BuyerID); err == nil {
		event.Buyer = models.Party{Name: buyer.Name, Email: buyer.Email}
	}

	if err := s.publisher.PublishPaymentVerified(ctx, event); err != nil {
		s.logger.Error("Failed to publish PaymentVerified event",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}
}
