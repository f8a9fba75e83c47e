package service

import (
	"context"
	"sync"
	"time"

	"reclaim-market/internal/apperr"
	"reclaim-market/internal/models"
)

// fakeStore is an in-memory stand-in for the SQL store. Conditional
// transitions mirror the store's single-statement guards.
type fakeStore struct {
	mu        sync.Mutex
	users     map[int64]*models.User
	materials map[int64]*models.Material
	orders    map[int64]*models.Order
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[int64]*models.User),
		materials: make(map[int64]*models.Material),
		orders:    make(map[int64]*models.Order),
		nextID:    1,
	}
}

func (f *fakeStore) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) addUser(u *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == 0 {
		u.ID = f.id()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addMaterial(m *models.Material) *models.Material {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.ID == 0 {
		m.ID = f.id()
	}
	f.materials[m.ID] = m
	return m
}

func (f *fakeStore) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperr.Validation("email already registered")
		}
	}
	user.ID = f.id()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("user not found: %d", id)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user not found: %s", email)
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) SetUserBlocked(ctx context.Context, id int64, blocked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return apperr.NotFound("user not found: %d", id)
	}
	u.IsBlocked = blocked
	return nil
}

func (f *fakeStore) CreateMaterial(ctx context.Context, m *models.Material) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.id()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	f.materials[m.ID] = m
	return nil
}

func (f *fakeStore) GetMaterialByID(ctx context.Context, id int64) (*models.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.materials[id]
	if !ok {
		return nil, apperr.NotFound("material not found: %d", id)
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStore) UpdateMaterial(ctx context.Context, m *models.Material) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.materials[m.ID]; !ok {
		return apperr.NotFound("material not found: %d", m.ID)
	}
	cp := *m
	f.materials[m.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteMaterial(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.materials[id]; !ok {
		return apperr.NotFound("material not found: %d", id)
	}
	delete(f.materials, id)
	return nil
}

func (f *fakeStore) ListActiveMaterials(ctx context.Context) ([]models.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Material
	for _, m := range f.materials {
		if m.Status == models.MaterialActive {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStore) ListMaterialsBySeller(ctx context.Context, sellerID int64) ([]models.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Material
	for _, m := range f.materials {
		if m.SellerID == sellerID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeStore) DecrementStock(ctx context.Context, materialID int64, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.materials[materialID]
	if !ok || m.Status != models.MaterialActive || m.Quantity < qty {
		return apperr.InsufficientStock()
	}
	m.Quantity -= qty
	if m.Quantity <= 0 {
		m.Status = models.MaterialInactive
	}
	return nil
}

func (f *fakeStore) RestockMaterial(ctx context.Context, materialID int64, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.materials[materialID]
	if !ok || m.Status == models.MaterialRemoved {
		return apperr.NotFound("material not found: %d", materialID)
	}
	m.Quantity += qty
	if m.Status == models.MaterialInactive {
		m.Status = models.MaterialActive
	}
	return nil
}

func (f *fakeStore) CreateOrder(ctx context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = f.id()
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	cp := *order
	f.orders[order.ID] = &cp
	return nil
}

func (f *fakeStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, apperr.NotFound("order not found: %d", id)
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) transition(id int64, from, to models.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return apperr.NotFound("order not found: %d", id)
	}
	if o.OrderStatus != from {
		return apperr.InvalidState("order is not in a state that allows this operation")
	}
	o.OrderStatus = to
	return nil
}

func (f *fakeStore) ApproveOrder(ctx context.Context, orderID int64) error {
	return f.transition(orderID, models.OrderPlaced, models.OrderApproved)
}

func (f *fakeStore) RejectOrder(ctx context.Context, orderID int64) error {
	if err := f.transition(orderID, models.OrderPlaced, models.OrderCancelled); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[orderID].CancelledBy = models.CancelledBySeller
	return nil
}

func (f *fakeStore) MarkOrderPickedUp(ctx context.Context, orderID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return apperr.NotFound("order not found: %d", orderID)
	}
	if o.PaymentStatus != models.PaymentPaid {
		return apperr.InvalidState("order is not in a state that allows this operation")
	}
	o.OrderStatus = models.OrderPickedUp
	return nil
}

func (f *fakeStore) CompleteOrder(ctx context.Context, orderID int64) error {
	return f.transition(orderID, models.OrderPickedUp, models.OrderCompleted)
}

func (f *fakeStore) AdminCancelOrder(ctx context.Context, orderID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return apperr.NotFound("order not found: %d", orderID)
	}
	if models.Terminal(o.OrderStatus) {
		return apperr.InvalidState("order is not in a state that allows this operation")
	}
	o.OrderStatus = models.OrderCancelled
	o.CancelledBy = models.CancelledByAdmin
	return nil
}

func (f *fakeStore) MarkOrderPaid(ctx context.Context, orderID int64, gatewayOrderID, gatewayPaymentID, signature string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return apperr.NotFound("order not found: %d", orderID)
	}
	if o.PaymentStatus == models.PaymentPaid {
		return apperr.AlreadyPaid()
	}
	o.PaymentStatus = models.PaymentPaid
	o.GatewayOrderID = gatewayOrderID
	o.GatewayPaymentID = gatewayPaymentID
	o.GatewaySignature = signature
	return nil
}

func (f *fakeStore) ListOrdersByBuyer(ctx context.Context, buyerID int64) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		if o.BuyerID == buyerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeStore) ListOrdersBySeller(ctx context.Context, sellerID int64) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		if o.SellerID == sellerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

// fakePublisher records published events.
type fakePublisher struct {
	mu         sync.Mutex
	registered []*models.UserRegisteredEvent
	orders     []*models.OrderEvent
	payments   []*models.PaymentVerifiedEvent
	err        error
}

func (f *fakePublisher) PublishUserRegistered(ctx context.Context, event *models.UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.registered = append(f.registered, event)
	return nil
}

func (f *fakePublisher) PublishOrderEvent(ctx context.Context, event *models.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, event)
	return nil
}

func (f *fakePublisher) PublishPaymentVerified(ctx context.Context, event *models.PaymentVerifiedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.payments = append(f.payments, event)
	return nil
}

func (f *fakePublisher) lastOrderEvent() *models.OrderEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.orders) == 0 {
		return nil
	}
	return f.orders[len(f.orders)-1]
}

// fakeCache is an in-memory listing cache.
type fakeCache struct {
	mu          sync.Mutex
	listing     []models.Material
	invalidated int
}

func (f *fakeCache) GetListing(ctx context.Context) ([]models.Material, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listing, nil
}

func (f *fakeCache) SetListing(ctx context.Context, materials []models.Material, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listing = materials
	return nil
}

func (f *fakeCache) InvalidateListing(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listing = nil
	f.invalidated++
	return nil
}
