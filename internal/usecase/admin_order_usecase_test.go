package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	inventory  repo.InventoryRepository

	// AdminOrderUsecase では使わないが TxRepos interface を満たすために保持
	merchandise    repo.MerchandiseRepository
	projects       repo.ProjectRepository
	moderationLogs repo.ModerationLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository                 { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository         { return r.orderItems }
func (r *TxReposMock) Inventory() repo.InventoryRepository          { return r.inventory }
func (r *TxReposMock) Merchandise() repo.MerchandiseRepository      { return r.merchandise }
func (r *TxReposMock) Projects() repo.ProjectRepository             { return r.projects }
func (r *TxReposMock) ModerationLogs() repo.ModerationLogRepository { return r.moderationLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	os, _ := args.Get(0).([]model.Order)
	total, _ := args.Get(1).(int64)
	return os, total, args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) SetHidden(ctx context.Context, orderID int64, hidden bool) error {
	args := m.Called(ctx, orderID, hidden)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	os, _ := args.Get(0).([]model.Order)
	total, _ := args.Get(1).(int64)
	return os, total, args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, merchandiseID int64, qty int64) (bool, error) {
	args := m.Called(ctx, merchandiseID, qty)
	ok, _ := args.Get(0).(bool)
	return ok, args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, merchandiseID int64, qty int64) error {
	args := m.Called(ctx, merchandiseID, qty)
	return args.Error(0)
}

func newAdminOrderUsecase(orders *OrderRepoMock, items *OrderItemRepoMock, inv *InventoryRepoMock) (*usecase.AdminOrderUsecase, *TxManagerMock) {
	tm := &TxManagerMock{Repos: &TxReposMock{
		orders:     orders,
		orderItems: items,
		inventory:  inv,
	}}
	tm.On("WithinTx", mock.Anything).Return(nil)
	return usecase.NewAdminOrderUsecase(tm), tm
}

func TestAdminUpdateStatus_CompletedDoesNotTouchStock(t *testing.T) {
	orders := &OrderRepoMock{}
	items := &OrderItemRepoMock{}
	inv := &InventoryRepoMock{}
	uc, _ := newAdminOrderUsecase(orders, items, inv)

	orders.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, Status: model.OrderStatusPending}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusCompleted).
		Return(nil)

	err := uc.UpdateStatus(ctxTODO(), 1, 10, usecase.AdminUpdateOrderStatusInput{Status: "completed"})
	require.NoError(t, err)

	orders.AssertExpectations(t)
	inv.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_CancelledRestoresStockPerLine(t *testing.T) {
	orders := &OrderRepoMock{}
	items := &OrderItemRepoMock{}
	inv := &InventoryRepoMock{}
	uc, _ := newAdminOrderUsecase(orders, items, inv)

	orders.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, Status: model.OrderStatusPending}, nil)
	items.On("ListByOrderID", mock.Anything, int64(10)).
		Return([]model.OrderItem{
			{MerchandiseID: 1, Quantity: 2},
			{MerchandiseID: 2, Quantity: 1},
		}, nil)
	inv.On("IncreaseStock", mock.Anything, int64(1), int64(2)).Return(nil)
	inv.On("IncreaseStock", mock.Anything, int64(2), int64(1)).Return(nil)
	orders.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusCancelled).
		Return(nil)

	err := uc.UpdateStatus(ctxTODO(), 1, 10, usecase.AdminUpdateOrderStatusInput{Status: "cancelled"})
	require.NoError(t, err)

	orders.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestAdminUpdateStatus_SameStatusIsNoop(t *testing.T) {
	orders := &OrderRepoMock{}
	items := &OrderItemRepoMock{}
	inv := &InventoryRepoMock{}
	uc, _ := newAdminOrderUsecase(orders, items, inv)

	orders.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, Status: model.OrderStatusCancelled}, nil)

	//cancelled → cancelled は何もしないで成功
	err := uc.UpdateStatus(ctxTODO(), 1, 10, usecase.AdminUpdateOrderStatusInput{Status: "cancelled"})
	require.NoError(t, err)

	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	inv.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_FinalStatusCannotMove(t *testing.T) {
	orders := &OrderRepoMock{}
	items := &OrderItemRepoMock{}
	inv := &InventoryRepoMock{}
	uc, _ := newAdminOrderUsecase(orders, items, inv)

	orders.On("FindByID", mock.Anything, int64(10)).
		Return(model.Order{ID: 10, Status: model.OrderStatusCompleted}, nil)

	//completed → cancelled は終端なので400
	err := uc.UpdateStatus(ctxTODO(), 1, 10, usecase.AdminUpdateOrderStatusInput{Status: "cancelled"})
	requireHTTPStatus(t, err, http.StatusBadRequest)

	inv.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	orders := &OrderRepoMock{}
	items := &OrderItemRepoMock{}
	inv := &InventoryRepoMock{}
	uc, _ := newAdminOrderUsecase(orders, items, inv)

	//pendingへ戻す操作は無い
	err := uc.UpdateStatus(ctxTODO(), 1, 10, usecase.AdminUpdateOrderStatusInput{Status: "pending"})
	requireHTTPStatus(t, err, http.StatusBadRequest)

	err = uc.UpdateStatus(ctxTODO(), 1, 10, usecase.AdminUpdateOrderStatusInput{Status: "shipped"})
	requireHTTPStatus(t, err, http.StatusBadRequest)

	orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAdminList_ValidatesPaging(t *testing.T) {
	orders := &OrderRepoMock{}
	items := &OrderItemRepoMock{}
	inv := &InventoryRepoMock{}
	uc, _ := newAdminOrderUsecase(orders, items, inv)

	_, err := uc.List(ctxTODO(), repo.AdminOrderListFilter{Page: 0, Limit: 10})
	requireHTTPStatus(t, err, http.StatusBadRequest)

	_, err = uc.List(ctxTODO(), repo.AdminOrderListFilter{Page: 1, Limit: 1000})
	requireHTTPStatus(t, err, http.StatusBadRequest)
}

func TestAdminList_ReturnsOrdersWithItems(t *testing.T) {
	orders := &OrderRepoMock{}
	items := &OrderItemRepoMock{}
	inv := &InventoryRepoMock{}
	uc, _ := newAdminOrderUsecase(orders, items, inv)

	f := repo.AdminOrderListFilter{Page: 1, Limit: 10, Status: "pending"}
	orders.On("ListAdmin", mock.Anything, f).
		Return([]model.Order{{ID: 1, Status: model.OrderStatusPending, Amount: 500}}, int64(42), nil)
	items.On("ListByOrderID", mock.Anything, int64(1)).
		Return([]model.OrderItem{{MerchandiseID: 3, Quantity: 1, UnitPriceSnapshot: 500}}, nil)

	out, err := uc.List(ctxTODO(), f)
	require.NoError(t, err)
	require.Len(t, out.Orders, 1)
	assert.Equal(t, int64(500), out.Orders[0].Amount)
	require.Len(t, out.Orders[0].Items, 1)
	assert.Equal(t, int64(500), out.Orders[0].Items[0].UnitPrice)

	// 件数とページはそのまま返る
	assert.Equal(t, int64(42), out.Total)
	assert.Equal(t, 1, out.Page)
}
