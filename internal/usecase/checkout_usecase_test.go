package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/cart"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	txm     *TxManagerMock
	orders  *OrderRepoMock
	items   *OrderItemRepoMock
	outbox  *OutboxRepoMock
	carts   *CartRepoMock
	loyalty *LoyaltyCardRepoMock
	shifts  *ShiftRepoMock
	uc      *CheckoutUsecase
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		orders:  &OrderRepoMock{},
		items:   &OrderItemRepoMock{},
		outbox:  &OutboxRepoMock{},
		carts:   &CartRepoMock{},
		loyalty: &LoyaltyCardRepoMock{},
		shifts:  &ShiftRepoMock{},
	}
	f.txm = &TxManagerMock{Repos: &TxReposMock{
		orders:       f.orders,
		orderItems:   f.items,
		outbox:       f.outbox,
		carts:        f.carts,
		loyaltyCards: f.loyalty,
	}}
	cartUC := NewCartUsecase(f.carts, nil, 0.10)
	f.uc = NewCheckoutUsecase(f.txm, f.shifts, cartUC, 0.10)
	return f
}

// subtotal 25.00 / tax 2.50 / total 27.50 のカートを作る
func cartPayload25(t *testing.T, phone string) string {
	t.Helper()
	c := cart.New()
	c.AddLine(cart.Line{
		ProductID:    10,
		ProductName:  "Latte",
		VariantName:  "Grande",
		BasePrice:    11.50,
		VariantPrice: 0.50,
		Quantity:     2,
		Modifiers:    []cart.Modifier{{ID: 1, Name: "Extra shot", Price: 0.50}},
	})
	c.SetLoyaltyPhone(phone)
	raw, err := json.Marshal(c)
	require.NoError(t, err)
	return string(raw)
}

func (f *checkoutFixture) givenOpenShift() {
	f.shifts.On("FindOpenByCashier", mock.Anything, int64(7)).
		Return(model.Shift{ID: 3, CashierID: 7, Status: model.ShiftStatusOpen}, nil)
}

func (f *checkoutFixture) givenCart(payload string) {
	f.carts.On("FindByCashier", mock.Anything, int64(7)).
		Return(model.CartSnapshot{CashierID: 7, Payload: payload}, nil)
}

func TestPlaceOrder_CashWithChange(t *testing.T) {
	f := newCheckoutFixture()
	f.givenOpenShift()
	f.givenCart(cartPayload25(t, ""))

	f.txm.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIdempotencyKey", mock.Anything, int64(7), "key-1").
		Return(model.Order{}, false, nil)
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.CashierID == 7 &&
			o.PaymentMethod == model.PaymentCash &&
			o.Subtotal == 25.00 && o.Tax == 2.50 && o.Total == 27.50 &&
			o.AmountPaid == 30.00 && o.ChangeAmount == 2.50 &&
			o.Synced == false && o.OrderNumber != ""
	})).Return(int64(101), nil)
	f.items.On("CreateBulk", mock.Anything, int64(101), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 1 &&
			items[0].ProductNameSnapshot == "Latte" &&
			items[0].UnitPrice == 12.50 &&
			items[0].Quantity == 2 &&
			items[0].Subtotal == 25.00
	})).Return(nil)
	f.outbox.On("Create", mock.Anything, mock.MatchedBy(func(ev model.OutboxEvent) bool {
		return ev.EventType == model.EventTypeOrderCompleted &&
			ev.AggregateID == 101 && ev.ID != "" && ev.Payload != ""
	})).Return(nil)
	f.carts.On("DeleteByCashier", mock.Anything, int64(7)).Return(nil)

	out, err := f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod:  "cash",
		AmountTendered: 30.00,
		IdempotencyKey: "key-1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), out.ID)
	assert.InDelta(t, 2.50, out.ChangeAmount, 1e-9)
	assert.InDelta(t, 27.50, out.Total, 1e-9)
	assert.Len(t, out.Items, 1)
	f.orders.AssertExpectations(t)
	f.items.AssertExpectations(t)
	f.outbox.AssertExpectations(t)
	f.carts.AssertExpectations(t)
	f.loyalty.AssertNotCalled(t, "FindByPhone", mock.Anything, mock.Anything)
}

func TestPlaceOrder_ExactCashZeroChange(t *testing.T) {
	f := newCheckoutFixture()
	f.givenOpenShift()
	f.givenCart(cartPayload25(t, ""))

	f.txm.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIdempotencyKey", mock.Anything, int64(7), "key-2").
		Return(model.Order{}, false, nil)
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.AmountPaid == 27.50 && o.ChangeAmount == 0
	})).Return(int64(102), nil)
	f.items.On("CreateBulk", mock.Anything, int64(102), mock.Anything).Return(nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.carts.On("DeleteByCashier", mock.Anything, int64(7)).Return(nil)

	out, err := f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod:  "cash",
		AmountTendered: 27.50,
		IdempotencyKey: "key-2",
	})

	require.NoError(t, err)
	assert.InDelta(t, 0, out.ChangeAmount, 1e-9)
}

// 預かり不足は拒否。カートはそのまま残る。
func TestPlaceOrder_InsufficientCash(t *testing.T) {
	f := newCheckoutFixture()
	f.givenOpenShift()
	f.givenCart(cartPayload25(t, ""))

	_, err := f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod:  "cash",
		AmountTendered: 20.00,
		IdempotencyKey: "key-3",
	})

	require.Error(t, err)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	f.txm.AssertNotCalled(t, "WithinTx", mock.Anything)
	f.carts.AssertNotCalled(t, "DeleteByCashier", mock.Anything, mock.Anything)
}

func TestPlaceOrder_CardPaysTotal(t *testing.T) {
	f := newCheckoutFixture()
	f.givenOpenShift()
	f.givenCart(cartPayload25(t, ""))

	f.txm.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIdempotencyKey", mock.Anything, int64(7), "key-4").
		Return(model.Order{}, false, nil)
	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.PaymentMethod == model.PaymentCard &&
			o.AmountPaid == 27.50 && o.ChangeAmount == 0
	})).Return(int64(103), nil)
	f.items.On("CreateBulk", mock.Anything, int64(103), mock.Anything).Return(nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.carts.On("DeleteByCashier", mock.Anything, int64(7)).Return(nil)

	//カードは預かり金額を見ない
	out, err := f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod:  "card",
		AmountTendered: 0,
		IdempotencyKey: "key-4",
	})

	require.NoError(t, err)
	assert.InDelta(t, 27.50, out.AmountPaid, 1e-9)
	assert.InDelta(t, 0, out.ChangeAmount, 1e-9)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newCheckoutFixture()
	f.givenOpenShift()
	f.carts.On("FindByCashier", mock.Anything, int64(7)).
		Return(model.CartSnapshot{}, repo.ErrNotFound)

	_, err := f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod:  "cash",
		AmountTendered: 10,
		IdempotencyKey: "key-5",
	})

	require.Error(t, err)
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "cart empty", he.Message)
}

func TestPlaceOrder_NoOpenShift(t *testing.T) {
	f := newCheckoutFixture()
	f.shifts.On("FindOpenByCashier", mock.Anything, int64(7)).
		Return(model.Shift{}, repo.ErrNotFound)

	_, err := f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod:  "card",
		IdempotencyKey: "key-6",
	})

	require.Error(t, err)
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusConflict, he.Status)
	assert.Equal(t, "shift not open", he.Message)
}

// 同じidempotency keyの再送は既存の注文をそのまま返す
func TestPlaceOrder_IdempotentReplay(t *testing.T) {
	f := newCheckoutFixture()
	f.givenOpenShift()
	f.givenCart(cartPayload25(t, ""))

	existing := model.Order{
		ID:            200,
		OrderNumber:   "2026-123456",
		CashierID:     7,
		Total:         27.50,
		PaymentMethod: model.PaymentCash,
		CreatedAt:     time.Now(),
	}
	f.txm.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIdempotencyKey", mock.Anything, int64(7), "key-7").
		Return(existing, true, nil)
	f.items.On("ListByOrderID", mock.Anything, int64(200)).
		Return([]model.OrderItem{{OrderID: 200, ProductNameSnapshot: "Latte"}}, nil)

	out, err := f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod:  "cash",
		AmountTendered: 30,
		IdempotencyKey: "key-7",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(200), out.ID)
	assert.Equal(t, "2026-123456", out.OrderNumber)
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.carts.AssertNotCalled(t, "DeleteByCashier", mock.Anything, mock.Anything)
}

// ポイントカードが紐づいていれば整数通貨単位分を加算
func TestPlaceOrder_LoyaltyAccrual(t *testing.T) {
	f := newCheckoutFixture()
	f.givenOpenShift()
	f.givenCart(cartPayload25(t, "555-0100"))

	f.txm.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIdempotencyKey", mock.Anything, int64(7), "key-8").
		Return(model.Order{}, false, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(104), nil)
	f.items.On("CreateBulk", mock.Anything, int64(104), mock.Anything).Return(nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.loyalty.On("FindByPhone", mock.Anything, "555-0100").
		Return(model.LoyaltyCard{ID: 9, Phone: "555-0100"}, nil)
	f.loyalty.On("Accrue", mock.Anything, int64(9), int64(27), 27.50).Return(nil)
	f.carts.On("DeleteByCashier", mock.Anything, int64(7)).Return(nil)

	_, err := f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod:  "qr",
		IdempotencyKey: "key-8",
	})

	require.NoError(t, err)
	f.loyalty.AssertExpectations(t)
}

// カード未登録の電話番号は黙ってスキップ（会計は成立する）
func TestPlaceOrder_LoyaltyUnknownPhoneSkipped(t *testing.T) {
	f := newCheckoutFixture()
	f.givenOpenShift()
	f.givenCart(cartPayload25(t, "555-9999"))

	f.txm.On("WithinTx", mock.Anything).Return(nil)
	f.orders.On("FindByIdempotencyKey", mock.Anything, int64(7), "key-9").
		Return(model.Order{}, false, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(int64(105), nil)
	f.items.On("CreateBulk", mock.Anything, int64(105), mock.Anything).Return(nil)
	f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.loyalty.On("FindByPhone", mock.Anything, "555-9999").
		Return(model.LoyaltyCard{}, repo.ErrNotFound)
	f.carts.On("DeleteByCashier", mock.Anything, int64(7)).Return(nil)

	_, err := f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod:  "card",
		IdempotencyKey: "key-9",
	})

	require.NoError(t, err)
	f.loyalty.AssertNotCalled(t, "Accrue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceOrder_InvalidInput(t *testing.T) {
	f := newCheckoutFixture()

	_, err := f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod:  "check",
		IdempotencyKey: "key-10",
	})
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, err = f.uc.PlaceOrder(context.Background(), 7, PlaceOrderInput{
		PaymentMethod: "cash",
	})
	he, _ = AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestNewOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	n := newOrderNumber(now)
	assert.Regexp(t, `^2026-\d{6}$`, n)
}
