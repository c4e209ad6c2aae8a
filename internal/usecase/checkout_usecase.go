package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

// CheckoutUsecase は会計確定。
// 注文ヘッダ・明細・outboxイベント・ポイント加算・カート削除を
// ひとつのトランザクションで書く（途中失敗で半端な売上を残さない）。
type CheckoutUsecase struct {
	tx      repo.TransactionManager
	shifts  repo.ShiftRepository
	cartUC  *CartUsecase
	taxRate float64
}

func NewCheckoutUsecase(tx repo.TransactionManager, shifts repo.ShiftRepository, cartUC *CartUsecase, taxRate float64) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:      tx,
		shifts:  shifts,
		cartUC:  cartUC,
		taxRate: taxRate,
	}
}

type PlaceOrderInput struct {
	PaymentMethod  string
	AmountTendered float64
	IdempotencyKey string
}

type OrderItemOutput struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	VariantName string  `json:"variant_name,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int64   `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	OrderNumber   string            `json:"order_number"`
	CashierID     int64             `json:"cashier_id"`
	Subtotal      float64           `json:"subtotal"`
	Tax           float64           `json:"tax"`
	Total         float64           `json:"total"`
	PaymentMethod string            `json:"payment_method"`
	AmountPaid    float64           `json:"amount_paid"`
	ChangeAmount  float64           `json:"change_amount"`
	LoyaltyPhone  string            `json:"loyalty_phone,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, cashierID int64, in PlaceOrderInput) (OrderOutput, error) {
	if cashierID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	method := model.PaymentMethod(in.PaymentMethod)
	switch method {
	case model.PaymentCash, model.PaymentCard, model.PaymentQR:
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	//開局中でなければ会計不可（UI任せにしない）
	_, err := u.shifts.FindOpenByCashier(ctx, cashierID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, NewHTTPError(http.StatusConflict, "shift not open")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.cartUC.load(ctx, cashierID)
	if err != nil {
		return OrderOutput{}, err
	}
	if c.IsEmpty() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	subtotal := c.Subtotal()
	tax := c.Tax(u.taxRate)
	total := c.Total(u.taxRate)

	//現金は釣り銭、カード/QRは総額ちょうど
	amountPaid := total
	var change float64
	if method == model.PaymentCash {
		if in.AmountTendered < total {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "insufficient amount tendered")
		}
		amountPaid = in.AmountTendered
		change = in.AmountTendered - total
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ注文を返す（端末の再送を二重計上しない）
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, cashierID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		now := time.Now()
		order := model.Order{
			OrderNumber:    newOrderNumber(now),
			CashierID:      cashierID,
			Subtotal:       subtotal,
			Tax:            tax,
			Total:          total,
			PaymentMethod:  method,
			AmountPaid:     amountPaid,
			ChangeAmount:   change,
			LoyaltyPhone:   c.LoyaltyPhone,
			IdempotencyKey: key,
			Synced:         false,
			CreatedAt:      now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if errors.Is(err, repo.ErrConflict) {
			//競合（同時に同じキーが入った等）はもう一度探して同じ結果を返す
			ex2, found2, err2 := r.Orders().FindByIdempotencyKey(ctx, cashierID, key)
			if err2 == nil && found2 {
				items2, err3 := r.OrderItems().ListByOrderID(ctx, ex2.ID)
				if err3 != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				out = toOrderOutput(ex2, items2)
				return nil
			}
			return NewHTTPError(http.StatusConflict, "order conflict")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		order.ID = orderID

		//明細スナップショット
		orderItems := make([]model.OrderItem, 0, len(c.Lines))
		for _, l := range c.Lines {
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           l.ProductID,
				ProductNameSnapshot: l.ProductName,
				VariantName:         l.VariantName,
				UnitPrice:           l.UnitPrice(),
				Quantity:            l.Quantity,
				Subtotal:            l.Subtotal,
				CreatedAt:           now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//未配信イベントを同じTxで積む（outboxが後で配信する）
		payload, err := json.Marshal(toOrderOutput(order, orderItems))
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		ev := model.OutboxEvent{
			ID:          uuid.NewString(),
			AggregateID: orderID,
			EventType:   model.EventTypeOrderCompleted,
			Payload:     string(payload),
			CreatedAt:   now,
		}
		if err := r.Outbox().Create(ctx, ev); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//ポイントカードが紐づいていれば加算（カード未登録なら黙ってスキップ）
		if c.LoyaltyPhone != "" {
			card, err := r.LoyaltyCards().FindByPhone(ctx, c.LoyaltyPhone)
			if err == nil {
				if err := r.LoyaltyCards().Accrue(ctx, card.ID, int64(total), total); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			} else if !errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		//成立したのでカートを消す
		if err := r.Carts().DeleteByCashier(ctx, cashierID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		//失敗時はカートを残す（やり直せる）
		return OrderOutput{}, err
	}
	return out, nil
}

// 表示用注文番号: {年}-{epochミリ秒の下6桁}。
// 一意性の本体はDBのidとidempotency key。
func newOrderNumber(now time.Time) string {
	millis := now.UnixMilli()
	return fmt.Sprintf("%d-%06d", now.Year(), millis%1000000)
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:   it.ProductID,
			Name:        it.ProductNameSnapshot,
			VariantName: it.VariantName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CashierID:     o.CashierID,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Total:         o.Total,
		PaymentMethod: string(o.PaymentMethod),
		AmountPaid:    o.AmountPaid,
		ChangeAmount:  o.ChangeAmount,
		LoyaltyPhone:  o.LoyaltyPhone,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
