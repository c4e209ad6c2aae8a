package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/domain/cart"
	repo "app/internal/repository"
)

// CartUsecase は会計途中のカート操作。
// カート本体は internal/domain/cart の純粋な値で、
// ここではスナップショット1行として担当者ごとに永続化する。
// 端末をリロードしても進行中のカートが復元される。
type CartUsecase struct {
	carts    repo.CartRepository
	products repo.ProductRepository
	taxRate  float64
}

func NewCartUsecase(carts repo.CartRepository, products repo.ProductRepository, taxRate float64) *CartUsecase {
	return &CartUsecase{
		carts:    carts,
		products: products,
		taxRate:  taxRate,
	}
}

type CartModifierInput struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type AddLineInput struct {
	ProductID    int64
	VariantName  string
	VariantPrice float64
	Quantity     int64
	Modifiers    []CartModifierInput
}

type CartLineResponse struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	VariantName string  `json:"variant_name,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int64   `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type CartResponse struct {
	Lines        []CartLineResponse `json:"lines"`
	LoyaltyPhone string             `json:"loyalty_phone,omitempty"`
	Subtotal     float64            `json:"subtotal"`
	Tax          float64            `json:"tax"`
	Total        float64            `json:"total"`
}

func (u *CartUsecase) GetCart(ctx context.Context, cashierID int64) (CartResponse, error) {
	if cashierID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	c, err := u.load(ctx, cashierID)
	if err != nil {
		return CartResponse{}, err
	}
	return u.toResponse(c), nil
}

// AddLine は商品マスタから価格と名前を引いて明細を追加する。
// 同じ商品を2回追加しても行はまとめない。
func (u *CartUsecase) AddLine(ctx context.Context, cashierID int64, in AddLineInput) (CartResponse, error) {
	if cashierID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	p, err := u.products.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}

	c, err := u.load(ctx, cashierID)
	if err != nil {
		return CartResponse{}, err
	}

	mods := make([]cart.Modifier, 0, len(in.Modifiers))
	for _, m := range in.Modifiers {
		mods = append(mods, cart.Modifier{ID: m.ID, Name: m.Name, Price: m.Price})
	}

	c.AddLine(cart.Line{
		ProductID:    p.ID,
		ProductName:  p.Name,
		VariantName:  in.VariantName,
		BasePrice:    p.BasePrice,
		VariantPrice: in.VariantPrice,
		Quantity:     in.Quantity,
		Modifiers:    mods,
	})

	if err := u.save(ctx, cashierID, c); err != nil {
		return CartResponse{}, err
	}
	return u.toResponse(c), nil
}

// UpdateQuantity は数量変更。0以下で行削除。範囲外indexは400。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, cashierID int64, index int, quantity int64) (CartResponse, error) {
	if cashierID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	c, err := u.load(ctx, cashierID)
	if err != nil {
		return CartResponse{}, err
	}

	if err := c.UpdateQuantity(index, quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "index out of range")
	}

	if err := u.save(ctx, cashierID, c); err != nil {
		return CartResponse{}, err
	}
	return u.toResponse(c), nil
}

func (u *CartUsecase) RemoveLine(ctx context.Context, cashierID int64, index int) (CartResponse, error) {
	if cashierID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	c, err := u.load(ctx, cashierID)
	if err != nil {
		return CartResponse{}, err
	}

	if err := c.RemoveLine(index); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "index out of range")
	}

	if err := u.save(ctx, cashierID, c); err != nil {
		return CartResponse{}, err
	}
	return u.toResponse(c), nil
}

// ClearCart は明示キャンセル。スナップショットごと消す。
func (u *CartUsecase) ClearCart(ctx context.Context, cashierID int64) error {
	if cashierID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.carts.DeleteByCashier(ctx, cashierID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CartUsecase) SetLoyaltyPhone(ctx context.Context, cashierID int64, phone string) (CartResponse, error) {
	if cashierID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	c, err := u.load(ctx, cashierID)
	if err != nil {
		return CartResponse{}, err
	}

	c.SetLoyaltyPhone(phone)

	if err := u.save(ctx, cashierID, c); err != nil {
		return CartResponse{}, err
	}
	return u.toResponse(c), nil
}

// load はスナップショットを復元する。無ければ空カート。
func (u *CartUsecase) load(ctx context.Context, cashierID int64) (*cart.Cart, error) {
	snap, err := u.carts.FindByCashier(ctx, cashierID)
	if errors.Is(err, repo.ErrNotFound) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c := cart.New()
	if err := json.Unmarshal([]byte(snap.Payload), c); err != nil {
		//壊れたスナップショットは捨てて空から始める
		return cart.New(), nil
	}
	return c, nil
}

func (u *CartUsecase) save(ctx context.Context, cashierID int64, c *cart.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := u.carts.Save(ctx, cashierID, string(raw)); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *CartUsecase) toResponse(c *cart.Cart) CartResponse {
	lines := make([]CartLineResponse, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, CartLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			VariantName: l.VariantName,
			UnitPrice:   l.UnitPrice(),
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal,
		})
	}

	return CartResponse{
		Lines:        lines,
		LoyaltyPhone: c.LoyaltyPhone,
		Subtotal:     c.Subtotal(),
		Tax:          c.Tax(u.taxRate),
		Total:        c.Total(u.taxRate),
	}
}
