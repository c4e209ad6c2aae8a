// Package cart は会計途中のカートの純粋な計算部分。
// DBにもechoにも依存しない。usecaseがスナップショットとして永続化する。
package cart

import "errors"

// updateQuantity/removeLineで範囲外indexを指定したとき
var ErrIndexOutOfRange = errors.New("cart: index out of range")

type Modifier struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Line struct {
	ProductID    int64      `json:"product_id"`
	ProductName  string     `json:"product_name"`
	VariantName  string     `json:"variant_name,omitempty"`
	BasePrice    float64    `json:"base_price"`
	VariantPrice float64    `json:"variant_price"`
	Quantity     int64      `json:"quantity"`
	Modifiers    []Modifier `json:"modifiers"`
	Subtotal     float64    `json:"subtotal"`
}

// 単価 = 基本価格 + バリエーション差額 + トッピング合計
func (l Line) UnitPrice() float64 {
	price := l.BasePrice + l.VariantPrice
	for _, m := range l.Modifiers {
		price += m.Price
	}
	return price
}

// Cart は1担当者が進行中の会計。表示順は追加順。
type Cart struct {
	Lines        []Line `json:"lines"`
	LoyaltyPhone string `json:"loyalty_phone,omitempty"`
}

func New() *Cart {
	return &Cart{Lines: []Line{}}
}

// AddLine は明細を末尾に追加する。同じ商品でも行はまとめない。
func (c *Cart) AddLine(l Line) {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	l.Subtotal = l.UnitPrice() * float64(l.Quantity)
	c.Lines = append(c.Lines, l)
}

// UpdateQuantity は行の数量を変更する。0以下なら行を削除する。
func (c *Cart) UpdateQuantity(index int, quantity int64) error {
	if index < 0 || index >= len(c.Lines) {
		return ErrIndexOutOfRange
	}
	if quantity <= 0 {
		c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
		return nil
	}
	c.Lines[index].Quantity = quantity
	c.Lines[index].Subtotal = c.Lines[index].UnitPrice() * float64(quantity)
	return nil
}

func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.Lines) {
		return ErrIndexOutOfRange
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return nil
}

// Clear は明細とポイントカードの紐づけを消す。
// 会計成立後と明示キャンセルで呼ばれる。
func (c *Cart) Clear() {
	c.Lines = []Line{}
	c.LoyaltyPhone = ""
}

func (c *Cart) SetLoyaltyPhone(phone string) {
	c.LoyaltyPhone = phone
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.Subtotal
	}
	return sum
}

func (c *Cart) Tax(rate float64) float64 {
	return c.Subtotal() * rate
}

func (c *Cart) Total(rate float64) float64 {
	return c.Subtotal() + c.Tax(rate)
}
