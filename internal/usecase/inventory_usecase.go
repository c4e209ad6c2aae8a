package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// InventoryUsecase は材料在庫・仕入れ・棚卸しと仕入先の管理。
type InventoryUsecase struct {
	ingredients repo.IngredientRepository
	stockLogs   repo.StockLogRepository
	suppliers   repo.SupplierRepository
}

func NewInventoryUsecase(ingredients repo.IngredientRepository, stockLogs repo.StockLogRepository, suppliers repo.SupplierRepository) *InventoryUsecase {
	return &InventoryUsecase{
		ingredients: ingredients,
		stockLogs:   stockLogs,
		suppliers:   suppliers,
	}
}

type IngredientInput struct {
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	MinStockLevel float64 `json:"min_stock_level"`
	CostPerUnit   float64 `json:"cost_per_unit"`
	SupplierID    *int64  `json:"supplier_id"`
}

// 在庫一覧の1行。min_stock_level割れをlow_stockで返す。
type IngredientRow struct {
	model.Ingredient
	LowStock bool `json:"low_stock"`
}

type StockMovementInput struct {
	IngredientID int64   `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
	Notes        string  `json:"notes"`
}

func (u *InventoryUsecase) ListIngredients(ctx context.Context) ([]IngredientRow, error) {
	ings, err := u.ingredients.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	rows := make([]IngredientRow, 0, len(ings))
	for _, ing := range ings {
		rows = append(rows, IngredientRow{
			Ingredient: ing,
			LowStock:   ing.CurrentStock <= ing.MinStockLevel,
		})
	}
	return rows, nil
}

func (u *InventoryUsecase) CreateIngredient(ctx context.Context, in IngredientInput) (model.Ingredient, error) {
	if err := validateIngredientInput(in); err != nil {
		return model.Ingredient{}, err
	}
	ing := model.Ingredient{
		Name:          strings.TrimSpace(in.Name),
		Unit:          strings.TrimSpace(in.Unit),
		MinStockLevel: in.MinStockLevel,
		CostPerUnit:   in.CostPerUnit,
		SupplierID:    in.SupplierID,
	}
	if err := u.ingredients.Create(ctx, &ing); err != nil {
		return model.Ingredient{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ing, nil
}

func (u *InventoryUsecase) UpdateIngredient(ctx context.Context, id int64, in IngredientInput) (model.Ingredient, error) {
	if err := validateIngredientInput(in); err != nil {
		return model.Ingredient{}, err
	}
	ing, err := u.ingredients.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Ingredient{}, NewHTTPError(http.StatusNotFound, "ingredient not found")
	}
	if err != nil {
		return model.Ingredient{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//current_stockはここでは触らない（仕入れ/調整の操作だけが動かす）
	ing.Name = strings.TrimSpace(in.Name)
	ing.Unit = strings.TrimSpace(in.Unit)
	ing.MinStockLevel = in.MinStockLevel
	ing.CostPerUnit = in.CostPerUnit
	ing.SupplierID = in.SupplierID
	if err := u.ingredients.Update(ctx, &ing); err != nil {
		return model.Ingredient{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return ing, nil
}

func (u *InventoryUsecase) DeleteIngredient(ctx context.Context, id int64) error {
	if err := u.ingredients.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "ingredient not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// RegisterPurchase は仕入れ。在庫を増やし、purchaseログを残す。
func (u *InventoryUsecase) RegisterPurchase(ctx context.Context, userID int64, in StockMovementInput) error {
	if in.Quantity <= 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}
	return u.applyMovement(ctx, userID, in, model.StockChangePurchase, in.Quantity)
}

// AdjustStock は棚卸し調整。quantityは増減どちらも可（0は不可）。
func (u *InventoryUsecase) AdjustStock(ctx context.Context, userID int64, in StockMovementInput) error {
	if in.Quantity == 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must not be 0")
	}
	return u.applyMovement(ctx, userID, in, model.StockChangeAdjustment, in.Quantity)
}

func (u *InventoryUsecase) applyMovement(ctx context.Context, userID int64, in StockMovementInput, changeType model.StockChangeType, delta float64) error {
	if _, err := u.ingredients.FindByID(ctx, in.IngredientID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "ingredient not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.ingredients.AddStock(ctx, in.IngredientID, delta); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	logEntry := model.StockLog{
		IngredientID: in.IngredientID,
		ChangeType:   changeType,
		Quantity:     delta,
		Notes:        in.Notes,
		CreatedBy:    userID,
	}
	if err := u.stockLogs.Create(ctx, logEntry); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *InventoryUsecase) ListStockLogs(ctx context.Context, ingredientID int64, limit int) ([]model.StockLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var (
		logs []model.StockLog
		err  error
	)
	if ingredientID > 0 {
		logs, err = u.stockLogs.ListByIngredientID(ctx, ingredientID, limit)
	} else {
		logs, err = u.stockLogs.List(ctx, limit)
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}

type SupplierInput struct {
	Name        string `json:"name"`
	RUC         string `json:"ruc"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

func (u *InventoryUsecase) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	suppliers, err := u.suppliers.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return suppliers, nil
}

func (u *InventoryUsecase) CreateSupplier(ctx context.Context, in SupplierInput) (model.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	s := model.Supplier{
		Name:        strings.TrimSpace(in.Name),
		RUC:         in.RUC,
		ContactName: in.ContactName,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
	}
	if err := u.suppliers.Create(ctx, &s); err != nil {
		return model.Supplier{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *InventoryUsecase) UpdateSupplier(ctx context.Context, id int64, in SupplierInput) (model.Supplier, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Supplier{}, NewHTTPError(http.StatusBadRequest, "name is required")
	}
	s, err := u.suppliers.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Supplier{}, NewHTTPError(http.StatusNotFound, "supplier not found")
	}
	if err != nil {
		return model.Supplier{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	s.Name = strings.TrimSpace(in.Name)
	s.RUC = in.RUC
	s.ContactName = in.ContactName
	s.Phone = in.Phone
	s.Email = in.Email
	s.Address = in.Address
	if err := u.suppliers.Update(ctx, &s); err != nil {
		return model.Supplier{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

func (u *InventoryUsecase) DeleteSupplier(ctx context.Context, id int64) error {
	if err := u.suppliers.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "supplier not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateIngredientInput(in IngredientInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Unit) == "" {
		return NewHTTPError(http.StatusBadRequest, "unit is required")
	}
	if in.MinStockLevel < 0 || in.CostPerUnit < 0 {
		return NewHTTPError(http.StatusBadRequest, "negative values not allowed")
	}
	return nil
}
