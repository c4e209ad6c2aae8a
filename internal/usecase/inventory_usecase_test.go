package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterPurchase(t *testing.T) {
	ingredients := &IngredientRepoMock{}
	stockLogs := &StockLogRepoMock{}
	uc := NewInventoryUsecase(ingredients, stockLogs, nil)

	ingredients.On("FindByID", mock.Anything, int64(3)).
		Return(model.Ingredient{ID: 3, Name: "Café en grano", Unit: "kg"}, nil)
	ingredients.On("AddStock", mock.Anything, int64(3), 5.0).Return(nil)
	stockLogs.On("Create", mock.Anything, mock.MatchedBy(func(l model.StockLog) bool {
		return l.IngredientID == 3 &&
			l.ChangeType == model.StockChangePurchase &&
			l.Quantity == 5.0 &&
			l.CreatedBy == 7
	})).Return(nil)

	err := uc.RegisterPurchase(context.Background(), 7, StockMovementInput{
		IngredientID: 3, Quantity: 5.0, Notes: "entrega semanal",
	})

	require.NoError(t, err)
	ingredients.AssertExpectations(t)
	stockLogs.AssertExpectations(t)
}

func TestRegisterPurchase_NonPositiveQuantity(t *testing.T) {
	uc := NewInventoryUsecase(&IngredientRepoMock{}, &StockLogRepoMock{}, nil)

	err := uc.RegisterPurchase(context.Background(), 7, StockMovementInput{
		IngredientID: 3, Quantity: -1,
	})

	require.Error(t, err)
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestAdjustStock_NegativeDelta(t *testing.T) {
	ingredients := &IngredientRepoMock{}
	stockLogs := &StockLogRepoMock{}
	uc := NewInventoryUsecase(ingredients, stockLogs, nil)

	ingredients.On("FindByID", mock.Anything, int64(3)).
		Return(model.Ingredient{ID: 3}, nil)
	ingredients.On("AddStock", mock.Anything, int64(3), -2.5).Return(nil)
	stockLogs.On("Create", mock.Anything, mock.MatchedBy(func(l model.StockLog) bool {
		return l.ChangeType == model.StockChangeAdjustment && l.Quantity == -2.5
	})).Return(nil)

	err := uc.AdjustStock(context.Background(), 7, StockMovementInput{
		IngredientID: 3, Quantity: -2.5, Notes: "merma",
	})

	require.NoError(t, err)
	stockLogs.AssertExpectations(t)
}

func TestAdjustStock_ZeroQuantity(t *testing.T) {
	uc := NewInventoryUsecase(&IngredientRepoMock{}, &StockLogRepoMock{}, nil)

	err := uc.AdjustStock(context.Background(), 7, StockMovementInput{IngredientID: 3})

	require.Error(t, err)
	he, _ := AsHTTPError(err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestListIngredients_LowStockFlag(t *testing.T) {
	ingredients := &IngredientRepoMock{}
	uc := NewInventoryUsecase(ingredients, &StockLogRepoMock{}, nil)

	ingredients.On("List", mock.Anything).Return([]model.Ingredient{
		{ID: 1, Name: "Leche", CurrentStock: 2, MinStockLevel: 5},
		{ID: 2, Name: "Azúcar", CurrentStock: 5, MinStockLevel: 5},
		{ID: 3, Name: "Café en grano", CurrentStock: 10, MinStockLevel: 5},
	}, nil)

	rows, err := uc.ListIngredients(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].LowStock)
	//境界値（ちょうどmin）もlow扱い
	assert.True(t, rows[1].LowStock)
	assert.False(t, rows[2].LowStock)
}
