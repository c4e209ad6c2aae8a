package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// LoyaltyUsecase はポイントカードと特典ルールの管理。
// 会計時の加算はCheckoutUsecaseがトランザクション内で行う。
type LoyaltyUsecase struct {
	cards repo.LoyaltyCardRepository
	rules repo.LoyaltyRuleRepository
}

func NewLoyaltyUsecase(cards repo.LoyaltyCardRepository, rules repo.LoyaltyRuleRepository) *LoyaltyUsecase {
	return &LoyaltyUsecase{
		cards: cards,
		rules: rules,
	}
}

type LoyaltyCardInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
}

func (u *LoyaltyUsecase) ListCards(ctx context.Context) ([]model.LoyaltyCard, error) {
	cards, err := u.cards.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cards, nil
}

// FindCardByPhone はレジ画面の検索用。
func (u *LoyaltyUsecase) FindCardByPhone(ctx context.Context, phone string) (model.LoyaltyCard, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return model.LoyaltyCard{}, NewHTTPError(http.StatusBadRequest, "phone is required")
	}
	card, err := u.cards.FindByPhone(ctx, phone)
	if errors.Is(err, repo.ErrNotFound) {
		return model.LoyaltyCard{}, NewHTTPError(http.StatusNotFound, "loyalty card not found")
	}
	if err != nil {
		return model.LoyaltyCard{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return card, nil
}

func (u *LoyaltyUsecase) CreateCard(ctx context.Context, in LoyaltyCardInput) (model.LoyaltyCard, error) {
	if err := validateCardInput(in); err != nil {
		return model.LoyaltyCard{}, err
	}
	card := model.LoyaltyCard{
		Name:           strings.TrimSpace(in.Name),
		Email:          in.Email,
		Phone:          strings.TrimSpace(in.Phone),
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
	}
	err := u.cards.Create(ctx, &card)
	if errors.Is(err, repo.ErrConflict) {
		return model.LoyaltyCard{}, NewHTTPError(http.StatusConflict, "phone already registered")
	}
	if err != nil {
		return model.LoyaltyCard{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return card, nil
}

func (u *LoyaltyUsecase) UpdateCard(ctx context.Context, id int64, in LoyaltyCardInput) (model.LoyaltyCard, error) {
	if err := validateCardInput(in); err != nil {
		return model.LoyaltyCard{}, err
	}
	card, err := u.cards.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.LoyaltyCard{}, NewHTTPError(http.StatusNotFound, "loyalty card not found")
	}
	if err != nil {
		return model.LoyaltyCard{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//points/total_spentは会計経由でのみ動く
	card.Name = strings.TrimSpace(in.Name)
	card.Email = in.Email
	card.Phone = strings.TrimSpace(in.Phone)
	card.DocumentType = in.DocumentType
	card.DocumentNumber = in.DocumentNumber
	err = u.cards.Update(ctx, &card)
	if errors.Is(err, repo.ErrConflict) {
		return model.LoyaltyCard{}, NewHTTPError(http.StatusConflict, "phone already registered")
	}
	if err != nil {
		return model.LoyaltyCard{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return card, nil
}

func (u *LoyaltyUsecase) DeleteCard(ctx context.Context, id int64) error {
	if err := u.cards.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "loyalty card not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type LoyaltyRuleInput struct {
	Name           string  `json:"name"`
	ConditionType  string  `json:"condition_type"`
	ConditionValue float64 `json:"condition_value"`
	RewardType     string  `json:"reward_type"`
	RewardValue    string  `json:"reward_value"`
	IsActive       *bool   `json:"is_active"`
}

func (u *LoyaltyUsecase) ListRules(ctx context.Context) ([]model.LoyaltyRule, error) {
	rules, err := u.rules.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rules, nil
}

func (u *LoyaltyUsecase) CreateRule(ctx context.Context, in LoyaltyRuleInput) (model.LoyaltyRule, error) {
	if err := validateRuleInput(in); err != nil {
		return model.LoyaltyRule{}, err
	}
	rule := model.LoyaltyRule{
		Name:           strings.TrimSpace(in.Name),
		ConditionType:  in.ConditionType,
		ConditionValue: in.ConditionValue,
		RewardType:     in.RewardType,
		RewardValue:    in.RewardValue,
		IsActive:       true,
	}
	if in.IsActive != nil {
		rule.IsActive = *in.IsActive
	}
	if err := u.rules.Create(ctx, &rule); err != nil {
		return model.LoyaltyRule{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rule, nil
}

func (u *LoyaltyUsecase) UpdateRule(ctx context.Context, id int64, in LoyaltyRuleInput) (model.LoyaltyRule, error) {
	if err := validateRuleInput(in); err != nil {
		return model.LoyaltyRule{}, err
	}
	rule, err := u.rules.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.LoyaltyRule{}, NewHTTPError(http.StatusNotFound, "loyalty rule not found")
	}
	if err != nil {
		return model.LoyaltyRule{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	rule.Name = strings.TrimSpace(in.Name)
	rule.ConditionType = in.ConditionType
	rule.ConditionValue = in.ConditionValue
	rule.RewardType = in.RewardType
	rule.RewardValue = in.RewardValue
	if in.IsActive != nil {
		rule.IsActive = *in.IsActive
	}
	if err := u.rules.Update(ctx, &rule); err != nil {
		return model.LoyaltyRule{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rule, nil
}

func (u *LoyaltyUsecase) SetRuleActive(ctx context.Context, id int64, active bool) error {
	if err := u.rules.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "loyalty rule not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *LoyaltyUsecase) DeleteRule(ctx context.Context, id int64) error {
	if err := u.rules.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "loyalty rule not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateCardInput(in LoyaltyCardInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return NewHTTPError(http.StatusBadRequest, "phone is required")
	}
	return nil
}

func validateRuleInput(in LoyaltyRuleInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.ConditionType == "" || in.RewardType == "" {
		return NewHTTPError(http.StatusBadRequest, "condition_type and reward_type are required")
	}
	return nil
}
