package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ShiftGormRepository struct {
	db *gorm.DB
}

func NewShiftGormRepository(db *gorm.DB) *ShiftGormRepository {
	return &ShiftGormRepository{db: db}
}

// Create は重複開局を部分uniqueインデックス違反として検知する。
// read-then-writeの事前チェックはしない（レースになるため）。
func (r *ShiftGormRepository) Create(ctx context.Context, s *model.Shift) error {
	err := r.db.WithContext(ctx).Create(s).Error
	if isUniqueViolation(err) {
		return repo.ErrConflict
	}
	return err
}

func (r *ShiftGormRepository) FindOpenByCashier(ctx context.Context, cashierID int64) (model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).
		Where("cashier_id = ? AND status = ?", cashierID, model.ShiftStatusOpen).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shift{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shift{}, err
	}
	return s, nil
}

func (r *ShiftGormRepository) FindByID(ctx context.Context, id int64) (model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shift{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shift{}, err
	}
	return s, nil
}

// Close は閉局項目だけを1行のUPDATEで書く。
func (r *ShiftGormRepository) Close(ctx context.Context, s *model.Shift) error {
	res := r.db.WithContext(ctx).Model(&model.Shift{}).
		Where("id = ? AND status = ?", s.ID, model.ShiftStatusOpen).
		Updates(map[string]interface{}{
			"end_time":      s.EndTime,
			"final_cash":    s.FinalCash,
			"expected_cash": s.ExpectedCash,
			"status":        model.ShiftStatusClosed,
			"notes":         s.Notes,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type shiftRowScan struct {
	model.Shift
	CashierName string
}

func (r *ShiftGormRepository) List(ctx context.Context, limit int) ([]repo.ShiftRow, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var rows []shiftRowScan
	err := r.db.WithContext(ctx).Model(&model.Shift{}).
		Select(`shifts.*, COALESCE(NULLIF(profiles.full_name, ''), profiles.email) AS cashier_name`).
		Joins("LEFT JOIN profiles ON profiles.id = shifts.cashier_id").
		Order("shifts.start_time desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.ShiftRow{}, err
	}

	out := make([]repo.ShiftRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, repo.ShiftRow{Shift: row.Shift, CashierName: row.CashierName})
	}
	return out, nil
}

// gormのTranslateErrorが効かないケースに備えてpg側のコードも見る。
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
