package repo

import (
	"CycleKeeper/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// AnalysisRepository описывает операции с историей анализов.
type AnalysisRepository interface {
	// Save сохраняет анализ и вытесняет самые старые записи,
	// чтобы в истории оставалось не больше keep штук.
	Save(ctx context.Context, a *model.Analysis, keep int) error

	// Recent возвращает последние limit записей в хронологическом порядке.
	Recent(ctx context.Context, limit int) ([]model.Analysis, error)

	Count(ctx context.Context) (int64, error)

	// CountByPhase группирует записи по предсказанной фазе.
	CountByPhase(ctx context.Context) (map[string]int64, error)

	// LastCreatedAt возвращает время последней записи; nil, если история пуста.
	LastCreatedAt(ctx context.Context) (*time.Time, error)
}

type analysisRepo struct {
	db *gorm.DB
}

// NewAnalysisRepository создаёт репозиторий анализов поверх gorm.
func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Save(ctx context.Context, a *model.Analysis, keep int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if keep <= 0 {
			return nil
		}

		var n int64
		if err := tx.Model(&model.Analysis{}).Count(&n).Error; err != nil {
			return err
		}
		if n <= int64(keep) {
			return nil
		}

		var victims []string
		err := tx.Model(&model.Analysis{}).
			Order("created_at ASC").
			Limit(int(n - int64(keep))).
			Pluck("id", &victims).Error
		if err != nil {
			return err
		}
		return tx.Delete(&model.Analysis{}, "id IN ?", victims).Error
	})
}

func (r *analysisRepo) Recent(ctx context.Context, limit int) ([]model.Analysis, error) {
	var rows []model.Analysis
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	// выборка шла от новых к старым, разворачиваем в хронологию
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

func (r *analysisRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Analysis{}).Count(&n).Error
	return n, err
}

func (r *analysisRepo) CountByPhase(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Phase string
		N     int64
	}
	err := r.db.WithContext(ctx).Model(&model.Analysis{}).
		Select("predicted_phase AS phase, COUNT(*) AS n").
		Group("predicted_phase").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Phase] = row.N
	}
	return out, nil
}

func (r *analysisRepo) LastCreatedAt(ctx context.Context) (*time.Time, error) {
	var a model.Analysis
	err := r.db.WithContext(ctx).Order("created_at DESC").Take(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a.CreatedAt, nil
}
