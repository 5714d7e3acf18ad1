package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	GetNextValue(ctx context.Context, counterType string, counterKey string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetNextValue allocates the next sequence value for a counter, e.g.
// ("employee_number", "SMI") for surname-prefixed employee numbers.
func (r *repository) GetNextValue(ctx context.Context, counterType string, counterKey string) (int64, error) {
	var nextValue int64

	// Use raw SQL for atomic UPSERT and increment to handle concurrent allocations per type/key
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequence_counters (counter_type, counter_key, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (counter_type, counter_key) DO UPDATE
		SET last_value = sequence_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType, counterKey).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
