package repositories

import (
	"context"

	"gorm.io/gorm"
)

type groupCount struct {
	ID    string
	Count int64
}

// countGrouped counts rows of model per value of column, restricted to ids.
func countGrouped(ctx context.Context, db *gorm.DB, model any, column string, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []groupCount
	err := db.WithContext(ctx).Model(model).
		Select(column+" AS id, COUNT(*) AS count").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// likedSubset returns which of ids the user has a like row for.
func likedSubset(ctx context.Context, db *gorm.DB, model any, column, userID string, ids []string) (map[string]bool, error) {
	liked := make(map[string]bool)
	if len(ids) == 0 || userID == "" {
		return liked, nil
	}

	var hits []string
	err := db.WithContext(ctx).Model(model).
		Where("user_id = ? AND "+column+" IN ?", userID, ids).
		Pluck(column, &hits).Error
	if err != nil {
		return nil, err
	}

	for _, id := range hits {
		liked[id] = true
	}
	return liked, nil
}
