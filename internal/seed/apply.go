package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"bucketlist/internal/domain"
)

type Stats struct {
	Categories int
	Ideas      int
	// Preserved 沿用旧 usageCount 的想法数
	Preserved int
}

// Apply 事务内整体替换目录；同 ID 的想法保留 usageCount
func Apply(ctx context.Context, db *gorm.DB, f *File) (Stats, error) {
	cats, ideas := f.Build()
	var st Stats
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev []domain.LibraryIdea
		if err := tx.Select("id", "usage_count").Find(&prev).Error; err != nil {
			return fmt.Errorf("load usage counts: %w", err)
		}
		usage := make(map[string]int, len(prev))
		for _, p := range prev {
			usage[p.ID] = p.UsageCount
		}
		for i := range ideas {
			if n, ok := usage[ideas[i].ID]; ok {
				ideas[i].UsageCount = n
				st.Preserved++
			}
		}

		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.LibraryIdea{}).Error; err != nil {
			return fmt.Errorf("clear ideas: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Category{}).Error; err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}
		if len(cats) > 0 {
			if err := tx.Create(&cats).Error; err != nil {
				return fmt.Errorf("insert categories: %w", err)
			}
		}
		if len(ideas) > 0 {
			if err := tx.CreateInBatches(&ideas, 200).Error; err != nil {
				return fmt.Errorf("insert ideas: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	st.Categories, st.Ideas = len(cats), len(ideas)
	return st, nil
}
