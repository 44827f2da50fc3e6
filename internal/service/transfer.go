package service

import (
	"memoknot/memo-api/internal/guest"
	"memoknot/memo-api/internal/model"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Transfer copies guest memos into the database under the given owner,
// keeping the original created/updated timestamps so the memo history
// survives the migration. Callers run this inside the same transaction as
// the account step (user creation or credential check follow-up), so a
// failure rolls everything back and the guest data stays untouched.
// An empty list is a no-op, not an error.
func Transfer(tx *gorm.DB, userID string, memos []guest.Memo) (int, error) {
	if len(memos) == 0 {
		return 0, nil
	}

	rows := make([]model.Memo, 0, len(memos))
	for _, m := range memos {
		id, err := gonanoid.Generate(idCharset, 16)
		if err != nil {
			return 0, err
		}

		rows = append(rows, model.Memo{
			ID:        id,
			UserID:    userID,
			Title:     m.Title,
			Content:   m.Content,
			Images:    model.StringSlice(m.Images),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}

	if err := tx.Create(&rows).Error; err != nil {
		return 0, err
	}

	zap.L().Info("Guest memos transferred",
		zap.Int("count", len(rows)),
		zap.String("userID", userID),
	)

	return len(rows), nil
}
