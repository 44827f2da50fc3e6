// Package model defines database models
package model

type Memo struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"index;not null" json:"-"`

	Title   string      `gorm:"size:100;not null" json:"title"`
	Content string      `gorm:"size:10000;not null" json:"content"`
	Images  StringSlice `json:"images"`

	// Unix millisecond timestamps. Managed by the service layer instead of
	// gorm so that imported guest memos keep their original history.
	CreatedAt int64 `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt int64 `gorm:"not null;index;autoUpdateTime:false" json:"updated_at"`
}
