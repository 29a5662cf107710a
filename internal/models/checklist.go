package models

import "time"

// Checklist is a named, ordered set of QA items. A checklist must be
// published before sessions can be created against it.
type Checklist struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Published   bool   `gorm:"default:false;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items       []ChecklistItem `gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
	Sessions    []Session       `gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
	Validations []Validation    `gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
}

// ChecklistItem is one ordered entry in a checklist. Items are immutable
// from a session's point of view: sessions reference them, never own them.
type ChecklistItem struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	ChecklistID    uint   `gorm:"not null;index"`
	Position       int    `gorm:"not null"`
	Category       string `gorm:"size:100"`
	Description    string `gorm:"type:text;not null"`
	ExpectedResult string `gorm:"type:text"`
	Notes          string `gorm:"type:text"`
}
