package models

import "time"

// Template is a reusable, checklist-independent item set available for bulk
// import into a session's phase 2. Items are copied on import, so later
// template edits never affect past sessions.
type Template struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:100"`
	Active      bool   `gorm:"default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items []TemplateItem `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

// TemplateItem is one ordered entry in a template.
type TemplateItem struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	TemplateID     uint   `gorm:"not null;index"`
	Position       int    `gorm:"not null"`
	Category       string `gorm:"size:100"`
	Description    string `gorm:"type:text;not null"`
	ExpectedResult string `gorm:"type:text"`
	Notes          string `gorm:"type:text"`
}
