package models

import "time"

// Session phases.
const (
	Phase1 = 1
	Phase2 = 2
)

// Phase-2 item provenance tags.
const (
	SourceManual   = "manual"
	SourceTemplate = "template"
)

// Session is one execution pass of a checklist through two gated phases:
// developer self-check (phase 1), then independent QA (phase 2).
// CurrentPhase never decreases for the life of the session.
type Session struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	ChecklistID  uint   `gorm:"not null;index"`
	Name         string `gorm:"size:255;not null"`
	CurrentPhase int    `gorm:"default:1"`
	StartedAt    time.Time
	CompletedAt  *time.Time

	Phase1StartedAt   *time.Time
	Phase1CompletedAt *time.Time
	Phase1CompletedBy string `gorm:"size:100"`
	Phase2StartedAt   *time.Time
	Phase2CompletedAt *time.Time
	Phase2CompletedBy string `gorm:"size:100"`

	Phase2Items []Phase2Item `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Validations []Validation `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// Phase2Item is an item added to a session during phase 2, either typed
// manually or copied in from a template. Positions continue the session's
// numbering and never restart.
type Phase2Item struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	SessionID      uint   `gorm:"not null;index"`
	Position       int    `gorm:"not null"`
	Category       string `gorm:"size:100"`
	Description    string `gorm:"type:text;not null"`
	ExpectedResult string `gorm:"type:text"`
	Notes          string `gorm:"type:text"`
	Source         string `gorm:"size:50"`
	TemplateID     *uint  `gorm:"index"`
	CreatedAt      time.Time

	Template *Template `gorm:"foreignKey:TemplateID;constraint:OnDelete:SET NULL"`
}
