package models

import "time"

// Validation statuses.
const (
	StatusPass    = "pass"
	StatusFail    = "fail"
	StatusSkip    = "skip"
	StatusBlocked = "blocked"
)

// Validation is one immutable recorded outcome against one item in one phase
// of one session. Exactly one of ItemID and Phase2ItemID is set; the ledger
// enforces this before any write. Corrections are new records, never updates.
type Validation struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	ChecklistID   uint   `gorm:"not null;index"`
	SessionID     uint   `gorm:"not null;index"`
	Phase         int    `gorm:"not null"`
	ItemID        *uint  `gorm:"index"`
	Phase2ItemID  *uint  `gorm:"index"`
	Status        string `gorm:"size:20;not null"`
	ActualResult  string `gorm:"type:text"`
	Notes         string `gorm:"type:text"`
	ValidatorName string `gorm:"size:100"`
	ValidatedAt   time.Time
}
