package domain

import "time"

// Audit is embedded in every business record; the ids point at users.id.
type Audit struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedByID int64     `json:"createdById" gorm:"not null;index"`
	UpdatedByID int64     `json:"updatedById" gorm:"not null"`
}

// Touch stamps the actor on an update.
func (a *Audit) Touch(actorID int64) {
	a.UpdatedByID = actorID
}

// Stamp sets both actors on a new record.
func (a *Audit) Stamp(actorID int64) {
	a.CreatedByID = actorID
	a.UpdatedByID = actorID
}
