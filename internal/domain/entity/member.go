package entity

import "time"

// Member is one roster entry. ID is issued externally and matched by exact string equality.
type Member struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"name"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"-"`
}
