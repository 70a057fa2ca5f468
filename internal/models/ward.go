package models

import (
	"time"

	"github.com/google/uuid"
)

// Ward is an administrative/corporate subdivision. The
// (CorporateName, WardName) pair is unique; Mohallas only grows as
// new sub-localities show up during imports.
type Ward struct {
	ID            uuid.UUID `json:"id"`
	CorporateName string    `json:"corporate_name"`
	WardName      string    `json:"ward_name"`
	Mohallas      []string  `json:"mohallas"`
	CreatedAt     time.Time `json:"created_at"`
}

// HasMohalla reports whether name is already in the ward's mohalla set.
func (w *Ward) HasMohalla(name string) bool {
	for _, m := range w.Mohallas {
		if m == name {
			return true
		}
	}
	return false
}
