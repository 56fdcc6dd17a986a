package models

import (
	"strings"
	"time"
)

// BloodGroups lists the accepted ABO/Rh groups in display order.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// NormalizeBloodGroup upper-cases and trims g and reports whether the result
// is one of BloodGroups.
func NormalizeBloodGroup(g string) (string, bool) {
	n := strings.ToUpper(strings.TrimSpace(g))
	for _, bg := range BloodGroups {
		if bg == n {
			return n, true
		}
	}
	return n, false
}

// Donor is a registered blood donor as persisted in the donors slot.
type Donor struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	BloodGroup   string    `json:"blood_group" yaml:"blood_group"`
	City         string    `json:"city" yaml:"city"`
	Phone        string    `json:"phone" yaml:"phone"`
	Email        string    `json:"email,omitempty" yaml:"email,omitempty"`
	Age          int       `json:"age,omitempty" yaml:"age,omitempty"`
	LastDonation string    `json:"last_donation,omitempty" yaml:"last_donation,omitempty"`
	RegisteredAt time.Time `json:"registered_at" yaml:"-"`
	RegisteredBy string    `json:"registered_by,omitempty" yaml:"-"`
}

// DonorFilter narrows a donor search. Empty fields match everything.
type DonorFilter struct {
	City       string
	BloodGroup string
}

// Matches reports whether d passes f: city is a case-insensitive substring
// match, blood group an exact match after normalization.
func (f DonorFilter) Matches(d Donor) bool {
	if city := strings.TrimSpace(f.City); city != "" {
		if !strings.Contains(strings.ToLower(d.City), strings.ToLower(city)) {
			return false
		}
	}
	if f.BloodGroup != "" {
		want, _ := NormalizeBloodGroup(f.BloodGroup)
		if d.BloodGroup != want {
			return false
		}
	}
	return true
}
