package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile holds the editable fields shown on the profile page.
type Profile struct {
	Name        string
	Title       string
	Department  string
	Location    string
	Experience  string
	CareerGoals string
	AvatarURL   string
}

// ProfilePatch is a partial update; nil fields are left untouched.
type ProfilePatch struct {
	Name        *string
	Title       *string
	Department  *string
	Location    *string
	Experience  *string
	CareerGoals *string
	AvatarURL   *string
}

func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Title == nil && p.Department == nil && p.Location == nil &&
		p.Experience == nil && p.CareerGoals == nil && p.AvatarURL == nil
}

// Apply returns prof with every non-nil field of p written over it.
func (p ProfilePatch) Apply(prof Profile) Profile {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&prof.Name, p.Name)
	set(&prof.Title, p.Title)
	set(&prof.Department, p.Department)
	set(&prof.Location, p.Location)
	set(&prof.Experience, p.Experience)
	set(&prof.CareerGoals, p.CareerGoals)
	set(&prof.AvatarURL, p.AvatarURL)
	return prof
}
