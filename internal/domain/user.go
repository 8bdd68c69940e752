package domain

import "time"

const NewMemberWindow = 7 * 24 * time.Hour

type User struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	IsLoggedIn   bool      `json:"isLoggedIn"`
	MemberSince  time.Time `json:"memberSince"`
	PasswordHash string    `json:"passwordHash,omitempty"`
}

// IsNewMember is derived on read; it is never stored. A record without a join date
// counts as joined just now.
func (u User) IsNewMember(now time.Time) bool {
	if u.MemberSince.IsZero() {
		return true
	}
	return now.Sub(u.MemberSince) < NewMemberWindow
}

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

const DefaultTheme = Dark

// ParseTheme maps anything unknown to the default.
func ParseTheme(s string) Theme {
	switch Theme(s) {
	case Light:
		return Light
	case Dark:
		return Dark
	default:
		return DefaultTheme
	}
}

func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}
