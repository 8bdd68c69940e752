package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"prestige/internal/domain"
	"prestige/internal/store"
)

var (
	ErrBadCreds         = errors.New("invalid email or password")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Session is the signed-in state and theme of one client. There is no server-side
// account: the user record lives in the client's own store namespace.
type Session struct {
	store *store.Store
	now   func() time.Time
}

func NewSession(s *store.Store) *Session {
	return &Session{store: s, now: time.Now}
}

// CurrentUser returns the stored record, signed in or not.
func (s *Session) CurrentUser(ctx context.Context) (domain.User, bool) {
	u := store.Load[*domain.User](ctx, s.store, store.UserKey, nil)
	if u == nil {
		return domain.User{}, false
	}
	return *u, true
}

func (s *Session) IsAuthenticated(ctx context.Context) bool {
	u, ok := s.CurrentUser(ctx)
	return ok && u.IsLoggedIn
}

func (s *Session) IsNewMember(ctx context.Context) bool {
	u, ok := s.CurrentUser(ctx)
	return ok && u.IsLoggedIn && u.IsNewMember(s.now())
}

// SignIn marks the user as signed in. A returning user with a stored password must
// supply it; anyone else gets a fresh record named after the email's local part.
func (s *Session) SignIn(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if prev, ok := s.CurrentUser(ctx); ok && strings.EqualFold(prev.Email, email) && prev.PasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(prev.PasswordHash), []byte(password)) != nil {
			return domain.User{}, ErrBadCreds
		}
		prev.IsLoggedIn = true
		return prev, s.put(ctx, prev)
	}
	return s.create(ctx, localPart(email), email, password)
}

// Register is SignIn for a new user with a chosen display name.
func (s *Session) Register(ctx context.Context, name, email, password, confirm string) (domain.User, error) {
	if password != confirm {
		return domain.User{}, ErrPasswordMismatch
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = localPart(email)
	}
	return s.create(ctx, name, strings.TrimSpace(email), password)
}

// SignOut keeps the record (and its member-since date) but marks it signed out.
func (s *Session) SignOut(ctx context.Context) error {
	u, ok := s.CurrentUser(ctx)
	if !ok {
		return nil
	}
	u.IsLoggedIn = false
	return s.put(ctx, u)
}

// UpdateProfile renames the stored user and marks it signed in, creating the record
// when there is none. The password and join date are kept.
func (s *Session) UpdateProfile(ctx context.Context, name, email string) (domain.User, error) {
	u, ok := s.CurrentUser(ctx)
	if !ok || u.MemberSince.IsZero() {
		u.MemberSince = s.now().UTC()
	}
	u.Name = strings.TrimSpace(name)
	u.Email = strings.TrimSpace(email)
	u.IsLoggedIn = true
	return u, s.put(ctx, u)
}

func (s *Session) create(ctx context.Context, name, email, password string) (domain.User, error) {
	u := domain.User{
		Name:        name,
		Email:       email,
		IsLoggedIn:  true,
		MemberSince: s.now().UTC(),
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return domain.User{}, pkgerrors.Wrap(err, "hash password")
		}
		u.PasswordHash = string(hash)
	}
	return u, s.put(ctx, u)
}

func (s *Session) put(ctx context.Context, u domain.User) error {
	return pkgerrors.Wrap(store.Save(ctx, s.store, store.UserKey, u), "persist user")
}

// Theme reads the stored preference. Older clients wrote the bare word rather than a
// JSON string, so both are accepted.
func (s *Session) Theme(ctx context.Context) domain.Theme {
	raw, ok := s.store.LoadRaw(ctx, store.ThemeKey)
	if !ok {
		return domain.DefaultTheme
	}
	var v string
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		v = raw
	}
	return domain.ParseTheme(v)
}

func (s *Session) SetTheme(ctx context.Context, t domain.Theme) error {
	return pkgerrors.Wrap(store.Save(ctx, s.store, store.ThemeKey, string(domain.ParseTheme(string(t)))), "persist theme")
}

func (s *Session) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	next := s.Theme(ctx).Toggle()
	return next, s.SetTheme(ctx, next)
}

func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
