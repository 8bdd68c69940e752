package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prestige/internal/domain"
	"prestige/internal/services"
	"prestige/internal/store"
)

func newSession() (*services.Session, *store.Store) {
	st := store.New(store.NewMemory()).Namespace("sid-session")
	return services.NewSession(st), st
}

func TestSession_GuestByDefault(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession()

	_, ok := s.CurrentUser(ctx)
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated(ctx))
	assert.False(t, s.IsNewMember(ctx))
}

func TestSession_SignInCreatesUser(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession()

	u, err := s.SignIn(ctx, "maria.santos@example.ph", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "maria.santos", u.Name)
	assert.True(t, u.IsLoggedIn)
	assert.NotEmpty(t, u.PasswordHash)
	assert.NotEqual(t, "hunter22", u.PasswordHash)

	assert.True(t, s.IsAuthenticated(ctx))
	assert.True(t, s.IsNewMember(ctx), "just joined")
}

func TestSession_SignOutThenBackIn(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession()

	first, err := s.SignIn(ctx, "ana@example.ph", "secret1")
	require.NoError(t, err)
	require.NoError(t, s.SignOut(ctx))
	assert.False(t, s.IsAuthenticated(ctx))

	_, err = s.SignIn(ctx, "ana@example.ph", "wrong")
	assert.ErrorIs(t, err, services.ErrBadCreds)
	assert.False(t, s.IsAuthenticated(ctx))

	again, err := s.SignIn(ctx, "ana@example.ph", "secret1")
	require.NoError(t, err)
	assert.True(t, again.MemberSince.Equal(first.MemberSince))
	assert.True(t, s.IsAuthenticated(ctx))
}

func TestSession_SignOutAsGuestIsNoop(t *testing.T) {
	s, _ := newSession()
	assert.NoError(t, s.SignOut(context.Background()))
}

func TestSession_Register(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession()

	_, err := s.Register(ctx, "Ana Cruz", "ana@example.ph", "abc12345", "abc1234")
	assert.ErrorIs(t, err, services.ErrPasswordMismatch)
	assert.False(t, s.IsAuthenticated(ctx))

	u, err := s.Register(ctx, "Ana Cruz", "ana@example.ph", "abc12345", "abc12345")
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", u.Name)

	cur, ok := s.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, "ana@example.ph", cur.Email)
}

func TestSession_OldRecordWithoutHashIsReplaced(t *testing.T) {
	ctx := context.Background()
	s, st := newSession()
	require.NoError(t, store.Save(ctx, st, store.UserKey, domain.User{Name: "old", Email: "old@example.ph"}))

	u, err := s.SignIn(ctx, "old@example.ph", "anything")
	require.NoError(t, err)
	assert.Equal(t, "old", u.Name)
	assert.True(t, u.IsLoggedIn)
}

func TestSession_Theme(t *testing.T) {
	ctx := context.Background()
	s, st := newSession()

	assert.Equal(t, domain.Dark, s.Theme(ctx))

	next, err := s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Light, next)
	assert.Equal(t, domain.Light, s.Theme(ctx))

	raw, ok := st.LoadRaw(ctx, store.ThemeKey)
	require.True(t, ok)
	assert.Equal(t, `"light"`, raw)

	require.NoError(t, s.SetTheme(ctx, "purple"))
	assert.Equal(t, domain.Dark, s.Theme(ctx))
}

func TestSession_ThemeAcceptsBareWord(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemory()
	require.NoError(t, b.Set(ctx, "sid-legacy/"+store.ThemeKey, "light"))

	s := services.NewSession(store.New(b).Namespace("sid-legacy"))
	assert.Equal(t, domain.Light, s.Theme(ctx))
}

func TestSession_RecordWithoutEmailStillCounts(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemory()
	since := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	require.NoError(t, b.Set(ctx, "sid-noemail/"+store.UserKey, `{"name":"a","isLoggedIn":true,"memberSince":"`+since+`"}`))

	s := services.NewSession(store.New(b).Namespace("sid-noemail"))
	u, ok := s.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, "a", u.Name)
	assert.True(t, s.IsAuthenticated(ctx))
	assert.True(t, s.IsNewMember(ctx))
}

func TestSession_MissingJoinDateIsNewMember(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemory()
	require.NoError(t, b.Set(ctx, "sid-nodate/"+store.UserKey, `{"name":"a","email":"a@example.ph","isLoggedIn":true}`))

	s := services.NewSession(store.New(b).Namespace("sid-nodate"))
	assert.True(t, s.IsAuthenticated(ctx))
	assert.True(t, s.IsNewMember(ctx))
}

func TestSession_NullRecordIsGuest(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemory()
	require.NoError(t, b.Set(ctx, "sid-null/"+store.UserKey, `null`))

	s := services.NewSession(store.New(b).Namespace("sid-null"))
	_, ok := s.CurrentUser(ctx)
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestSession_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession()

	first, err := s.SignIn(ctx, "ana@example.ph", "secret1")
	require.NoError(t, err)
	require.NoError(t, s.SignOut(ctx))

	u, err := s.UpdateProfile(ctx, " Ana Cruz ", "ana.cruz@example.ph")
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", u.Name)
	assert.Equal(t, "ana.cruz@example.ph", u.Email)
	assert.True(t, u.IsLoggedIn)
	assert.True(t, u.MemberSince.Equal(first.MemberSince))
	assert.Equal(t, first.PasswordHash, u.PasswordHash)
	assert.True(t, s.IsAuthenticated(ctx))

	// the stored password now goes with the new email
	require.NoError(t, s.SignOut(ctx))
	_, err = s.SignIn(ctx, "ana.cruz@example.ph", "wrong")
	assert.ErrorIs(t, err, services.ErrBadCreds)
}

func TestSession_UpdateProfileAsGuestCreatesRecord(t *testing.T) {
	ctx := context.Background()
	s, _ := newSession()

	u, err := s.UpdateProfile(ctx, "Ana", "ana@example.ph")
	require.NoError(t, err)
	assert.False(t, u.MemberSince.IsZero())
	assert.Empty(t, u.PasswordHash)
	assert.True(t, s.IsAuthenticated(ctx))
}
