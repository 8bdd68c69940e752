package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"prestige/internal/domain"
	"prestige/internal/errx"
	applog "prestige/internal/log"
	"prestige/internal/services"
	"prestige/internal/store"
	"prestige/internal/validate"
)

type SessionHandler struct {
	Store *store.Store
}

type userBody struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	MemberSince time.Time `json:"memberSince"`
	IsNewMember bool      `json:"isNewMember"`
}

type sessionBody struct {
	Authenticated bool         `json:"authenticated"`
	User          *userBody    `json:"user"`
	Theme         domain.Theme `json:"theme"`
	Toast         *Toast       `json:"toast,omitempty"`
}

func (h *SessionHandler) session(c *fiber.Ctx) *services.Session {
	return services.NewSession(client(c, h.Store))
}

func (h *SessionHandler) respond(c *fiber.Ctx, sess *services.Session, toast *Toast) error {
	ctx := c.UserContext()
	body := sessionBody{Theme: sess.Theme(ctx), Toast: toast}
	if u, ok := sess.CurrentUser(ctx); ok && u.IsLoggedIn {
		body.Authenticated = true
		body.User = &userBody{
			Name:        u.Name,
			Email:       u.Email,
			MemberSince: u.MemberSince,
			IsNewMember: sess.IsNewMember(ctx),
		}
	}
	return c.JSON(body)
}

func (h *SessionHandler) Get(c *fiber.Ctx) error {
	return h.respond(c, h.session(c), nil)
}

func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var form validate.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return errx.BadRequest("invalid form")
	}
	if err := validate.Struct(&form); err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return errx.BadRequest(err.Error())
	}

	sess := h.session(c)
	if _, err := sess.SignIn(c.UserContext(), form.Email, form.Password); err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "auth.login.fail", map[string]any{"email": form.Email})
			return errx.New(err, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return errx.Internal(err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": form.Email})
	return h.respond(c, sess, success("Login successful!"))
}

func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var form validate.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return errx.BadRequest("invalid form")
	}
	if form.Password != form.Confirm {
		return errx.BadRequest("Passwords do not match!")
	}
	if err := validate.Struct(&form); err != nil {
		applog.Security(c, "auth.register.fail", map[string]any{"reason": err.Error()})
		return errx.BadRequest(err.Error())
	}

	sess := h.session(c)
	if _, err := sess.Register(c.UserContext(), form.Name, form.Email, form.Password, form.Confirm); err != nil {
		if errors.Is(err, services.ErrPasswordMismatch) {
			return errx.BadRequest("Passwords do not match!")
		}
		return errx.Internal(err)
	}
	applog.Audit(c, "auth.register", map[string]any{"email": form.Email})
	return h.respond(c, sess, success("Account created successfully!"))
}

// Profile saves new name and email onto the user record.
func (h *SessionHandler) Profile(c *fiber.Ctx) error {
	var form validate.ProfileForm
	if err := c.BodyParser(&form); err != nil {
		return errx.BadRequest("invalid form")
	}
	if err := validate.Struct(&form); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "profile", "reason": err.Error()})
		return errx.BadRequest(err.Error())
	}

	sess := h.session(c)
	if _, err := sess.UpdateProfile(c.UserContext(), form.Name, form.Email); err != nil {
		return errx.Internal(err)
	}
	applog.Audit(c, "auth.profile.update", map[string]any{"email": form.Email})
	return h.respond(c, sess, success("Settings updated successfully!"))
}

func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	sess := h.session(c)
	if err := sess.SignOut(c.UserContext()); err != nil {
		return errx.Internal(err)
	}
	applog.Audit(c, "auth.logout", nil)
	return h.respond(c, sess, info("Logged out successfully"))
}

func (h *SessionHandler) Theme(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"theme": h.session(c).Theme(c.UserContext())})
}

func (h *SessionHandler) ToggleTheme(c *fiber.Ctx) error {
	next, err := h.session(c).ToggleTheme(c.UserContext())
	if err != nil {
		applog.Error(c, "theme.persist.fail", err, nil)
	}
	return c.JSON(fiber.Map{"theme": next})
}
