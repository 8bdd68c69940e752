package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"prestige/internal/errx"
	applog "prestige/internal/log"
)

const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// Toast is a transient message for the page to show. Nothing waits on it.
type Toast struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func success(msg string) *Toast { return &Toast{Type: ToastSuccess, Message: msg} }

func info(msg string) *Toast { return &Toast{Type: ToastInfo, Message: msg} }

type errorBody struct {
	Error string `json:"error"`
	Toast *Toast `json:"toast"`
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	return c.Render(tmpl, data)
}

// ErrorHandler shows a safe message: JSON with an error toast under /api, the notfound
// page elsewhere. Server errors are logged with their cause.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code >= fiber.StatusInternalServerError {
			err = errx.Internal(fe)
		} else {
			err = errx.New(fe, fe.Code, fe.Message)
		}
	}
	ae := errx.From(err)
	if ae.Status >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	c.Status(ae.Status)
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.JSON(errorBody{Error: ae.Message, Toast: &Toast{Type: ToastError, Message: ae.Message}})
	}
	if rerr := c.Render("notfound", fiber.Map{"Message": ae.Message}); rerr != nil {
		return c.SendString(ae.Message)
	}
	return nil
}
