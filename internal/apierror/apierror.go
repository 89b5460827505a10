package apierror

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Error carries an HTTP status and the user-facing messages for it.
// Services return these; the original cause of a storage fault stays in
// the logs and never reaches the response body.
type Error struct {
	Status   int
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Validation reports every violated field at once, one message each.
func Validation(messages []string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Messages: messages}
}

func BadRequest(message string) *Error {
	return &Error{Status: fiber.StatusBadRequest, Messages: []string{message}}
}

func NotFound(message string) *Error {
	return &Error{Status: fiber.StatusNotFound, Messages: []string{message}}
}

func Conflict(message string) *Error {
	return &Error{Status: fiber.StatusConflict, Messages: []string{message}}
}

func Internal(message string) *Error {
	return &Error{Status: fiber.StatusInternalServerError, Messages: []string{message}}
}

// Body is the wire shape shared by every failure response.
type Body struct {
	Errors []string `json:"errors"`
}

// Respond writes err as an HTTP response. Anything that is not an
// *Error is treated as an unexpected server fault and answered with a
// generic message.
func Respond(c *fiber.Ctx, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(Body{Errors: apiErr.Messages})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(Body{Errors: []string{"Erro interno do servidor"}})
}
