package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-catalog-api/internal/apierror"
	"go-catalog-api/internal/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{service: userService}
}

// GetUsers returns all users
// GET /user
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.service.FindAll()
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(users)
}

// GetUser returns a single user by ID
// GET /user/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.service.FindByID(c.Params("id"))
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(user)
}

// CreateUser handles user creation
// POST /user
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.Respond(c, apierror.BadRequest("JSON inválido"))
	}

	user, err := h.service.Save(c.UserContext(), &req)
	if err != nil {
		return apierror.Respond(c, err)
	}

	c.Location("/user/" + user.ID)
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles user update
// PUT /user/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req service.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apierror.Respond(c, apierror.BadRequest("JSON inválido"))
	}

	user, err := h.service.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return apierror.Respond(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles user deletion
// DELETE /user/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apierror.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
