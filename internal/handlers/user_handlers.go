package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/xperttutor/user-service/internal/models"
	"github.com/xperttutor/user-service/internal/repository"
	"github.com/xperttutor/user-service/internal/services"
)

type Handler struct {
	users     *services.UserService
	referrals *services.ReferralService
	tokens    *services.TokenService
	log       *zap.Logger
}

func NewHandler(users *services.UserService, referrals *services.ReferralService, tokens *services.TokenService, log *zap.Logger) *Handler {
	return &Handler{users: users, referrals: referrals, tokens: tokens, log: log}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenPayload mirrors the claims embedded in the issued token.
type tokenPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	ID       string `json:"id"`
}

// Register creates a new account and returns a bearer token for it.
func (h *Handler) Register(c *fiber.Ctx) error {
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body", "success": false})
	}

	u, err := h.users.Register(c.Context(), in)
	if err != nil {
		var ve services.ValidationErrors
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ve})
		}
		h.log.Warn("registration failed", zap.String("username", in.Username), zap.Error(err))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error(), "success": false})
	}

	return h.respondWithToken(c, u)
}

// Login verifies username/password and returns a bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body", "success": false})
	}
	var fieldErrs []fiber.Map
	if req.Username == "" {
		fieldErrs = append(fieldErrs, fiber.Map{"field": "username", "message": "Username is required"})
	}
	if len(req.Password) < 6 {
		fieldErrs = append(fieldErrs, fiber.Map{"field": "password", "message": "Password must contain at least six characters"})
	}
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fieldErrs})
	}

	u, err := h.users.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Username not found", "success": false})
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Incorrect password", "success": false})
		}
		h.log.Error("login failed", zap.String("username", req.Username), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error(), "success": false})
	}

	return h.respondWithToken(c, u)
}

// Profile returns the authenticated user's public profile.
func (h *Handler) Profile(c *fiber.Ctx) error {
	u, ok := c.Locals("user").(*models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthenticated", "success": false})
	}
	return c.Status(fiber.StatusOK).JSON(models.Serialize(u))
}

// UpdateProfile merges partial profile fields into the record.
func (h *Handler) UpdateProfile(c *fiber.Ctx) error {
	var in services.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body", "success": false})
	}

	u, err := h.users.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		h.log.Error("profile update failed", zap.String("id", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Profile not updated",
			"success": false,
			"err":     err.Error(),
		})
	}

	return c.Status(fiber.StatusNonAuthoritativeInformation).JSON(fiber.Map{
		"message":     "Profile updated successfully",
		"success":     true,
		"updatedUser": models.Serialize(u),
	})
}

// LinkReferral merges partial fields like UpdateProfile, then links the user
// into its referring parent's children list. The profile merge lands before
// the dedup check, so an already-linked user still gets its fields updated.
func (h *Handler) LinkReferral(c *fiber.Ctx) error {
	var in services.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid body", "success": false})
	}

	id := c.Params("id")
	u, err := h.users.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		h.log.Error("referral update failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Profile not updated",
			"success": false,
			"err":     err.Error(),
		})
	}

	code := u.OnboardCode
	if in.OnboardCode != nil {
		code = *in.OnboardCode
	}
	switch err := h.referrals.Link(c.Context(), id, code); {
	case errors.Is(err, services.ErrAlreadyLinked):
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": "already added in child array",
			"success": true,
		})
	case errors.Is(err, services.ErrInvalidReferralCode):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Refer code not valid",
			"success": false,
		})
	case err != nil:
		h.log.Error("referral link failed", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Profile not updated",
			"success": false,
			"err":     err.Error(),
		})
	}

	return c.Status(fiber.StatusNonAuthoritativeInformation).JSON(fiber.Map{
		"message":     "Profile updated successfully",
		"success":     true,
		"updatedUser": models.Serialize(u),
	})
}

func (h *Handler) respondWithToken(c *fiber.Ctx, u *models.User) error {
	payload := tokenPayload{Username: u.Username, Email: u.Email, ID: u.ID.Hex()}
	token, err := h.tokens.Issue(payload.Username, payload.Email, payload.ID)
	if err != nil {
		h.log.Error("token issue failed", zap.String("username", u.Username), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error(), "success": false})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"payload": payload,
		"success": true,
	})
}
