package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/dragonball/api/http/presenter"
	"github.com/artem13815/dragonball/pkg/auth"
	"github.com/artem13815/dragonball/pkg/password"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	useCase auth.AuthUseCase
	log     *zap.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Username, email y password son requeridos")
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "Username, email y password son requeridos")
	}
	if !emailRe.MatchString(req.Email) {
		return presenter.Error(c, http.StatusBadRequest, "Formato de email inválido")
	}
	if res := password.Validate(req.Password); !res.IsValid {
		return presenter.ErrorWithDetails(c, http.StatusBadRequest, "Contraseña no válida", res.Errors)
	}

	result, err := h.useCase.Register(c.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			return presenter.Error(c, http.StatusConflict, "El usuario o email ya existe")
		}
		h.log.Error("register failed", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "Error interno del servidor")
	}

	return presenter.JSON(c, http.StatusCreated, fiber.Map{
		"message": "Usuario creado exitosamente",
		"user":    result.User,
		"token":   result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "Email y password son requeridos")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "Email y password son requeridos")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, "Credenciales inválidas")
		}
		h.log.Error("login failed", zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "Error interno del servidor")
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"message": "Inicio de sesión exitoso",
		"user":    result.User,
		"token":   result.Token,
	})
}

type verifyRequest struct {
	Token string `json:"token"`
}

// Verify checks a raw token and returns its user; the session controller
// uses it to hydrate state from a stored token.
// @Summary Verify token
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body verifyRequest true "token to verify"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router  /auth/verify [post]
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil || req.Token == "" {
		return presenter.JSON(c, http.StatusBadRequest, fiber.Map{
			"valid": false,
			"error": "Token requerido",
		})
	}

	user, err := h.useCase.Verify(c.Context(), req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return presenter.JSON(c, http.StatusNotFound, fiber.Map{
				"valid": false,
				"error": "Usuario no encontrado",
			})
		}
		return presenter.JSON(c, http.StatusUnauthorized, fiber.Map{
			"valid": false,
			"error": verifyErrorText(err),
		})
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"valid": true,
		"user":  user,
	})
}

func verifyErrorText(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "Token expirado"
	case errors.Is(err, auth.ErrTokenMalformed):
		return "Token malformado"
	default:
		return "Token inválido"
	}
}
