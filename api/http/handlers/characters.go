package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/dragonball/api/http/presenter"
	"github.com/artem13815/dragonball/pkg/characters"
	"github.com/artem13815/dragonball/pkg/security/jwt"
)

type CharactersHandler struct {
	svc characters.UseCase
}

func NewCharactersHandler(svc characters.UseCase) *CharactersHandler {
	return &CharactersHandler{svc: svc}
}

// List returns a page of characters, or a name search when ?search= is set.
// @Summary List characters
// @Tags    characters
// @Produce json
// @Param   page   query int    false "page number"
// @Param   limit  query int    false "page size"
// @Param   search query string false "name search"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Security BearerAuth
// @Router  /characters [get]
func (h *CharactersHandler) List(c *fiber.Ctx) error {
	page, limit := parsePageLimit(c, 1, 10)
	search := c.Query("search")

	result := h.svc.Browse(c.Context(), page, limit, search)

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"success": true,
		"data":    result.Payload(),
		"user":    c.Locals(jwt.LocalUsername),
	})
}

// GetByID returns a single character.
// @Summary Get character by id
// @Tags    characters
// @Produce json
// @Param   id path int true "character id"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Security BearerAuth
// @Router  /characters/{id} [get]
func (h *CharactersHandler) GetByID(c *fiber.Ctx) error {
	raw := c.Params("id")
	if raw == "" {
		return presenter.JSON(c, http.StatusBadRequest, fiber.Map{
			"success": false,
			"error":   "ID del personaje requerido",
		})
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return presenter.JSON(c, http.StatusBadRequest, fiber.Map{
			"success": false,
			"error":   "ID del personaje inválido",
		})
	}

	result := h.svc.Get(c.Context(), id)
	if result.Kind == characters.KindEmpty {
		return presenter.JSON(c, http.StatusNotFound, fiber.Map{
			"success": false,
			"error":   "Personaje no encontrado",
		})
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"success": true,
		"data":    result.Payload(),
		"user":    c.Locals(jwt.LocalUsername),
	})
}
