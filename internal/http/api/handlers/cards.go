package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	relayhttp "github.com/cashvault/cashcard/internal/http"
	"github.com/cashvault/cashcard/internal/models"
	"github.com/cashvault/cashcard/internal/query"
	"github.com/cashvault/cashcard/internal/service"
)

// CardHandler handles the cash card endpoints.
type CardHandler struct {
	svc *service.CardService
}

// NewCardHandler constructs a CardHandler.
func NewCardHandler(svc *service.CardService) *CardHandler {
	return &CardHandler{svc: svc}
}

// cardRequest captures the card payload. Any id or owner fields present in
// the request body are ignored; ownership always comes from the
// authenticated principal.
type cardRequest struct {
	Amount float64 `json:"amount"`
}

// cardDTO defines the card response payload.
type cardDTO struct {
	ID     uint64  `json:"id"`
	Amount float64 `json:"amount"`
	Owner  string  `json:"owner"`
}

func toCardDTO(card *models.Card) cardDTO {
	return cardDTO{ID: card.ID, Amount: card.Amount, Owner: card.Owner}
}

// Get returns the caller's card with the requested id.
func (h *CardHandler) Get(c *gin.Context) {
	principal, ok := relayhttp.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}

	card, err := h.svc.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCardDTO(card))
}

// Create stores a new card for the caller and points at it via Location.
func (h *CardHandler) Create(c *gin.Context) {
	principal, ok := relayhttp.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}
	var body cardRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	card, err := h.svc.Create(c.Request.Context(), principal, body.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/cashcards/%d", card.ID))
	c.Status(http.StatusCreated)
}

// List returns one page of the caller's cards.
func (h *CardHandler) List(c *gin.Context) {
	principal, ok := relayhttp.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}
	var raw query.Params
	if errBind := c.ShouldBindQuery(&raw); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	cards, err := h.svc.List(c.Request.Context(), principal, raw)
	if err != nil {
		h.respondError(c, err)
		return
	}

	dtos := make([]cardDTO, 0, len(cards))
	for i := range cards {
		dtos = append(dtos, toCardDTO(&cards[i]))
	}
	c.JSON(http.StatusOK, dtos)
}

// Update replaces the amount of the caller's card.
func (h *CardHandler) Update(c *gin.Context) {
	principal, ok := relayhttp.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}
	var body cardRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if err := h.svc.Update(c.Request.Context(), principal, id, body.Amount); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes the caller's card.
func (h *CardHandler) Delete(c *gin.Context) {
	principal, ok := relayhttp.PrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
		return
	}
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid card id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), principal, id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError maps service outcomes to their HTTP status codes.
func (h *CardHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
	case isQueryError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.WithError(err).Error("card handler error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isQueryError(err error) bool {
	var qe *query.Error
	return errors.As(err, &qe)
}
