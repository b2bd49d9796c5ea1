package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/domain"
	"github.com/cyberbirth/cyberbirth-backend/internal/logging"
	"github.com/cyberbirth/cyberbirth-backend/internal/wishes"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateBirthday stores a new record
func (h *Handler) CreateBirthday(c *gin.Context) {
	var body createBirthdayBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.svc.Create(c.Request.Context(), domain.CreateBirthdayRequest{
		Name:         body.Name,
		Date:         body.Date,
		Relationship: body.Relationship,
	})
	if err != nil {
		if domain.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logging.FromContext(c.Request.Context()).Error("create birthday", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save birthday"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"birthday": b})
}

// ListBirthdays returns all records ordered by days remaining
func (h *Handler) ListBirthdays(c *gin.Context) {
	entries := h.svc.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"birthdays": entries, "count": len(entries)})
}

// GetBirthday returns one record with its next occurrence
func (h *Handler) GetBirthday(c *gin.Context) {
	entry, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrBirthdayNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "birthday not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get birthday"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteBirthday removes every record with the given id
func (h *Handler) DeleteBirthday(c *gin.Context) {
	removed, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrBirthdayNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "birthday not found"})
			return
		}
		logging.FromContext(c.Request.Context()).Error("delete birthday", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete birthday"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Stats returns collection counters
func (h *Handler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats(c.Request.Context()))
}

// GenerateWish produces a greeting for a stored record. An empty body
// uses the default tone.
func (h *Handler) GenerateWish(c *gin.Context) {
	var body wishBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tone, err := wishes.ParseTone(body.Tone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.GenerateWish(c.Request.Context(), c.Param("id"), tone)
	if err != nil {
		if errors.Is(err, domain.ErrBirthdayNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "birthday not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate wish"})
		return
	}

	c.JSON(http.StatusOK, wishResponse{Wish: res})
}

// GenerateDirectWish produces a greeting for ad-hoc parameters
func (h *Handler) GenerateDirectWish(c *gin.Context) {
	var body directWishBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrNameRequired.Error()})
		return
	}

	tone, err := wishes.ParseTone(body.Tone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	relationship := strings.TrimSpace(body.Relationship)
	if relationship == "" {
		relationship = domain.DefaultRelationship
	}

	res := h.wishes.GenerateWish(c.Request.Context(), wishes.Params{
		Name:         strings.TrimSpace(body.Name),
		Age:          body.Age,
		Relationship: relationship,
		Tone:         tone,
	})
	c.JSON(http.StatusOK, wishResponse{Wish: res})
}
