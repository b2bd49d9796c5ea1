package http

import (
	"github.com/cyberbirth/cyberbirth-backend/internal/birthdays/service"
	"github.com/cyberbirth/cyberbirth-backend/internal/wishes"
)

// Handler handles HTTP requests for birthday records
type Handler struct {
	svc    *service.BirthdayService
	wishes service.WishClient
}

// New creates a new Handler
func New(svc *service.BirthdayService, wishClient service.WishClient) *Handler {
	return &Handler{svc: svc, wishes: wishClient}
}

type createBirthdayBody struct {
	Name         string `json:"name"`
	Date         string `json:"date"`
	Relationship string `json:"relationship"`
}

type wishBody struct {
	Tone string `json:"tone"`
}

type directWishBody struct {
	Name         string `json:"name"`
	Age          int    `json:"age" binding:"min=0"`
	Relationship string `json:"relationship"`
	Tone         string `json:"tone"`
}

type wishResponse struct {
	Wish wishes.Result `json:"wish"`
}
