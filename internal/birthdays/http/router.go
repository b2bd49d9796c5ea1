package http

import "github.com/gin-gonic/gin"

// Register registers the birthday and wish routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/birthdays", h.CreateBirthday)
	rg.GET("/birthdays", h.ListBirthdays)
	rg.GET("/birthdays/stats", h.Stats)
	rg.GET("/birthdays/:id", h.GetBirthday)
	rg.DELETE("/birthdays/:id", h.DeleteBirthday)
	rg.POST("/birthdays/:id/wish", h.GenerateWish)
	rg.POST("/wishes", h.GenerateDirectWish)
}
