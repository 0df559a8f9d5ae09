package handlers

import (
	"net/http"

	"hanabi_backend/internal/middleware"
	"hanabi_backend/internal/services"
	"hanabi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	*BaseHandler
	matchService          services.MatchService
	recommendationService services.RecommendationService
}

func NewMatchHandler(
	base *BaseHandler,
	matchService services.MatchService,
	recommendationService services.RecommendationService,
) *MatchHandler {
	return &MatchHandler{
		BaseHandler:           base,
		matchService:          matchService,
		recommendationService: recommendationService,
	}
}

func (h *MatchHandler) RegisterRoutes(r *gin.RouterGroup) {
	likes := r.Group("/likes")
	likes.Use(middleware.AuthMiddleware())
	{
		likes.POST("", h.SendLike)
		likes.GET("/incoming", h.ListIncomingLikes)
		likes.POST("/:id/accept", h.AcceptLike)
		likes.POST("/:id/reject", h.RejectLike)
	}

	matches := r.Group("/matches")
	matches.Use(middleware.AuthMiddleware())
	{
		matches.GET("", h.ListMatches)
	}

	recommendations := r.Group("/recommendations")
	recommendations.Use(middleware.AuthMiddleware())
	{
		recommendations.GET("", h.GetRecommendations)
	}
}

func (h *MatchHandler) SendLike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.LikeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.matchService.SendLike(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MatchHandler) ListIncomingLikes(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.matchService.ListIncomingLikes(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MatchHandler) AcceptLike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.matchService.AcceptLike(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MatchHandler) RejectLike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.matchService.RejectLike(userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Like rejected"})
}

func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.matchService.ListMatches(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MatchHandler) GetRecommendations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.recommendationService.GetCandidates(userID, pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
