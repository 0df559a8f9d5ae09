package handlers

import (
	"net/http"

	"hanabi_backend/internal/middleware"
	"hanabi_backend/internal/models"
	"hanabi_backend/internal/services"
	"hanabi_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ReviewHandler is the admin moderation surface. Role enforcement lives in
// the middleware chain; handlers assume an admin is calling.
type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin/review")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPending)
		admin.POST("/identity/:id/approve", h.ApproveIdentity)
		admin.POST("/identity/:id/reject", h.RejectIdentity)
		admin.POST("/requests/:id/approve", h.ApproveRequest)
		admin.POST("/requests/:id/reject", h.RejectRequest)
	}
}

func (h *ReviewHandler) ListPending(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	resp, err := h.reviewService.ListPending(pageSize, (page-1)*pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) ApproveIdentity(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.reviewService.ApproveIdentity(adminID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) RejectIdentity(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RejectDecisionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.reviewService.RejectIdentity(adminID, c.Param("id"), req.Reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) ApproveRequest(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.reviewService.ApproveRequest(adminID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReviewHandler) RejectRequest(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RejectDecisionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.reviewService.RejectRequest(adminID, c.Param("id"), req.Reason)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
