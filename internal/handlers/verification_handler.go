package handlers

import (
	"net/http"

	"hanabi_backend/internal/middleware"
	"hanabi_backend/internal/services"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// VerificationHandler is the applicant-facing surface: identity submission
// state, resubmission, and the reviewed photo/bio change requests.
type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
	onboardingService   services.OnboardingService
}

func NewVerificationHandler(
	base *BaseHandler,
	verificationService services.VerificationService,
	onboardingService services.OnboardingService,
) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
		onboardingService:   onboardingService,
	}
}

func (h *VerificationHandler) RegisterRoutes(r *gin.RouterGroup) {
	verification := r.Group("/verification")
	verification.Use(middleware.AuthMiddleware())
	{
		verification.GET("/state", h.GetState)
		verification.POST("/identity", h.SubmitIdentity)
		verification.POST("/bio", h.RequestBioUpdate)
		verification.POST("/photo", h.RequestProfilePhoto)
	}
}

func (h *VerificationHandler) GetState(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.verificationService.GetState(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitIdentity covers resubmission after a rejection; the first
// submission normally arrives through the onboarding flow.
func (h *VerificationHandler) SubmitIdentity(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	input := &dto.SubmitVerificationInput{
		DocType: c.PostForm("doc_type"),
	}
	if err := h.validator.Validate(input); err != nil {
		h.HandleServiceError(c, apperrors.ValidationError(err.Error()))
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Document file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read uploaded file"))
		return
	}
	defer file.Close()

	input.Document = dto.FileInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}

	resp, err := h.verificationService.SubmitIdentity(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VerificationHandler) RequestBioUpdate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBioRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.verificationService.RequestBioUpdate(userID, req.Bio)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VerificationHandler) RequestProfilePhoto(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Photo file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read uploaded file"))
		return
	}
	defer file.Close()

	resp, err := h.verificationService.RequestProfilePhoto(c.Request.Context(), userID, dto.FileInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
