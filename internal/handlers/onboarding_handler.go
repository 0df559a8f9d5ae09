package handlers

import (
	"mime/multipart"
	"net/http"

	"hanabi_backend/internal/middleware"
	"hanabi_backend/internal/services"
	"hanabi_backend/internal/services/dto"
	"hanabi_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	*BaseHandler
	onboardingService services.OnboardingService
}

func NewOnboardingHandler(base *BaseHandler, onboardingService services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{
		BaseHandler:       base,
		onboardingService: onboardingService,
	}
}

func (h *OnboardingHandler) RegisterRoutes(r *gin.RouterGroup) {
	onboarding := r.Group("/onboarding")
	onboarding.Use(middleware.AuthMiddleware())
	{
		onboarding.GET("/state", h.GetState)
		onboarding.PUT("/nationality", h.SetNationality)
		onboarding.POST("/photos", h.UploadPhotos)
		onboarding.PUT("/basic-info", h.SetBasicInfo)
		onboarding.PUT("/profile-details", h.SetProfileDetails)
		onboarding.POST("/verification", h.SubmitVerification)
		onboarding.POST("/verification/skip", h.SkipVerification)
		onboarding.POST("/step-back", h.StepBack)
	}
}

func (h *OnboardingHandler) GetState(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.onboardingService.GetState(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) SetNationality(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.NationalityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.onboardingService.SetNationality(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) UploadPhotos(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}
	fileHeaders := form.File["photos"]

	files, closers, err := openFileInputs(fileHeaders)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read uploaded file"))
		return
	}
	defer closeAll(closers)

	resp, err := h.onboardingService.UploadPhotos(c.Request.Context(), userID, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) SetBasicInfo(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.BasicInfoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.onboardingService.SetBasicInfo(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) SetProfileDetails(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ProfileDetailsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.onboardingService.SetProfileDetails(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitVerification takes a multipart form: a "doc_type" field and a
// "document" file.
func (h *OnboardingHandler) SubmitVerification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	input, closer, ok := h.bindVerificationForm(c)
	if !ok {
		return
	}
	defer closer.Close()

	resp, err := h.onboardingService.SubmitVerification(c.Request.Context(), userID, input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OnboardingHandler) SkipVerification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.onboardingService.SkipVerification(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) StepBack(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.StepBackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.onboardingService.StepBack(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OnboardingHandler) bindVerificationForm(c *gin.Context) (*dto.SubmitVerificationInput, multipart.File, bool) {
	input := &dto.SubmitVerificationInput{
		DocType: c.PostForm("doc_type"),
	}
	if err := h.validator.Validate(input); err != nil {
		h.HandleServiceError(c, apperrors.ValidationError(err.Error()))
		return nil, nil, false
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Document file is required"))
		return nil, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Failed to read uploaded file"))
		return nil, nil, false
	}

	input.Document = dto.FileInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Reader:      file,
	}
	return input, file, true
}

func openFileInputs(headers []*multipart.FileHeader) ([]dto.FileInput, []multipart.File, error) {
	files := make([]dto.FileInput, 0, len(headers))
	closers := make([]multipart.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll(closers)
			return nil, nil, err
		}
		closers = append(closers, f)
		files = append(files, dto.FileInput{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Reader:      f,
		})
	}
	return files, closers, nil
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		f.Close()
	}
}
