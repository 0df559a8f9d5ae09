package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"hanabi_backend/internal/storage"
	"hanabi_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves artifacts when the local storage backend is in use.
// The public photos area is served plainly; identity documents are only
// reachable with a valid signature minted by the storage backend.
type FileHandler struct {
	*BaseHandler
	fileStorage storage.Storage
}

func NewFileHandler(base *BaseHandler, fileStorage storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		fileStorage: fileStorage,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/files/*path", h.ServeFile)
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	if strings.Contains(path, "..") {
		apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied"))
		return
	}

	private := !strings.HasPrefix(path, "photos/")
	if private {
		verifier, ok := h.fileStorage.(storage.SignedPathVerifier)
		if !ok || !verifier.VerifySignedPath(path, c.Query("exp"), c.Query("sig")) {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied"))
			return
		}
	}

	reader, err := h.fileStorage.Get(c.Request.Context(), path)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewNotFoundError("file", "File not found"))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	if private {
		c.Header("Cache-Control", "private, no-store")
	} else {
		c.Header("Cache-Control", "public, max-age=86400")
	}
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}
