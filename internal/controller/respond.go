package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Stonechat/internal/dto"
	"github.com/lshigami/Stonechat/internal/repository"
	"github.com/lshigami/Stonechat/internal/service"
	"github.com/lshigami/Stonechat/internal/sheetstore"
)

// RespondError maps a service error onto an HTTP status and writes the
// standard error body. Unmapped errors fall through to 500.
func RespondError(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case service.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrNoExportData),
		errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEditLimitReached):
		status = http.StatusConflict
	case errors.Is(err, sheetstore.ErrRateLimited):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.ErrorResponse{Message: msg, Details: []string{err.Error()}})
}

// SendDocument writes an export document as a file download.
func SendDocument(c *gin.Context, doc *service.Document) {
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
