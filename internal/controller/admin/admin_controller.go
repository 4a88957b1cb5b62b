package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Stonechat/internal/controller"
	"github.com/lshigami/Stonechat/internal/dto"
	"github.com/lshigami/Stonechat/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	identityService service.IdentityService
	questionService service.QuestionBankService
	statsService    service.StatsService
	exportService   service.ExportService
}

func NewAdminController(is service.IdentityService, qs service.QuestionBankService, ss service.StatsService, es service.ExportService) *AdminController {
	return &AdminController{
		identityService: is,
		questionService: qs,
		statsService:    ss,
		exportService:   es,
	}
}

// Login godoc
// @Summary Admin login
// @Description Authenticate the administrator with username and password, returning a bearer token.
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param credentials body dto.AdminLoginRequest true "Admin username and password"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/admin/login [post]
func (c *AdminController) Login(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	token, err := c.identityService.LoginAdmin(ctx.Request.Context(), req)
	if err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("Admin Login: Service error")
		controller.RespondError(ctx, err, "Login failed")
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// ListQuestions godoc
// @Summary (Admin) List all questions
// @Description Returns every question with options, correct answers and points.
// @Tags Admin - Questions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuestionDetail
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /admin/questions [get]
func (c *AdminController) ListQuestions(ctx *gin.Context) {
	questions, err := c.questionService.List(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Admin ListQuestions: Service error")
		controller.RespondError(ctx, err, "Failed to list questions")
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// CreateQuestion godoc
// @Summary (Admin) Add a question
// @Description Appends a question at the next sequential ID. Correct labels must exist among the options.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body dto.QuestionRequest true "Question text, options block, correct labels and points"
// @Success 201 {object} dto.QuestionDetail
// @Failure 400 {object} dto.ErrorResponse "Invalid question data"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /admin/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuestion: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.Add(ctx.Request.Context(), req)
	if err != nil {
		log.Warn().Err(err).Msg("Admin CreateQuestion: Service error")
		controller.RespondError(ctx, err, "Failed to create question")
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary (Admin) Edit a question
// @Description Replaces the text, options, correct labels and points of an existing question.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Param question body dto.QuestionRequest true "Updated question data"
// @Success 200 {object} dto.QuestionDetail
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or question data"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /admin/questions/{id} [put]
func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	var req dto.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.questionService.Edit(ctx.Request.Context(), id, req)
	if err != nil {
		log.Warn().Err(err).Int("id", id).Msg("Admin UpdateQuestion: Service error")
		controller.RespondError(ctx, err, "Failed to update question")
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Description Removes a question and renumbers the remaining ones to keep IDs sequential.
// @Tags Admin - Questions
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /admin/questions/{id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question ID format"})
		return
	}

	if err := c.questionService.Delete(ctx.Request.Context(), id); err != nil {
		log.Warn().Err(err).Int("id", id).Msg("Admin DeleteQuestion: Service error")
		controller.RespondError(ctx, err, "Failed to delete question")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetStats godoc
// @Summary (Admin) Participant statistics
// @Description Aggregates every participant's latest answers into per-participant counts, score and accuracy.
// @Tags Admin - Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /admin/stats [get]
func (c *AdminController) GetStats(ctx *gin.Context) {
	stats, err := c.statsService.Aggregate(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Admin GetStats: Service error")
		controller.RespondError(ctx, err, "Failed to aggregate statistics")
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// ExportStats godoc
// @Summary (Admin) Export participant statistics
// @Description Download the aggregated participant statistics as a styled workbook or PDF.
// @Tags Admin - Stats
// @Produce application/octet-stream
// @Security BearerAuth
// @Param format query string false "Export format: xlsx (default) or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse "Unknown export format"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /admin/stats/export [get]
func (c *AdminController) ExportStats(ctx *gin.Context) {
	format, err := service.ParseFormat(ctx.Query("format"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Unknown export format", Details: []string{err.Error()}})
		return
	}

	doc, err := c.exportService.Statistics(ctx.Request.Context(), format)
	if err != nil {
		log.Error().Err(err).Msg("Admin ExportStats: Service error")
		controller.RespondError(ctx, err, "Failed to export statistics")
		return
	}
	controller.SendDocument(ctx, doc)
}

// ExportParticipant godoc
// @Summary (Admin) Export one participant's answers
// @Description Download a participant's submission history, or only the latest answers with view=latest.
// @Tags Admin - Stats
// @Produce application/octet-stream
// @Security BearerAuth
// @Param email path string true "Participant email"
// @Param format query string false "Export format: xlsx (default) or pdf"
// @Param view query string false "history (default) or latest"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse "Unknown export format or view"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /admin/participants/{email}/export [get]
func (c *AdminController) ExportParticipant(ctx *gin.Context) {
	email := ctx.Param("email")
	format, err := service.ParseFormat(ctx.Query("format"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Unknown export format", Details: []string{err.Error()}})
		return
	}

	var doc *service.Document
	switch ctx.DefaultQuery("view", "history") {
	case "history":
		doc, err = c.exportService.ParticipantLedger(ctx.Request.Context(), email, format)
	case "latest":
		doc, err = c.exportService.ParticipantResults(ctx.Request.Context(), email, format)
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Unknown view, expected history or latest"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Admin ExportParticipant: Service error")
		controller.RespondError(ctx, err, "Failed to export participant answers")
		return
	}
	controller.SendDocument(ctx, doc)
}

// ChangePassword godoc
// @Summary (Admin) Change the admin password
// @Description Verifies the current password and stores the new one. New password and confirmation must match.
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param passwords body dto.ChangePasswordRequest true "Current password, new password and confirmation"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Passwords do not match"
// @Failure 401 {object} dto.ErrorResponse "Current password is wrong"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /admin/password [put]
func (c *AdminController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.identityService.ChangeAdminPassword(ctx.Request.Context(), req); err != nil {
		log.Warn().Err(err).Msg("Admin ChangePassword: Service error")
		controller.RespondError(ctx, err, "Failed to change password")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}

// ResetPassword godoc
// @Summary (Admin) Reset the admin password
// @Description Restores the admin password to the built-in default.
// @Tags Admin - Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /admin/password/reset [post]
func (c *AdminController) ResetPassword(ctx *gin.Context) {
	if err := c.identityService.ResetAdminPassword(ctx.Request.Context()); err != nil {
		log.Error().Err(err).Msg("Admin ResetPassword: Service error")
		controller.RespondError(ctx, err, "Failed to reset password")
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Password reset to default"})
}
