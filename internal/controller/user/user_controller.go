package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Stonechat/internal/controller"
	"github.com/lshigami/Stonechat/internal/dto"
	"github.com/lshigami/Stonechat/internal/middleware"
	"github.com/lshigami/Stonechat/internal/service"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	identityService   service.IdentityService
	submissionService service.SubmissionService
	exportService     service.ExportService
}

func NewUserController(is service.IdentityService, ss service.SubmissionService, es service.ExportService) *UserController {
	return &UserController{
		identityService:   is,
		submissionService: ss,
		exportService:     es,
	}
}

// Register godoc
// @Summary Register a new participant
// @Description Create a participant account. Email must not already be registered.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterRequest true "Participant profile and password"
// @Success 201 {object} dto.UserProfile
// @Failure 400 {object} dto.ErrorResponse "Invalid input or email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Register: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	profile, err := c.identityService.Register(ctx.Request.Context(), req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Register: Service error")
		controller.RespondError(ctx, err, "Failed to register")
		return
	}
	ctx.JSON(http.StatusCreated, profile)
}

// Login godoc
// @Summary Participant login
// @Description Authenticate a participant with email and password, returning a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	token, err := c.identityService.LoginParticipant(ctx.Request.Context(), req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Login: Service error")
		controller.RespondError(ctx, err, "Login failed")
		return
	}
	ctx.JSON(http.StatusOK, token)
}

// GetQuiz godoc
// @Summary Get the quiz for the current participant
// @Description Returns all questions with the participant's previous selections and remaining edit rounds. Correct answers are never included.
// @Tags Quiz
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.QuizView
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /questions [get]
func (c *UserController) GetQuiz(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}

	view, err := c.submissionService.QuizView(ctx.Request.Context(), identity.Email)
	if err != nil {
		log.Error().Err(err).Str("email", identity.Email).Msg("GetQuiz: Service error")
		controller.RespondError(ctx, err, "Failed to load quiz")
		return
	}
	ctx.JSON(http.StatusOK, view)
}

// SubmitAnswers godoc
// @Summary Submit a round of answers
// @Description Grade and record one submission round. Each participant has a limited number of rounds; empty selections are skipped.
// @Tags Quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submission body dto.SubmissionRequest true "Answers for this round"
// @Success 200 {object} dto.SubmissionResult
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 409 {object} dto.ErrorResponse "Edit round limit reached"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /submissions [post]
func (c *UserController) SubmitAnswers(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}

	var req dto.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswers: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.SubmitRound(ctx.Request.Context(), identity.Email, req)
	if err != nil {
		log.Warn().Err(err).Str("email", identity.Email).Msg("SubmitAnswers: Service error")
		controller.RespondError(ctx, err, "Failed to submit answers")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetMyResults godoc
// @Summary Get the current participant's results
// @Description Returns the latest answer per question with correctness, score and an aggregate summary.
// @Tags Quiz
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ParticipantResults
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /me/results [get]
func (c *UserController) GetMyResults(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}

	results, err := c.submissionService.Results(ctx.Request.Context(), identity.Email)
	if err != nil {
		log.Error().Err(err).Str("email", identity.Email).Msg("GetMyResults: Service error")
		controller.RespondError(ctx, err, "Failed to load results")
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// ExportMyResults godoc
// @Summary Export the current participant's results
// @Description Download the participant's latest results as a styled workbook or PDF.
// @Tags Quiz
// @Produce application/octet-stream
// @Security BearerAuth
// @Param format query string false "Export format: xlsx (default) or pdf"
// @Success 200 {file} binary
// @Failure 400 {object} dto.ErrorResponse "Unknown export format"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 503 {object} dto.ErrorResponse "Storage temporarily unavailable"
// @Router /me/export [get]
func (c *UserController) ExportMyResults(ctx *gin.Context) {
	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
		return
	}

	format, err := service.ParseFormat(ctx.Query("format"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Unknown export format", Details: []string{err.Error()}})
		return
	}

	doc, err := c.exportService.ParticipantResults(ctx.Request.Context(), identity.Email, format)
	if err != nil {
		log.Error().Err(err).Str("email", identity.Email).Msg("ExportMyResults: Service error")
		controller.RespondError(ctx, err, "Failed to export results")
		return
	}
	controller.SendDocument(ctx, doc)
}
