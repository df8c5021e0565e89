package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ltpquang/Psytrack/internal/dto"
	"github.com/ltpquang/Psytrack/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	adminTestService    service.AdminTestService
	adminSessionService service.AdminSessionService
}

func NewAdminController(adminTestService service.AdminTestService, adminSessionService service.AdminSessionService) *AdminController {
	return &AdminController{
		adminTestService:    adminTestService,
		adminSessionService: adminSessionService,
	}
}

// CreateTest godoc
// @Summary (Admin) Add a test to the catalog
// @Description Admin registers a psychometric test with its time limit and question count. These values are snapshotted into progress records when participants start.
// @Tags Admin
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Test catalog data"
// @Success 201 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /admin/tests [post]
func (c *AdminController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTest: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminTestService.CreateTest(req)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Admin CreateTest: Service error")
		respondError(ctx, err, "Failed to create test")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListTests godoc
// @Summary (Admin) List the test catalog
// @Tags Admin
// @Produce json
// @Success 200 {array} dto.TestResponseDTO
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /admin/tests [get]
func (c *AdminController) ListTests(ctx *gin.Context) {
	resp, err := c.adminTestService.ListTests()
	if err != nil {
		log.Error().Err(err).Msg("Admin ListTests: Service error")
		respondError(ctx, err, "Failed to list tests")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CreateSession godoc
// @Summary (Admin) Schedule a session
// @Description Creates a session configured with an ordered list of catalog tests.
// @Tags Admin
// @Accept json
// @Produce json
// @Param session_data body dto.SessionCreateDTO true "Session data with test IDs in presentation order"
// @Success 201 {object} dto.SessionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Referenced test not found"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /admin/sessions [post]
func (c *AdminController) CreateSession(ctx *gin.Context) {
	var req dto.SessionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateSession: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminSessionService.CreateSession(req)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Admin CreateSession: Service error")
		respondError(ctx, err, "Failed to create session")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetSession godoc
// @Summary (Admin) Get a session with its configured tests
// @Tags Admin
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {object} dto.SessionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Session ID format"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /admin/sessions/{session_id} [get]
func (c *AdminController) GetSession(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	resp, err := c.adminSessionService.GetSession(sessionID)
	if err != nil {
		log.Warn().Err(err).Uint("sessionID", sessionID).Msg("Admin GetSession: Service error")
		respondError(ctx, err, "Failed to get session")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// RegisterParticipant godoc
// @Summary (Admin) Register a participant into a session
// @Description Registers one participant; an access code is issued for client use.
// @Tags Admin
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param participant_data body dto.ParticipantRegisterDTO true "Participant data"
// @Success 201 {object} dto.ParticipantResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /admin/sessions/{session_id}/participants [post]
func (c *AdminController) RegisterParticipant(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	var req dto.ParticipantRegisterDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin RegisterParticipant: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminSessionService.RegisterParticipant(sessionID, req)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("Admin RegisterParticipant: Service error")
		respondError(ctx, err, "Failed to register participant")
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListParticipants godoc
// @Summary (Admin) List a session's participants
// @Tags Admin
// @Produce json
// @Param session_id path int true "Session ID"
// @Success 200 {array} dto.ParticipantResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /admin/sessions/{session_id}/participants [get]
func (c *AdminController) ListParticipants(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	resp, err := c.adminSessionService.ListParticipants(sessionID)
	if err != nil {
		log.Warn().Err(err).Uint("sessionID", sessionID).Msg("Admin ListParticipants: Service error")
		respondError(ctx, err, "Failed to list participants")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func respondError(ctx *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindValidation:
		status = http.StatusBadRequest
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindPrecondition:
		status = http.StatusUnprocessableEntity
	case service.KindUnavailable:
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
}
