package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ltpquang/Psytrack/internal/dto"
	"github.com/ltpquang/Psytrack/internal/service"
	"github.com/rs/zerolog/log"
)

type ProgressController struct {
	progressService service.ProgressService
}

func NewProgressController(progressService service.ProgressService) *ProgressController {
	return &ProgressController{progressService: progressService}
}

// StartTest godoc
// @Summary (Participant) Start a test
// @Description Begins the participant's attempt at a test within a session. Starting is idempotent: if an attempt already exists for this participant and test, it is returned unchanged with recomputed display fields.
// @Tags Participant - Progress
// @Produce json
// @Param session_id path int true "Session ID"
// @Param test_id path int true "Test ID"
// @Param participant_id path int true "Participant ID"
// @Success 200 {object} dto.TestProgressDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Participant, session or test not found"
// @Failure 422 {object} dto.ErrorResponse "Participant or test not part of the session"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /sessions/{session_id}/tests/{test_id}/participants/{participant_id}/progress/start [post]
func (c *ProgressController) StartTest(ctx *gin.Context) {
	ids, ok := tripleIDs(ctx)
	if !ok {
		return
	}
	resp, err := c.progressService.StartTest(ids.participantID, ids.sessionID, ids.testID)
	if err != nil {
		log.Warn().Err(err).Uint("participantID", ids.participantID).Uint("testID", ids.testID).Msg("StartTest: Service error")
		respondError(ctx, err, "Failed to start test")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateProgress godoc
// @Summary (Participant) Report progress on a running test
// @Description Periodic heartbeat carrying the answered-question count and client-measured time spent. If the time limit has already elapsed, the attempt is auto-completed at its deadline instead and the terminal record is returned.
// @Tags Participant - Progress
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param test_id path int true "Test ID"
// @Param participant_id path int true "Participant ID"
// @Param progress_data body dto.ProgressUpdateDTO true "Progress values"
// @Success 200 {object} dto.TestProgressDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "No progress record for this participant and test"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /sessions/{session_id}/tests/{test_id}/participants/{participant_id}/progress [put]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	ids, ok := tripleIDs(ctx)
	if !ok {
		return
	}
	var req dto.ProgressUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UpdateProgress: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.progressService.UpdateProgress(ids.participantID, ids.sessionID, ids.testID, req)
	if err != nil {
		log.Warn().Err(err).Uint("participantID", ids.participantID).Uint("testID", ids.testID).Msg("UpdateProgress: Service error")
		respondError(ctx, err, "Failed to update progress")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// CompleteTest godoc
// @Summary (Participant) Submit a test
// @Description Finishes the attempt. A submission arriving after the deadline is recorded as auto-completed at the deadline, not as an explicit completion.
// @Tags Participant - Progress
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param test_id path int true "Test ID"
// @Param participant_id path int true "Participant ID"
// @Param completion_data body dto.ProgressCompleteDTO true "Final answered count (optional)"
// @Success 200 {object} dto.TestProgressDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "No progress record for this participant and test"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /sessions/{session_id}/tests/{test_id}/participants/{participant_id}/progress/complete [post]
func (c *ProgressController) CompleteTest(ctx *gin.Context) {
	ids, ok := tripleIDs(ctx)
	if !ok {
		return
	}
	var req dto.ProgressCompleteDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CompleteTest: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.progressService.CompleteTest(ids.participantID, ids.sessionID, ids.testID, req)
	if err != nil {
		log.Warn().Err(err).Uint("participantID", ids.participantID).Uint("testID", ids.testID).Msg("CompleteTest: Service error")
		respondError(ctx, err, "Failed to complete test")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetProgress godoc
// @Summary (Participant) Read progress within a session
// @Description Returns the participant's progress for every test configured in the session, or for one test when test_id is given. Any in-progress record past its deadline is auto-completed as part of serving this read.
// @Tags Participant - Progress
// @Produce json
// @Param session_id path int true "Session ID"
// @Param participant_id path int true "Participant ID"
// @Param test_id query int false "Restrict to one test"
// @Success 200 {array} dto.TestProgressDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Participant, session or record not found"
// @Failure 503 {object} dto.ErrorResponse "Storage unavailable"
// @Router /sessions/{session_id}/participants/{participant_id}/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return
	}
	participantID, ok := pathID(ctx, "participant_id")
	if !ok {
		return
	}

	if testIDStr := ctx.Query("test_id"); testIDStr != "" {
		val, err := strconv.ParseUint(testIDStr, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test_id format in query"})
			return
		}
		resp, err := c.progressService.GetProgress(participantID, sessionID, uint(val))
		if err != nil {
			log.Warn().Err(err).Uint("participantID", participantID).Uint64("testID", val).Msg("GetProgress: Service error")
			respondError(ctx, err, "Failed to read progress")
			return
		}
		ctx.JSON(http.StatusOK, []dto.TestProgressDTO{*resp})
		return
	}

	resp, err := c.progressService.ListSessionProgress(participantID, sessionID)
	if err != nil {
		log.Warn().Err(err).Uint("participantID", participantID).Uint("sessionID", sessionID).Msg("GetProgress: Service error")
		respondError(ctx, err, "Failed to read progress")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

type progressTriple struct {
	participantID uint
	sessionID     uint
	testID        uint
}

func tripleIDs(ctx *gin.Context) (progressTriple, bool) {
	sessionID, ok := pathID(ctx, "session_id")
	if !ok {
		return progressTriple{}, false
	}
	testID, ok := pathID(ctx, "test_id")
	if !ok {
		return progressTriple{}, false
	}
	participantID, ok := pathID(ctx, "participant_id")
	if !ok {
		return progressTriple{}, false
	}
	return progressTriple{participantID: participantID, sessionID: sessionID, testID: testID}, true
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
