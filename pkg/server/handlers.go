package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/e-c-centric/ClassHelper/pkg/model"
	"github.com/e-c-centric/ClassHelper/pkg/usecase/attendance"
	"github.com/e-c-centric/ClassHelper/pkg/usecase/report"
)

// maxAudioBytes caps uploaded recordings at 25 MiB.
const maxAudioBytes = 25 << 20

// abortWithError maps pipeline errors onto HTTP statuses. Parse failures
// never reach here; they degrade inside the use cases.
func (s *Server) abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrClassNotFound),
		errors.Is(err, model.ErrRosterNotFound),
		errors.Is(err, model.ErrNoEventRows):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrInvalidReportType),
		errors.Is(err, model.ErrInvalidRelevance):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

type analyzeRequest struct {
	ClassID   model.ClassID   `json:"classId" binding:"required"`
	DateRange model.DateRange `json:"dateRange" binding:"required"`
}

// analyzeParticipation handles POST /api/ai/analyze-participation
func (s *Server) analyzeParticipation(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := s.report.AnalyzeParticipation(c.Request.Context(), report.AnalyzeInput{
		ClassID: req.ClassID,
		Range:   req.DateRange,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": result.Analysis})
}

type generateReportRequest struct {
	ClassID    model.ClassID    `json:"classId" binding:"required"`
	Date       model.Date       `json:"date" binding:"required"`
	ReportType model.ReportType `json:"reportType" binding:"required"`
}

// generateReport handles POST /api/ai/generate-report
func (s *Server) generateReport(c *gin.Context) {
	var req generateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := s.report.Generate(c.Request.Context(), report.GenerateInput{
		ClassID: req.ClassID,
		Date:    req.Date,
		Type:    req.ReportType,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": result.Report})
}

// transcribeAudio handles POST /api/ai/transcribe-audio (multipart)
func (s *Server) transcribeAudio(c *gin.Context) {
	classID := model.ClassID(c.PostForm("classId"))
	if classID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "classId is required"})
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file provided"})
		return
	}
	if fileHeader.Size > maxAudioBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open audio file"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read audio file"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	result, err := s.attendance.Transcribe(c.Request.Context(), attendance.TranscribeInput{
		ClassID:  classID,
		Audio:    audio,
		MIMEType: mimeType,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcription": result.Transcription})
}

type videoAttendanceRequest struct {
	Transcription string        `json:"transcription" binding:"required"`
	ClassID       model.ClassID `json:"classId" binding:"required"`
	Date          model.Date    `json:"date" binding:"required"`
}

// videoAttendance handles POST /api/ai/video-attendance
func (s *Server) videoAttendance(c *gin.Context) {
	var req videoAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := s.attendance.Reconcile(c.Request.Context(), attendance.ReconcileInput{
		ClassID:       req.ClassID,
		Date:          req.Date,
		Transcription: req.Transcription,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"matched":      result.Matched,
		"totalPresent": result.TotalPresent,
	})
}
