package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ppiankov/trustbuddy/internal/model"
)

// multipartOverhead is the allowance for multipart framing on top of the file itself
const multipartOverhead = 8 << 10

func (s *Server) analyzeClaim(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	verdict, err := s.analyzer.AnalyzeText(c.Request.Context(), req.Text)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

func (s *Server) scanURL(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	report, err := s.analyzer.ScanURL(c.Request.Context(), req.URL)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) analyzeImage(c *gin.Context) {
	limit := s.cfg.MaxUploadBytes
	if limit > 0 {
		if c.Request.ContentLength > limit+multipartOverhead {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"err": "image exceeds upload limit"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+multipartOverhead)
	}

	fh, err := c.FormFile("image")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"err": "image exceeds upload limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"err": "multipart field \"image\" is required"})
		return
	}
	if limit > 0 && fh.Size > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"err": "image exceeds upload limit"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		s.fail(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		s.fail(c, err)
		return
	}

	verdict, err := s.analyzer.AnalyzeImage(c.Request.Context(), data, filepath.Base(fh.Filename))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, verdict)
}

func (s *Server) runQuiz(c *gin.Context) {
	tally := s.sessions.Get(c.GetString(sessionKey))
	c.JSON(http.StatusOK, s.analyzer.RunQuiz(tally))
}

func (s *Server) quizTally(c *gin.Context) {
	tally := s.sessions.Get(c.GetString(sessionKey))
	c.JSON(http.StatusOK, tally.Snapshot())
}

// fail maps analyzer errors to status codes
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, model.ErrEmptyInput), errors.Is(err, model.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
	case errors.Is(err, model.ErrImageDecode):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"err": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "request cancelled"})
	default:
		s.logger.Error("Unhandled analysis error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"err": "internal error"})
	}
}
