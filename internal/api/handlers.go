package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"statcalc/adapters/stats/engine"
	"statcalc/domain/core"
	"statcalc/domain/stats"
	"statcalc/internal/chart"
	"statcalc/internal/lesson"
	"statcalc/internal/present"
)

// CalculationRequest carries the raw text typed into a calculator
type CalculationRequest struct {
	Input string `json:"input"`
}

// CalculationResponse is the result of one operation
type CalculationResponse struct {
	RequestID string            `json:"request_id"`
	Result    engine.Result     `json:"result"`
	Breakdown present.Breakdown `json:"breakdown"`
	Chart     *chart.Spec       `json:"chart,omitempty"`
}

// CheckRequest asks for an answer to be graded, either against a stored
// exercise or against an explicit correct value
type CheckRequest struct {
	Exercise string     `json:"exercise,omitempty"`
	Answer   AnswerText `json:"answer"`
	Correct  *float64   `json:"correct,omitempty"`
}

// AnswerText accepts an answer sent as a JSON number or a string
type AnswerText string

// UnmarshalJSON keeps numbers in their literal form
func (a *AnswerText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AnswerText(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = AnswerText(n.String())
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleOperations(c *gin.Context) {
	type operationInfo struct {
		Name         engine.Operation `json:"name"`
		Title        string           `json:"title"`
		MinimumCount int              `json:"minimum_count,omitempty"`
		Positive     bool             `json:"positive,omitempty"`
	}
	ops := engine.Operations()
	out := make([]operationInfo, 0, len(ops))
	for _, op := range ops {
		opts := s.engine.OptionsFor(op)
		out = append(out, operationInfo{
			Name:         op,
			Title:        op.Title(),
			MinimumCount: opts.MinimumCount,
			Positive:     opts.RequirePositive,
		})
	}
	c.JSON(http.StatusOK, gin.H{"operations": out})
}

// handleOperation parses the input with the operation's preset and computes it
func (s *Server) handleOperation(c *gin.Context) {
	op, err := engine.ParseOperation(c.Param("operation"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	var req CalculationRequest
	if !s.bind(c, &req) {
		return
	}

	result, err := s.engine.Run(op, req.Input)
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := CalculationResponse{
		RequestID: c.GetString("requestID"),
		Result:    result,
		Breakdown: present.Result(result),
	}
	if result.Bundle != nil {
		spec := chart.Build(*result.Bundle, chart.HeightOptions())
		resp.Breakdown = present.Bundle(*result.Bundle, spec.Unit)
		resp.Chart = &spec
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCheck(c *gin.Context) {
	var req CheckRequest
	if !s.bind(c, &req) {
		return
	}

	var (
		feedback lesson.Feedback
		err      error
	)
	switch {
	case req.Exercise != "":
		feedback, err = s.catalog.Check(req.Exercise, string(req.Answer))
	case req.Correct != nil:
		feedback = lesson.CheckAnswer(string(req.Answer), *req.Correct)
	default:
		writeError(c, http.StatusBadRequest, "BadRequest", "either exercise or correct is required")
		return
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (s *Server) handleExercises(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"exercises": s.catalog.Exercises()})
}

func (s *Server) handleExamples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"examples": s.catalog.Examples()})
}

func (s *Server) handleExample(c *gin.Context) {
	example, err := s.catalog.Example(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, example)
}

// bind decodes the JSON body, answering 400 or 413 itself on failure
func (s *Server) bind(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		writeError(c, http.StatusRequestEntityTooLarge, "PayloadTooLarge",
			"request body exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes")
		return false
	}
	writeError(c, http.StatusBadRequest, "BadRequest", "invalid JSON body: "+err.Error())
	return false
}

// respondError maps domain errors onto HTTP statuses
func (s *Server) respondError(c *gin.Context, err error) {
	if verr, ok := stats.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr})
		return
	}

	switch {
	case core.IsUnknownOperationError(err):
		writeError(c, http.StatusNotFound, "UnknownOperation", err.Error())
	case core.IsNotFoundError(err):
		writeError(c, http.StatusNotFound, "NotFound", err.Error())
	default:
		s.logger.Error("request %s failed: %v", c.GetString("requestID"), err)
		writeError(c, http.StatusInternalServerError, "Internal", "internal error")
	}
}

func writeError(c *gin.Context, status int, kind, message string) {
	c.JSON(status, gin.H{"error": gin.H{"kind": kind, "message": message}})
}
