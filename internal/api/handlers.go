package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rgehrsitz/corpus/internal/breakeven"
	"github.com/rgehrsitz/corpus/internal/config"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/storage"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string              `json:"error"`
	Fields    []config.FieldError `json:"fields,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

// OptimizeResponse is the step-up optimizer view of a result
type OptimizeResponse struct {
	GapAnalysis        domain.GapAnalysis        `json:"gapAnalysis"`
	StepUpOptimization domain.StepUpOptimization `json:"stepUpOptimization"`
	Warnings           []string                  `json:"warnings"`
}

// WhatIfResponse is the scenario view of a result
type WhatIfResponse struct {
	GapAnalysis domain.GapAnalysis    `json:"gapAnalysis"`
	WhatIf      domain.WhatIfAnalysis `json:"whatIf"`
	Warnings    []string              `json:"warnings"`
}

// SelectionRequest saves a strategy choice
type SelectionRequest struct {
	Strategy string `json:"strategy" binding:"required"`
}

// AssumptionsResponse reports where the returned parameters came from
type AssumptionsResponse struct {
	Source     string                    `json:"source"` // saved, default
	Parameters domain.PlanningParameters `json:"parameters"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCalculate(c *gin.Context) {
	res, ok := s.calculate(c, "calculate")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleOptimize(c *gin.Context) {
	res, ok := s.calculate(c, "optimize")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, OptimizeResponse{
		GapAnalysis:        res.GapAnalysis,
		StepUpOptimization: res.StepUpOptimization,
		Warnings:           res.Warnings,
	})
}

func (s *Server) handleWhatIf(c *gin.Context) {
	res, ok := s.calculate(c, "whatif")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, WhatIfResponse{
		GapAnalysis: res.GapAnalysis,
		WhatIf:      res.WhatIf,
		Warnings:    res.Warnings,
	})
}

// handleBreakEven solves one lever (?target=monthly_sip|step_up|retirement_age)
// or all of them (the default) for closing the corpus gap.
func (s *Server) handleBreakEven(c *gin.Context) {
	plan, ok := s.bindPlan(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	timer := prometheus.NewTimer(s.metrics.CalculationDuration.WithLabelValues("breakeven"))
	defer timer.ObserveDuration()

	target := breakeven.OptimizationTarget(c.DefaultQuery("target", string(breakeven.OptimizeAll)))
	var (
		result any
		err    error
	)
	if target == breakeven.OptimizeAll {
		result, err = s.solver.OptimizeAllTargets(ctx, plan, breakeven.DefaultConstraints())
	} else {
		result, err = s.solver.Optimize(ctx, breakeven.OptimizationRequest{Plan: plan, Target: target, Goal: breakeven.GoalCloseGap})
	}

	var be *breakeven.BreakEvenError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, result)
	case errors.As(err, &be):
		abortWithError(c, http.StatusUnprocessableEntity, be.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		abortWithError(c, http.StatusServiceUnavailable, "calculation cancelled")
	default:
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleGetSelection(c *gin.Context) {
	sel, err := s.repo.GetSelection(c.Request.Context(), c.Param("user"))
	if errors.Is(err, storage.ErrNotFound) {
		abortWithError(c, http.StatusNotFound, "no saved selection")
		return
	}
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (s *Server) handlePutSelection(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	strategy, err := domain.ParseIncomeStrategy(req.Strategy)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	sel, err := s.repo.SaveSelection(c.Request.Context(), c.Param("user"), strategy)
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, sel)
}

func (s *Server) handleGetAssumptions(c *gin.Context) {
	params, err := s.repo.GetAssumptions(c.Request.Context(), c.Param("user"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusOK, AssumptionsResponse{Source: "default", Parameters: config.DefaultParameters()})
		return
	}
	if err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, AssumptionsResponse{Source: "saved", Parameters: params})
}

func (s *Server) handlePutAssumptions(c *gin.Context) {
	params := config.DefaultParameters()
	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	// validate the parameters through the plan rules
	plan := &domain.Plan{Parameters: params}
	if err := s.parser.Prepare(plan); err != nil {
		s.validationError(c, err)
		return
	}

	if err := s.repo.SaveAssumptions(c.Request.Context(), c.Param("user"), plan.Parameters); err != nil {
		s.storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, AssumptionsResponse{Source: "saved", Parameters: plan.Parameters})
}

// calculate binds the plan and runs the engine, writing the error response
// itself when it returns false.
func (s *Server) calculate(c *gin.Context, op string) (*domain.Result, bool) {
	plan, ok := s.bindPlan(c)
	if !ok {
		return nil, false
	}

	timer := prometheus.NewTimer(s.metrics.CalculationDuration.WithLabelValues(op))
	res, err := s.engine.Run(c.Request.Context(), plan)
	timer.ObserveDuration()
	if err != nil {
		abortWithError(c, http.StatusServiceUnavailable, "calculation cancelled")
		return nil, false
	}
	return res, true
}

// bindPlan decodes the request plan on top of the caller's defaults: the
// built-in assumptions, then the user's saved assumptions and strategy
// (?user=), then the body.
func (s *Server) bindPlan(c *gin.Context) (*domain.Plan, bool) {
	defaults, err := s.defaultsFor(c.Request.Context(), c.Query("user"))
	if err != nil {
		s.storageError(c, err)
		return nil, false
	}

	plan := &domain.Plan{Parameters: defaults}
	if err := c.ShouldBindJSON(plan); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	if err := s.parser.Prepare(plan); err != nil {
		s.validationError(c, err)
		return nil, false
	}
	return plan, true
}

func (s *Server) defaultsFor(ctx context.Context, userID string) (domain.PlanningParameters, error) {
	return storage.PlanDefaults(ctx, s.repo, userID, config.DefaultParameters())
}

func (s *Server) validationError(c *gin.Context, err error) {
	var ve *config.ValidationError
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:     "plan validation failed",
			Fields:    ve.Errors,
			RequestID: c.GetString(requestIDKey),
		})
		return
	}
	abortWithError(c, http.StatusBadRequest, err.Error())
}

func (s *Server) storageError(c *gin.Context, err error) {
	s.logger.Error("settings repository", "error", err, "request_id", c.GetString(requestIDKey))
	abortWithError(c, http.StatusInternalServerError, "settings repository unavailable")
}
