package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/fairsplit/internal/common"
	"github.com/hxuan190/fairsplit/internal/domain"
	"github.com/hxuan190/fairsplit/internal/expense"
	"github.com/hxuan190/fairsplit/internal/http/httputil"
)

type SplitHandler struct {
	expenseSvc *expense.Service
}

func NewSplitHandler(expenseSvc *expense.Service) *SplitHandler {
	return &SplitHandler{expenseSvc: expenseSvc}
}

func (h *SplitHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.POST("", h.calculate)
	pub.POST("/batch", h.calculateBatch)
	pub.POST("/validate", h.validate)
	pub.GET("", h.list)
	pub.GET("/:expenseId", h.get)
}

func (h *SplitHandler) Root() string {
	return "/splits"
}

// BatchRequest carries several split requests computed in one call
type BatchRequest struct {
	// Up to 100 split requests
	Requests []domain.SplitRequest `json:"requests"`
}

// BatchResult is the outcome of one request of a batch
type BatchResult struct {
	// Position of the request in the batch
	Index int `json:"index" example:"0"`

	Success bool                 `json:"success" example:"true"`
	Data    *domain.ExpenseSplit `json:"data,omitempty"`
	Error   string               `json:"error,omitempty"`
	Code    string               `json:"code,omitempty" example:"VALIDATION_ERROR"`
}

type BatchResponse struct {
	Results   []BatchResult `json:"results"`
	Succeeded int           `json:"succeeded" example:"2"`
	Failed    int           `json:"failed" example:"1"`
}

type SplitListResponse struct {
	Splits []*domain.ExpenseSplit `json:"splits"`
	Count  int                    `json:"count" example:"3"`
}

// ValidateResponse reports whether a split request would be accepted
type ValidateResponse struct {
	Valid bool   `json:"valid" example:"false"`
	Error string `json:"error,omitempty" example:"Percentages must sum to 100% (current total: 99.00%)"`
	Code  string `json:"code,omitempty" example:"VALIDATION_ERROR"`
}

func bindSplitRequest(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// @Summary Split an expense
// @Description Splits an amount between participants using the equal, weighted or percentage method.
// @Description Shares are rounded to the currency precision and always add up to the rounded amount.
// @Description
// @Description **Methods:**
// @Description - equal: everyone pays the same, leftover minimum units go to the first participants
// @Description - weighted: shares follow each participant's weight (default 1)
// @Description - percentage: shares follow percentages that must sum to 100
// @Description
// @Description Set persist=true to store the result under its expense id.
// @Tags splits
// @Accept json
// @Produce json
// @Param request body domain.SplitRequest true "Split request"
// @Success 200 {object} httputil.Response{data=domain.ExpenseSplit} "Computed split"
// @Failure 400 {object} httputil.Response "Invalid request (VALIDATION_ERROR, BAD_REQUEST)"
// @Failure 422 {object} httputil.Response "Shares do not add up (TOTAL_MISMATCH)"
// @Failure 500 {object} httputil.Response "Calculation or storage failure"
// @Router /api/v1/splits [post]
func (h *SplitHandler) calculate(c *gin.Context) {
	var req domain.SplitRequest
	if !bindSplitRequest(c, &req) {
		return
	}

	split, err := h.expenseSvc.Calculate(c.Request.Context(), req)
	if err != nil {
		httputil.FailFromSplit(c, err)
		return
	}
	httputil.Success(c, split)
}

// @Summary Split several expenses
// @Description Computes up to 100 split requests. Each request succeeds or fails on its own;
// @Description successful requests with persist=true are stored in a single write.
// @Tags splits
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Batch of split requests"
// @Success 200 {object} httputil.Response{data=BatchResponse} "Per request results"
// @Failure 400 {object} httputil.Response "Empty or oversized batch"
// @Failure 500 {object} httputil.Response "Storage failure"
// @Router /api/v1/splits/batch [post]
func (h *SplitHandler) calculateBatch(c *gin.Context) {
	var req BatchRequest
	if !bindSplitRequest(c, &req) {
		return
	}

	items, err := h.expenseSvc.CalculateBatch(c.Request.Context(), req.Requests)
	if errors.Is(err, expense.ErrBatchEmpty) || errors.Is(err, expense.ErrBatchTooLarge) {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err != nil {
		httputil.FailFromSplit(c, err)
		return
	}

	resp := BatchResponse{Results: make([]BatchResult, len(items))}
	for i, item := range items {
		if item.Err != nil {
			httpErr := common.HTTPErrorFromSplit(item.Err)
			resp.Results[i] = BatchResult{Index: item.Index, Error: httpErr.Message, Code: httpErr.Code}
			resp.Failed++
			continue
		}
		resp.Results[i] = BatchResult{Index: item.Index, Success: true, Data: item.Split}
		resp.Succeeded++
	}
	httputil.Success(c, resp)
}

// @Summary Validate a split request
// @Description Runs only the validation stage of the requested method, without computing shares.
// @Tags splits
// @Accept json
// @Produce json
// @Param request body domain.SplitRequest true "Split request"
// @Success 200 {object} httputil.Response{data=ValidateResponse} "Validation outcome"
// @Failure 400 {object} httputil.Response "Malformed body"
// @Router /api/v1/splits/validate [post]
func (h *SplitHandler) validate(c *gin.Context) {
	var req domain.SplitRequest
	if !bindSplitRequest(c, &req) {
		return
	}

	if err := h.expenseSvc.Validate(req); err != nil {
		httpErr := common.HTTPErrorFromSplit(err)
		httputil.Success(c, ValidateResponse{Valid: false, Error: httpErr.Message, Code: httpErr.Code})
		return
	}
	httputil.Success(c, ValidateResponse{Valid: true})
}

// @Summary List splits
// @Description Lists stored splits and splits computed recently by this instance, newest first.
// @Tags splits
// @Produce json
// @Success 200 {object} httputil.Response{data=SplitListResponse}
// @Failure 500 {object} httputil.Response "Storage failure"
// @Router /api/v1/splits [get]
func (h *SplitHandler) list(c *gin.Context) {
	splits, err := h.expenseSvc.List(c.Request.Context())
	if err != nil {
		httputil.InternalError(c, err.Error())
		return
	}
	httputil.Success(c, SplitListResponse{Splits: splits, Count: len(splits)})
}

// @Summary Get a split
// @Tags splits
// @Produce json
// @Param expenseId path string true "Expense id"
// @Success 200 {object} httputil.Response{data=domain.ExpenseSplit}
// @Failure 404 {object} httputil.Response "Unknown expense id"
// @Router /api/v1/splits/{expenseId} [get]
func (h *SplitHandler) get(c *gin.Context) {
	expenseID := c.Param("expenseId")

	split, err := h.expenseSvc.Get(c.Request.Context(), expenseID)
	if errors.Is(err, expense.ErrExpenseNotFound) {
		httputil.NotFound(c, "no split stored for expense "+expenseID)
		return
	}
	if err != nil {
		httputil.InternalError(c, err.Error())
		return
	}
	httputil.Success(c, split)
}
