package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/port"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/application/service"
	"github.com/tlsdygks1992-dotcom/church-management-sub001/internal/domain/workflow"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	reportService   service.ReportService
	approvalService service.ApprovalService
	departmentRepo  port.DepartmentRepository
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	reportService service.ReportService,
	approvalService service.ApprovalService,
	departmentRepo port.DepartmentRepository,
	logger Logger,
) *Handlers {
	return &Handlers{
		reportService:   reportService,
		approvalService: approvalService,
		departmentRepo:  departmentRepo,
		logger:          logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateReportRequest is the body for POST /api/reports
type CreateReportRequest struct {
	DepartmentID    int64   `json:"department_id" binding:"required"`
	ReportDate      string  `json:"report_date" binding:"required"`
	Content         string  `json:"content"`
	AttendanceCount int     `json:"attendance_count"`
	OfferingAmount  float64 `json:"offering_amount"`
}

// UpdateReportRequest is the body for PUT /api/reports/:id
type UpdateReportRequest struct {
	ReportDate      string  `json:"report_date" binding:"required"`
	Content         string  `json:"content"`
	AttendanceCount int     `json:"attendance_count"`
	OfferingAmount  float64 `json:"offering_amount"`
}

// ApprovalActionRequest is the body for approval actions
type ApprovalActionRequest struct {
	Comment string `json:"comment"`
}

// ListReportsRequest represents query parameters for listing reports
type ListReportsRequest struct {
	DepartmentID int64  `form:"department_id"`
	Status       string `form:"status"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// CreateReport handles POST /api/reports
func (h *Handlers) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		h.badRequest(c, "report_date must be YYYY-MM-DD")
		return
	}

	report, err := h.reportService.CreateDraft(c.Request.Context(), currentUser(c), service.CreateReportInput{
		DepartmentID:    req.DepartmentID,
		ReportDate:      reportDate,
		Content:         req.Content,
		AttendanceCount: req.AttendanceCount,
		OfferingAmount:  req.OfferingAmount,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: report})
}

// UpdateReport handles PUT /api/reports/:id
func (h *Handlers) UpdateReport(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		h.badRequest(c, "report_date must be YYYY-MM-DD")
		return
	}

	report, err := h.reportService.UpdateDraft(c.Request.Context(), id, currentUser(c), service.UpdateReportInput{
		ReportDate:      reportDate,
		Content:         req.Content,
		AttendanceCount: req.AttendanceCount,
		OfferingAmount:  req.OfferingAmount,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// GetReport handles GET /api/reports/:id
func (h *Handlers) GetReport(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), id, currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// ListReports handles GET /api/reports
func (h *Handlers) ListReports(c *gin.Context) {
	var req ListReportsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "invalid query parameters")
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	filter := port.ReportFilter{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.DepartmentID != 0 {
		filter.DepartmentIDs = []int64{req.DepartmentID}
	}
	if req.Status != "" {
		if !workflow.Status(req.Status).IsValid() {
			h.badRequest(c, "invalid status filter")
			return
		}
		filter.Statuses = []string{req.Status}
	}

	reports, err := h.reportService.ListVisible(c.Request.Context(), currentUser(c), filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: reports})
}

// PendingReports handles GET /api/reports/pending
func (h *Handlers) PendingReports(c *gin.Context) {
	reports, err := h.approvalService.PendingReports(c.Request.Context(), currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: reports})
}

// SubmitReport handles POST /api/reports/:id/submit
func (h *Handlers) SubmitReport(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	report, err := h.approvalService.Submit(c.Request.Context(), id, currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// ApproveReport handles POST /api/reports/:id/approve
func (h *Handlers) ApproveReport(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	var req ApprovalActionRequest
	_ = c.ShouldBindJSON(&req) // comment is optional on approval

	report, err := h.approvalService.Advance(c.Request.Context(), id, currentUser(c), req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// RejectReport handles POST /api/reports/:id/reject
func (h *Handlers) RejectReport(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	var req ApprovalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	report, err := h.approvalService.Reject(c.Request.Context(), id, currentUser(c), req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// RequestRevision handles POST /api/reports/:id/request-revision
func (h *Handlers) RequestRevision(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	var req ApprovalActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	report, err := h.approvalService.RequestRevision(c.Request.Context(), id, currentUser(c), req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: report})
}

// ListDepartments handles GET /api/departments
func (h *Handlers) ListDepartments(c *gin.Context) {
	departments, err := h.departmentRepo.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: departments})
}

// ReportHistory handles GET /api/reports/:id/history
func (h *Handlers) ReportHistory(c *gin.Context) {
	id, ok := h.reportID(c)
	if !ok {
		return
	}

	entries, err := h.reportService.History(c.Request.Context(), id, currentUser(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: entries})
}

func (h *Handlers) reportID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.badRequest(c, "invalid report id")
		return 0, false
	}
	return id, true
}

func (h *Handlers) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// fail maps domain and service errors to HTTP status codes
func (h *Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReportNotFound), errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
	case errors.Is(err, service.ErrPermissionDenied),
		errors.Is(err, workflow.ErrRoleNotAllowed),
		errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusForbidden, Response{Success: false, Error: "you do not have permission for this action"})
	case errors.Is(err, workflow.ErrCommentRequired),
		errors.Is(err, workflow.ErrInvalidStatus),
		errors.Is(err, service.ErrDepartmentNotFound):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, service.ErrStatusConflict), errors.Is(err, service.ErrNotEditable):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
	default:
		h.logger.Error("Request failed", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "internal error"})
	}
}
