package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/httpresp"
	"github.com/bookati/booking-api/internal/middleware"
	"github.com/bookati/booking-api/internal/models"
)

// AssignmentHandler manages the employee-to-service bindings that drive
// the roster fallback during slot generation.
type AssignmentHandler struct {
	db *gorm.DB
}

func NewAssignmentHandler(db *gorm.DB) *AssignmentHandler {
	return &AssignmentHandler{db: db}
}

type CreateAssignmentRequest struct {
	EmployeeID uint  `json:"employee_id" binding:"required"`
	ServiceID  uint  `json:"service_id" binding:"required"`
	ShiftID    *uint `json:"shift_id"`
}

func (h *AssignmentHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	q := h.db.
		Preload("Employee").
		Where("tenant_id = ?", tenantID)

	if serviceIDStr := c.Query("service_id"); serviceIDStr != "" {
		serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
			return
		}
		q = q.Where("service_id = ?", serviceID)
	}

	var assignments []models.EmployeeAssignment
	if err := q.Order("id ASC").Find(&assignments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_assignments", "Could not list assignments.")
		return
	}

	httpresp.List(c, assignments)
}

func (h *AssignmentHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var employee models.User
	if err := h.db.
		Where("id = ? AND tenant_id = ? AND role = ?", req.EmployeeID, tenantID, models.RoleEmployee).
		First(&employee).Error; err != nil {
		httperr.BadRequest(c, "employee_not_found", "Unknown employee for this tenant.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND tenant_id = ?", req.ServiceID, tenantID).
		First(&service).Error; err != nil {
		httperr.BadRequest(c, "service_not_found", "Unknown service for this tenant.")
		return
	}

	if req.ShiftID != nil {
		var shift models.Shift
		if err := h.db.
			Where("id = ? AND tenant_id = ? AND service_id = ?", *req.ShiftID, tenantID, service.ID).
			First(&shift).Error; err != nil {
			httperr.BadRequest(c, "shift_not_found", "Shift does not belong to the service.")
			return
		}
	}

	assignment := models.EmployeeAssignment{
		TenantID:   tenantID,
		EmployeeID: employee.ID,
		ServiceID:  service.ID,
		ShiftID:    req.ShiftID,
	}

	if err := h.db.Create(&assignment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_assignment", "Could not create assignment.")
		return
	}

	writeAudit(h.db, tenantID, &userID, "assignment_created", "assignment", &assignment.ID, nil)

	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_assignment_id", "Invalid assignment id.")
		return
	}

	res := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.EmployeeAssignment{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_assignment", "Could not delete assignment.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "assignment_not_found", "Assignment not found.")
		return
	}

	assignmentID := uint(id)
	writeAudit(h.db, tenantID, &userID, "assignment_deleted", "assignment", &assignmentID, nil)

	c.Status(http.StatusNoContent)
}

// ListEmployees lists the tenant's assignable staff.
func (h *AssignmentHandler) ListEmployees(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var employees []models.User
	if err := h.db.
		Where("tenant_id = ? AND role = ?", tenantID, models.RoleEmployee).
		Order("id ASC").
		Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Could not list employees.")
		return
	}

	httpresp.List(c, employees)
}
