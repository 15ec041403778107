package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/bookati/booking-api/internal/domain/schedule"
	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/httpresp"
	"github.com/bookati/booking-api/internal/middleware"
	"github.com/bookati/booking-api/internal/models"
	ucSchedule "github.com/bookati/booking-api/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ShiftHandler struct {
	db       *gorm.DB
	generate *ucSchedule.GenerateSlots
	list     *ucSchedule.ListSlots
}

func NewShiftHandler(
	db *gorm.DB,
	generate *ucSchedule.GenerateSlots,
	list *ucSchedule.ListSlots,
) *ShiftHandler {
	return &ShiftHandler{
		db:       db,
		generate: generate,
		list:     list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateShiftRequest struct {
	ServiceID    uint   `json:"service_id" binding:"required"`
	StartTimeUTC string `json:"start_time_utc" binding:"required"`
	EndTimeUTC   string `json:"end_time_utc" binding:"required"`
	Weekdays     []int  `json:"weekdays" binding:"required,min=1"`
}

type UpdateShiftRequest struct {
	StartTimeUTC *string `json:"start_time_utc"`
	EndTimeUTC   *string `json:"end_time_utc"`
	Weekdays     *[]int  `json:"weekdays"`
	Active       *bool   `json:"active"`
}

type GenerateSlotsRequest struct {
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`   // YYYY-MM-DD
}

func validWeekdays(days []int) bool {
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

func validShiftWindow(start, end string) bool {
	s, err := parseTimeOfDay(start)
	if err != nil {
		return false
	}
	e, err := parseTimeOfDay(end)
	if err != nil {
		return false
	}
	return s < e
}

// ======================================================
// CRUD
// ======================================================

func (h *ShiftHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var shifts []models.Shift
	if err := h.db.
		Preload("Service").
		Where("tenant_id = ?", tenantID).
		Order("id ASC").
		Find(&shifts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_shifts", "Could not list shifts.")
		return
	}

	httpresp.List(c, shifts)
}

func (h *ShiftHandler) Create(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validWeekdays(req.Weekdays) {
		httperr.BadRequest(c, "invalid_weekdays", "Weekdays must be 0 (Sunday) to 6 (Saturday).")
		return
	}

	if !validShiftWindow(req.StartTimeUTC, req.EndTimeUTC) {
		httperr.BadRequest(c, "invalid_shift_window", "Times must be HH:MM with start before end.")
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND tenant_id = ?", req.ServiceID, tenantID).
		First(&service).Error; err != nil {
		httperr.BadRequest(c, "service_not_found", "Unknown service for this tenant.")
		return
	}

	shift := models.Shift{
		TenantID:     tenantID,
		ServiceID:    service.ID,
		StartTimeUTC: req.StartTimeUTC,
		EndTimeUTC:   req.EndTimeUTC,
		Weekdays:     models.WeekdaysJSON(req.Weekdays),
		Active:       true,
	}

	if err := h.db.Create(&shift).Error; err != nil {
		httperr.Internal(c, "failed_to_create_shift", "Could not create shift.")
		return
	}

	writeAudit(h.db, tenantID, &userID, "shift_created", "shift", &shift.ID, nil)

	c.JSON(http.StatusCreated, shift)
}

func (h *ShiftHandler) Update(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_shift_id", "Invalid shift id.")
		return
	}

	var shift models.Shift
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&shift).Error; err != nil {
		httperr.NotFound(c, "shift_not_found", "Shift not found.")
		return
	}

	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.StartTimeUTC != nil {
		shift.StartTimeUTC = *req.StartTimeUTC
	}
	if req.EndTimeUTC != nil {
		shift.EndTimeUTC = *req.EndTimeUTC
	}
	if !validShiftWindow(shift.StartTimeUTC, shift.EndTimeUTC) {
		httperr.BadRequest(c, "invalid_shift_window", "Times must be HH:MM with start before end.")
		return
	}
	if req.Weekdays != nil {
		if !validWeekdays(*req.Weekdays) {
			httperr.BadRequest(c, "invalid_weekdays", "Weekdays must be 0 (Sunday) to 6 (Saturday).")
			return
		}
		shift.Weekdays = models.WeekdaysJSON(*req.Weekdays)
	}
	if req.Active != nil {
		shift.Active = *req.Active
	}

	if err := h.db.Save(&shift).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shift", "Could not save shift.")
		return
	}

	writeAudit(h.db, tenantID, &userID, "shift_updated", "shift", &shift.ID, nil)

	c.JSON(http.StatusOK, shift)
}

func (h *ShiftHandler) Delete(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_shift_id", "Invalid shift id.")
		return
	}

	res := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Shift{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_shift", "Could not delete shift.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "shift_not_found", "Shift not found.")
		return
	}

	shiftID := uint(id)
	writeAudit(h.db, tenantID, &userID, "shift_deleted", "shift", &shiftID, nil)

	c.Status(http.StatusNoContent)
}

// ======================================================
// SLOT GENERATION
// ======================================================

// GenerateSlots regenerates the shift's bookable slots for a date range.
// The count is always returned: zero is a valid outcome the admin needs
// to see, distinct from an unknown shift.
func (h *ShiftHandler) GenerateSlots(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_shift_id", "Invalid shift id.")
		return
	}

	var req GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	startDate, err := parseDateUTC(req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "Dates must be YYYY-MM-DD.")
		return
	}
	endDate, err := parseDateUTC(req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_date", "Dates must be YYYY-MM-DD.")
		return
	}

	count, err := h.generate.Execute(
		c.Request.Context(),
		ucSchedule.GenerateSlotsInput{
			TenantID:  tenantID,
			ShiftID:   uint(id),
			StartDate: startDate,
			EndDate:   endDate,
		},
	)
	if err != nil {
		if errors.Is(err, domain.ErrShiftNotFound) {
			httperr.NotFound(c, "shift_not_found", "Shift not found.")
			return
		}
		if httperr.IsBusiness(err, "invalid_date_range") {
			httperr.BadRequest(c, "invalid_date_range", "start_date must not be after end_date.")
			return
		}
		httperr.Internal(c, "generation_failed", "Could not generate slots.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shift_id":        uint(id),
		"start_date":      req.StartDate,
		"end_date":        req.EndDate,
		"generated_count": count,
	})
}

// ======================================================
// SLOT LISTING
// ======================================================

func (h *ShiftHandler) ListSlots(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_shift_id", "Invalid shift id.")
		return
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		httperr.BadRequest(c, "missing_params", "from and to dates are required.")
		return
	}

	from, err := parseDateUTC(fromStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_from", "Dates must be YYYY-MM-DD.")
		return
	}
	to, err := parseDateUTC(toStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_to", "Dates must be YYYY-MM-DD.")
		return
	}

	slots, err := h.list.Execute(c.Request.Context(), tenantID, uint(id), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrShiftNotFound) {
			httperr.NotFound(c, "shift_not_found", "Shift not found.")
			return
		}
		if httperr.IsBusiness(err, "invalid_date_range") {
			httperr.BadRequest(c, "invalid_date_range", "from must not be after to.")
			return
		}
		httperr.Internal(c, "failed_to_list_slots", "Could not list slots.")
		return
	}

	httpresp.List(c, slots)
}
