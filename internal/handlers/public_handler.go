package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookati/booking-api/internal/audit"
	"github.com/bookati/booking-api/internal/cache"
	"github.com/bookati/booking-api/internal/httperr"
	infraRepo "github.com/bookati/booking-api/internal/infra/repository"
	"github.com/bookati/booking-api/internal/models"
	ucBooking "github.com/bookati/booking-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache *cache.Availability
}

func NewPublicHandler(db *gorm.DB, dispatcher *audit.Dispatcher, avCache *cache.Availability) *PublicHandler {
	return &PublicHandler{
		db:    db,
		audit: dispatcher,
		cache: avCache,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	SlotID        uint   `json:"slot_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	Notes         string `json:"notes"`
}

type PublicSlotDTO struct {
	ID             uint   `json:"id"`
	Date           string `json:"date"`
	Start          string `json:"start"`
	End            string `json:"end"`
	RemainingSeats int    `json:"remaining_seats"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var tenant models.Tenant
	if err := h.db.Where("slug = ?", slug).First(&tenant).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Unknown booking page.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("tenant_id = ? AND active = true", tenant.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tenant":   tenant,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (generated slots, redis-cached)
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "date and service_id are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var tenant models.Tenant
	if err := h.db.Where("slug = ?", slug).First(&tenant).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Unknown booking page.")
		return
	}

	date, err := parseDateUTC(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Dates must be YYYY-MM-DD.")
		return
	}

	ctx := c.Request.Context()

	if payload, ok := h.cache.Get(ctx, tenant.ID, uint(serviceID), dateStr); ok {
		c.Data(http.StatusOK, "application/json", payload)
		return
	}

	repo := infraRepo.NewScheduleGormRepository(h.db)
	slots, err := repo.ListAvailableSlots(ctx, tenant.ID, uint(serviceID), date)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Could not load availability.")
		return
	}

	out := make([]PublicSlotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, PublicSlotDTO{
			ID:             s.ID,
			Date:           dateStr,
			Start:          s.StartTime,
			End:            s.EndTime,
			RemainingSeats: s.AvailableCapacity - s.BookedCount,
		})
	}

	body := gin.H{
		"date":  dateStr,
		"slots": out,
	}

	if payload, err := json.Marshal(body); err == nil {
		h.cache.Set(ctx, tenant.ID, uint(serviceID), dateStr, payload)
	}

	c.JSON(http.StatusOK, body)
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	var tenant models.Tenant
	if err := h.db.Where("slug = ?", slug).First(&tenant).Error; err != nil {
		httperr.NotFound(c, "tenant_not_found", "Unknown booking page.")
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := ucBooking.NewCreateBooking(repo, h.audit)

	b, err := uc.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			TenantID:      tenant.ID,
			SlotID:        req.SlotID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			Notes:         req.Notes,
		},
	)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	// the slot's seat count changed, drop the cached availability
	scheduleRepo := infraRepo.NewScheduleGormRepository(h.db)
	if shift, serr := scheduleRepo.GetShiftWithService(c.Request.Context(), tenant.ID, b.Slot.ShiftID); serr == nil {
		h.cache.Invalidate(
			c.Request.Context(),
			tenant.ID,
			shift.ServiceID,
			b.Slot.SlotDate.Format("2006-01-02"),
		)
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":     b,
		"ticket_code": b.TicketCode,
	})
}

func mapBookingErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_not_found"):
		httperr.NotFound(c, "slot_not_found", "Slot not found.")
	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.Conflict(c, "slot_unavailable", "Slot is no longer available.")
	case httperr.IsBusiness(err, "slot_full"):
		httperr.Conflict(c, "slot_full", "Slot is fully booked.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "Slot starts too soon to book.")
	default:
		httperr.Internal(c, "booking_failed", "Could not create booking.")
	}
}
