package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookati/booking-api/internal/httperr"
	"github.com/bookati/booking-api/internal/httpresp"
	"github.com/bookati/booking-api/internal/middleware"
	ucBooking "github.com/bookati/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	cancelUC  *ucBooking.CancelBooking
	checkInUC *ucBooking.CheckInBooking
	listUC    *ucBooking.ListBookingsByDate
}

func NewBookingHandler(
	cancelUC *ucBooking.CancelBooking,
	checkInUC *ucBooking.CheckInBooking,
	listUC *ucBooking.ListBookingsByDate,
) *BookingHandler {
	return &BookingHandler{
		cancelUC:  cancelUC,
		checkInUC: checkInUC,
		listUC:    listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CheckInRequest struct {
	TicketCode string `json:"ticket_code" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "date query param is required.")
		return
	}

	date, err := parseDateUTC(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Dates must be YYYY-MM-DD.")
		return
	}

	bookings, err := h.listUC.Execute(c.Request.Context(), tenantID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), tenantID, userID, uint(id))
	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.Conflict(c, "invalid_state", "Booking cannot be cancelled in its current state.")
			return
		}
		httperr.Internal(c, "cancel_failed", "Could not cancel booking.")
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// CHECK-IN (QR ticket)
// ======================================================

func (h *BookingHandler) CheckIn(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.checkInUC.Execute(c.Request.Context(), tenantID, userID, req.TicketCode)
	if err != nil {
		if httperr.IsBusiness(err, "ticket_not_found") {
			httperr.NotFound(c, "ticket_not_found", "Unknown ticket code.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.Conflict(c, "invalid_state", "Ticket already used or booking cancelled.")
			return
		}
		httperr.Internal(c, "checkin_failed", "Could not check in booking.")
		return
	}

	c.JSON(http.StatusOK, b)
}
