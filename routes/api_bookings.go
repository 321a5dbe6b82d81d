package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"servicepro-server/apperr"
	"servicepro-server/middleware"
	"servicepro-server/models"
	"servicepro-server/services"
)

type createBookingRequest struct {
	ServiceID       uint   `json:"service_id" binding:"required"`
	BookingDate     string `json:"booking_date" binding:"required"`
	SpecialRequests string `json:"special_requests"`
}

func (a *App) apiCreateBooking(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	when, err := parseBookingDate(req.BookingDate)
	if err != nil {
		respondError(c, apperr.Validation("booking_date must be RFC 3339 or YYYY-MM-DDTHH:MM"))
		return
	}
	booking, err := a.bookings.Create(actor, services.CreateBookingInput{
		ServiceID:       req.ServiceID,
		BookingDate:     when,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, booking)
}

// parseBookingDate accepts RFC 3339 plus the datetime-local format browsers
// submit without a zone, which is taken as server-local time.
func parseBookingDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", raw, time.Local)
}

func (a *App) apiGetBooking(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := a.bookings.Get(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, booking)
}

func (a *App) apiListUserBookings(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := a.bookings.ListForCustomer(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}

func (a *App) apiListHandymanBookings(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := a.bookings.ListForHandyman(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}

func (a *App) apiListAllBookings(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	list, err := a.bookings.ListAll(actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, list)
}

func (a *App) apiApproveBooking(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.bookings.Approve(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "booking approved"})
}

func (a *App) apiDeclineBooking(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := a.bookings.Decline(actor, id); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "booking declined"})
}

type assignHandymanRequest struct {
	HandymanID uint `json:"handyman_id" binding:"required"`
}

func (a *App) apiAssignHandyman(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req assignHandymanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	if err := a.bookings.AssignHandyman(actor, id, req.HandymanID); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "handyman assigned"})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (a *App) apiUpdateBookingStatus(c *gin.Context) {
	actor, _ := middleware.CurrentActor(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("invalid request body"))
		return
	}
	if err := a.bookings.UpdateStatus(actor, id, models.BookingStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "status updated"})
}
