package handlers

import (
	"net/http"
	"strconv"

	"safarpay/internal/http/middleware"
	"safarpay/internal/repositories"
	"safarpay/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		BookingRepo: repositories.BookingRepository{},
		TripRepo:    repositories.TripRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
}

// POST /api/bookings/registerBooking
//
// Called after the client's gateway payment succeeded. The service recomputes
// the amounts and treats a repeated transaction id as a retry, not a new
// booking.
func RegisterBooking(c *gin.Context) {
	var req services.RegisterBookingInput
	if !BindJSONOrError(c, &req) {
		return
	}

	booking, err := bookingService(c).Register(middleware.GetUserID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// GET /api/bookings/mine
func GetMyBookings(c *gin.Context) {
	bookings, err := bookingService(c).ListMine(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

// GET /api/bookings/:id/eticket
func GetBookingETicket(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	svc := services.ReceiptService{
		BookingRepo: repositories.BookingRepository{},
		TripRepo:    repositories.TripRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
	booking, err := repositories.BookingRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.RiderID != middleware.GetUserID(c) {
		RespondError(c, http.StatusForbidden, "not your booking")
		return
	}

	pdf, filename, err := svc.BookingETicket(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
