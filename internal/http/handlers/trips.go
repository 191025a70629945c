package handlers

import (
	"net/http"
	"strconv"

	"safarpay/internal/domain/models"
	"safarpay/internal/http/middleware"
	"safarpay/internal/repositories"
	"safarpay/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/public
//
// The catalog is wrapped in a trips envelope; older clients also handled the
// bare-array shape, so the envelope key stays stable.
func GetPublicTrips(c *gin.Context) {
	trips, err := repositories.TripRepository{}.ListPublic()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

type createTripRequest struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Price       float64 `json:"price"`
	SeatsTotal  int     `json:"seatsTotal"`
}

// POST /api/trips (owner)
func CreateTrip(c *gin.Context) {
	var req createTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	trip := models.Trip{
		OwnerID:     middleware.GetUserID(c),
		Origin:      utils.NormalizeSpace(req.Origin),
		Destination: utils.NormalizeSpace(req.Destination),
		Price:       req.Price,
		SeatsTotal:  req.SeatsTotal,
	}
	id, err := repositories.TripRepository{}.Create(trip)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	trip.ID = id
	trip.SeatsLeft = req.SeatsTotal
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// GET /api/trips/mine (owner)
func GetMyTrips(c *gin.Context) {
	trips, err := repositories.TripRepository{}.ListByOwner(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// DELETE /api/trips/:id (owner)
func DeleteTrip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	if err := (repositories.TripRepository{}).Delete(id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
