package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"lodge-backend/models"
	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	Availability *services.AvailabilityService
	Seasons      *services.SeasonService
	Pricing      *services.PriceService
	Properties   services.PropertyRepository
}

func NewAvailabilityController(
	availability *services.AvailabilityService,
	seasons *services.SeasonService,
	pricing *services.PriceService,
	properties services.PropertyRepository,
) *AvailabilityController {
	return &AvailabilityController{
		Availability: availability,
		Seasons:      seasons,
		Pricing:      pricing,
		Properties:   properties,
	}
}

// resolveProperty turns the ?property= query value into a property row.
func (ac *AvailabilityController) resolveProperty(c *gin.Context) (*models.Property, bool) {
	code := c.Query("property")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "property is required")
		return nil, false
	}
	property, err := ac.Properties.PropertyByCode(c.Request.Context(), code)
	if err != nil {
		log.Printf("resolve property %q: %v", code, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load property")
		return nil, false
	}
	if property == nil {
		utils.JSONError(c, http.StatusNotFound, "unknown property")
		return nil, false
	}
	return property, true
}

// GetAvailability handles GET /api/availability?property=&start=&end=
func (ac *AvailabilityController) GetAvailability(c *gin.Context) {
	property, ok := ac.resolveProperty(c)
	if !ok {
		return
	}
	start, err := utils.ParseDate(c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start date")
		return
	}
	end, err := utils.ParseDate(c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end date")
		return
	}

	days, err := ac.Availability.DailyAvailability(c.Request.Context(), property.ID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, days)
}

// GetSeasonInfo handles GET /api/season?property=&date=
func (ac *AvailabilityController) GetSeasonInfo(c *gin.Context) {
	property, ok := ac.resolveProperty(c)
	if !ok {
		return
	}
	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date")
		return
	}

	info, err := ac.Seasons.CurrentSeasonInfo(c.Request.Context(), property.ID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	horizon, err := ac.Seasons.MaxBookingHorizon(c.Request.Context(), property.ID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"season":              info.Season,
		"max_booking_horizon": horizon.Format(utils.DateLayout),
	})
}

// GetQuote handles GET /api/quote?property=&checkin=&checkout=&mode=&guests=
func (ac *AvailabilityController) GetQuote(c *gin.Context) {
	property, ok := ac.resolveProperty(c)
	if !ok {
		return
	}
	checkin, err := utils.ParseDate(c.Query("checkin"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkin date")
		return
	}
	checkout, err := utils.ParseDate(c.Query("checkout"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkout date")
		return
	}
	mode := c.DefaultQuery("mode", models.ModeDay)
	if mode != models.ModeDay && mode != models.ModeBuyout {
		utils.JSONError(c, http.StatusBadRequest, "mode must be day or buyout")
		return
	}
	guests := 1
	if raw := c.Query("guests"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid guests")
			return
		}
		guests = n
	}

	total, err := ac.Pricing.CalculateBookingPrice(c.Request.Context(), property.ID, checkin, checkout, mode, guests)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"property":    property.Code,
		"mode":        mode,
		"guests":      guests,
		"nights":      utils.NightsBetween(checkin, checkout),
		"total_cents": total,
	})
}

// respondServiceError maps the core's error kinds onto HTTP statuses and
// their single user-facing messages; anything unrecognized is a 500.
func respondServiceError(c *gin.Context, err error) {
	msg, known := services.UserMessage(err)
	if !known {
		log.Printf("unhandled service error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
		return
	}
	switch {
	case errors.Is(err, services.ErrInvalidParameters):
		utils.JSONError(c, http.StatusBadRequest, msg)
	case errors.Is(err, services.ErrNoPricingRule):
		log.Printf("pricing configuration gap: %v", err)
		utils.JSONError(c, http.StatusConflict, msg)
	default:
		// Capacity loss, unavailability and race loss are all conflicts
		// the caller resolves by refreshing availability.
		utils.JSONError(c, http.StatusConflict, msg)
	}
}
