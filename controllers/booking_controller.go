package controllers

import (
	"log"
	"net/http"

	"lodge-backend/models"
	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	UserID      uint                `json:"user_id" binding:"required"`
	Property    string              `json:"property" binding:"required"`
	Checkin     string              `json:"checkin" binding:"required"`
	Checkout    string              `json:"checkout" binding:"required"`
	GuestsCount int                 `json:"guests_count"`
	GuestList   []models.GuestEntry `json:"guest_list,omitempty"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	Inventory  *services.InventoryService
	Bookings   services.BookingRepository
	Properties services.PropertyRepository
	Gate       services.MemberGate
}

func NewBookingController(
	inventory *services.InventoryService,
	bookings services.BookingRepository,
	properties services.PropertyRepository,
	gate services.MemberGate,
) *BookingController {
	return &BookingController{
		Inventory:  inventory,
		Bookings:   bookings,
		Properties: properties,
		Gate:       gate,
	}
}

// CreateDayBooking handles POST /api/bookings/day
func (bc *BookingController) CreateDayBooking(c *gin.Context) {
	bc.create(c, models.ModeDay)
}

// CreateBuyoutBooking handles POST /api/bookings/buyout
func (bc *BookingController) CreateBuyoutBooking(c *gin.Context) {
	bc.create(c, models.ModeBuyout)
}

func (bc *BookingController) create(c *gin.Context, mode string) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	checkin, err := utils.ParseDate(req.Checkin)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkin date")
		return
	}
	checkout, err := utils.ParseDate(req.Checkout)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid checkout date")
		return
	}
	if req.GuestsCount <= 0 {
		req.GuestsCount = 1
	}

	property, err := bc.Properties.PropertyByCode(c.Request.Context(), req.Property)
	if err != nil {
		log.Printf("resolve property %q: %v", req.Property, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load property")
		return
	}
	if property == nil {
		utils.JSONError(c, http.StatusNotFound, "unknown property")
		return
	}

	if ok, reason := bc.Gate.CanBook(c.Request.Context(), req.UserID); !ok {
		if reason == "" {
			reason = "member is not eligible to book"
		}
		utils.JSONError(c, http.StatusForbidden, reason)
		return
	}

	var booking *models.Booking
	if mode == models.ModeBuyout {
		booking, err = bc.Inventory.CreateBuyoutBooking(c.Request.Context(), req.UserID, property.ID, checkin, checkout, req.GuestsCount, req.GuestList)
	} else {
		booking, err = bc.Inventory.CreatePerGuestBooking(c.Request.Context(), req.UserID, property.ID, checkin, checkout, req.GuestsCount, req.GuestList)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetBookingByReference handles GET /api/bookings/:reference
func (bc *BookingController) GetBookingByReference(c *gin.Context) {
	reference := c.Param("reference")
	booking, err := bc.Bookings.BookingByReference(c.Request.Context(), reference)
	if err != nil {
		log.Printf("get booking %q: %v", reference, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	if booking == nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}
