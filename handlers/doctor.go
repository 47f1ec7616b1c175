package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"superclinic/services/booking"
	"superclinic/utils"
)

// ListDoctorsHandler returns the full doctor directory.
func ListDoctorsHandler(svc booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		speciality := c.Query("speciality")
		if speciality == "" {
			speciality = c.Query("specialty")
		}

		if speciality != "" {
			result, err := svc.FilterDoctors(c.Request.Context(), speciality)
			if err != nil {
				utils.GetLogger().Error("Failed to filter doctors", zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Failed to load doctors.")
				return
			}
			c.JSON(http.StatusOK, result)
			return
		}

		result, err := svc.GetDoctors(c.Request.Context())
		if err != nil {
			utils.GetLogger().Error("Failed to list doctors", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load doctors.")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// DoctorAvailabilityHandler returns open slots for one doctor, optionally
// narrowed by a date query parameter.
func DoctorAvailabilityHandler(svc booking.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		date := c.Query("date")
		includeBooked := strings.EqualFold(c.Query("include_booked"), "true")

		result, err := svc.GetDoctorAvailability(c.Request.Context(), name, date, includeBooked)
		if err != nil {
			var inputErr *booking.InputError
			if errors.As(err, &inputErr) {
				utils.JSONError(c, http.StatusBadRequest, inputErr.Message)
				return
			}
			utils.GetLogger().Error("Failed to load doctor availability",
				zap.String("doctor", name), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load availability.")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
