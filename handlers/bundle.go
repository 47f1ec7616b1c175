// File: superclinic/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Chat endpoints
	ChatHandler      gin.HandlerFunc
	ClearChatHandler gin.HandlerFunc

	// Doctor endpoints
	ListDoctorsHandler        gin.HandlerFunc
	DoctorAvailabilityHandler gin.HandlerFunc
}
