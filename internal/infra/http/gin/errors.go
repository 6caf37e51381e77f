package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	bookingservice "villastay/internal/app/services/booking"
	"villastay/internal/domain/daterange"
	domainenquiry "villastay/internal/domain/enquiry"
	domainvilla "villastay/internal/domain/villa"
)

func respondVillaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainvilla.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "villa not found"})
	case errors.Is(err, domainvilla.ErrNameRequired), errors.Is(err, domainvilla.ErrInvalidPrice):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func respondEnquiryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainenquiry.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "enquiry not found"})
	case errors.Is(err, domainenquiry.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, bookingservice.ErrDateConflict),
		errors.Is(err, bookingservice.ErrUnacknowledgedConflicts):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domainenquiry.ErrMessageRequired),
		errors.Is(err, domainenquiry.ErrPartialDates),
		errors.Is(err, bookingservice.ErrMissingDates),
		errors.Is(err, daterange.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
