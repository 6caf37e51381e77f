package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"villastay/internal/app/dto"
	"villastay/internal/app/services/availability"
)

type AvailabilityHandler struct {
	Availability *availability.Service
}

func (h AvailabilityHandler) BlockedDates(c *gin.Context) {
	villaID := c.Param("id")
	blocks := h.Availability.BlockedDates(c.Request.Context(), villaID)
	c.JSON(http.StatusOK, dto.MapCalendar(villaID, blocks))
}

// Check answers either a single-day probe (?date=) or a range probe
// (?check_in=&check_out=).
func (h AvailabilityHandler) Check(c *gin.Context) {
	villaID := c.Param("id")
	ctx := c.Request.Context()

	if raw := c.Query("date"); raw != "" {
		date, err := parseDateParam(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"villa_id":  villaID,
			"date":      date.Format("2006-01-02"),
			"available": h.Availability.IsDateAvailable(ctx, villaID, date),
		})
		return
	}

	checkIn, err := parseDateParam(c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_in"})
		return
	}
	checkOut, err := parseDateParam(c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid check_out"})
		return
	}
	result := h.Availability.CheckRangeAvailability(ctx, villaID, checkIn, checkOut)
	out := dto.RangeAvailability{
		VillaID:     villaID,
		Available:   result.Available,
		Conflicting: make([]dto.CalendarBlock, 0, len(result.Conflicting)),
	}
	for _, r := range result.Conflicting {
		out.Conflicting = append(out.Conflicting, dto.CalendarBlock{
			CheckIn:  r.CheckIn,
			CheckOut: r.CheckOut,
		})
	}
	c.JSON(http.StatusOK, out)
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
