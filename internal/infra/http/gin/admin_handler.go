package ginserver

import (
	"errors"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"villastay/internal/app/dto"
	bookingservice "villastay/internal/app/services/booking"
	enquiryservice "villastay/internal/app/services/enquiry"
	villaservice "villastay/internal/app/services/villa"
	domainenquiry "villastay/internal/domain/enquiry"
	domainvilla "villastay/internal/domain/villa"
)

type AdminHandler struct {
	Bookings  *bookingservice.Service
	Enquiries *enquiryservice.Service
	Villas    *villaservice.Service
}

func (h AdminHandler) ListEnquiries(c *gin.Context) {
	items, err := h.Enquiries.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load enquiries"})
		return
	}
	c.JSON(http.StatusOK, dto.MapEnquiryCollection(items))
}

func (h AdminHandler) ListBookings(c *gin.Context) {
	items := h.Bookings.AllBookings(c.Request.Context())
	c.JSON(http.StatusOK, dto.MapEnquiryCollection(items))
}

// Conflicts previews which pending enquiries would be invalidated by
// confirming the given one, without changing anything.
func (h AdminHandler) Conflicts(c *gin.Context) {
	conflicts, err := h.Bookings.ConflictsFor(c.Request.Context(), domainenquiry.ID(c.Param("id")))
	if err != nil {
		respondEnquiryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflicts": dto.MapEnquiryCollection(conflicts).Items})
}

type confirmRequest struct {
	AcknowledgeConflicts bool `json:"acknowledge_conflicts"`
}

func (h AdminHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	result, err := h.Bookings.ConfirmWithResolution(c.Request.Context(), domainenquiry.ID(c.Param("id")), req.AcknowledgeConflicts)
	if err != nil {
		if errors.Is(err, bookingservice.ErrUnacknowledgedConflicts) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "conflicting pending enquiries require acknowledgement",
				"conflicts": dto.MapEnquiryCollection(result.Conflicts).Items,
			})
			return
		}
		respondEnquiryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"enquiry":     dto.MapEnquirySummary(result.Enquiry),
		"invalidated": len(result.Notified),
	})
}

func (h AdminHandler) MarkContacted(c *gin.Context) {
	e, err := h.Bookings.MarkContacted(c.Request.Context(), domainenquiry.ID(c.Param("id")))
	if err != nil {
		respondEnquiryError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapEnquirySummary(e))
}

func (h AdminHandler) Cancel(c *gin.Context) {
	e, err := h.Bookings.CancelEnquiry(c.Request.Context(), domainenquiry.ID(c.Param("id")))
	if err != nil {
		respondEnquiryError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapEnquirySummary(e))
}

// DeleteBooking cancels a confirmed booking. The record stays in the
// store with its dates released.
func (h AdminHandler) DeleteBooking(c *gin.Context) {
	e, err := h.Bookings.DeleteBooking(c.Request.Context(), domainenquiry.ID(c.Param("id")))
	if err != nil {
		respondEnquiryError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapEnquirySummary(e))
}

type createBlockRequest struct {
	VillaID   string    `json:"villa_id"`
	VillaName string    `json:"villa_name"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Reason    string    `json:"reason"`
}

func (h AdminHandler) CreateBlock(c *gin.Context) {
	var req createBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.Bookings.CreateManualBlock(c.Request.Context(), bookingservice.ManualBlockParams{
		VillaID:   req.VillaID,
		VillaName: req.VillaName,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Reason:    req.Reason,
	})
	if err != nil {
		respondEnquiryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": string(id)})
}

type createVillaRequest struct {
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Description   string   `json:"description"`
	PricePerNight int64    `json:"price_per_night"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	MaxGuests     int      `json:"max_guests"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
	IsFeatured    bool     `json:"is_featured"`
	IsTrending    bool     `json:"is_trending"`
}

func (h AdminHandler) CreateVilla(c *gin.Context) {
	var req createVillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := h.Villas.Create(c.Request.Context(), domainvilla.CreateParams{
		Name:          req.Name,
		Location:      req.Location,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MaxGuests:     req.MaxGuests,
		Amenities:     req.Amenities,
		Images:        req.Images,
		IsFeatured:    req.IsFeatured,
		IsTrending:    req.IsTrending,
	})
	if err != nil {
		respondVillaError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MapVillaSummary(v))
}

type updateVillaRequest struct {
	Name          *string  `json:"name"`
	Location      *string  `json:"location"`
	Description   *string  `json:"description"`
	PricePerNight *int64   `json:"price_per_night"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	MaxGuests     *int     `json:"max_guests"`
	Amenities     []string `json:"amenities"`
	IsFeatured    *bool    `json:"is_featured"`
	IsTrending    *bool    `json:"is_trending"`
}

func (h AdminHandler) UpdateVilla(c *gin.Context) {
	var req updateVillaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v, err := h.Villas.Update(c.Request.Context(), domainvilla.ID(c.Param("id")), villaservice.UpdateParams{
		Name:          req.Name,
		Location:      req.Location,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MaxGuests:     req.MaxGuests,
		Amenities:     req.Amenities,
		IsFeatured:    req.IsFeatured,
		IsTrending:    req.IsTrending,
	})
	if err != nil {
		respondVillaError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MapVillaSummary(v))
}

func (h AdminHandler) DeleteVilla(c *gin.Context) {
	if err := h.Villas.Delete(c.Request.Context(), domainvilla.ID(c.Param("id"))); err != nil {
		respondVillaError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AdminHandler) AddVillaPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	reader, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
		return
	}
	defer reader.Close()

	url, err := h.Villas.AddPhoto(c.Request.Context(), domainvilla.ID(c.Param("id")), file.Filename, reader, file.Header.Get("Content-Type"))
	if err != nil {
		respondVillaError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

var _ AdminHTTP = AdminHandler{}
