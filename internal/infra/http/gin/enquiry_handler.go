package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"villastay/internal/app/dto"
	enquiryservice "villastay/internal/app/services/enquiry"
)

type EnquiryHandler struct {
	Enquiries *enquiryservice.Service
}

type submitEnquiryRequest struct {
	VillaID   string     `json:"villa_id"`
	VillaName string     `json:"villa_name"`
	UserName  string     `json:"user_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	CheckIn   *time.Time `json:"check_in"`
	CheckOut  *time.Time `json:"check_out"`
	Guests    int        `json:"guests"`
	Message   string     `json:"message"`
	Source    string     `json:"source"`
	IsGuest   bool       `json:"is_guest"`
}

func (h EnquiryHandler) Submit(c *gin.Context) {
	var req submitEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	params := enquiryservice.SubmitParams{
		VillaID:   req.VillaID,
		VillaName: req.VillaName,
		UserName:  req.UserName,
		Email:     req.Email,
		Phone:     req.Phone,
		Guests:    req.Guests,
		Message:   req.Message,
		Source:    req.Source,
		IsGuest:   req.IsGuest,
	}
	if req.CheckIn != nil {
		params.CheckIn = *req.CheckIn
	}
	if req.CheckOut != nil {
		params.CheckOut = *req.CheckOut
	}
	id, err := h.Enquiries.Submit(c.Request.Context(), params)
	if err != nil {
		respondEnquiryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": string(id)})
}

// Lookup serves the guest "my enquiries" page. Email and phone are
// alternatives; supplying both returns the union.
func (h EnquiryHandler) Lookup(c *gin.Context) {
	email := c.Query("email")
	phone := c.Query("phone")
	if email == "" && phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email or phone is required"})
		return
	}
	items, err := h.Enquiries.ByEmailOrPhone(c.Request.Context(), email, phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load enquiries"})
		return
	}
	c.JSON(http.StatusOK, dto.MapEnquiryCollection(items))
}

var _ EnquiryHTTP = EnquiryHandler{}
