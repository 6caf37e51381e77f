package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
)

// ContactHandler serves the contact details the booking widget renders:
// the WhatsApp number enquiries can be continued on and the admin
// mailbox behind manual blocks.
type ContactHandler struct {
	WhatsAppNumber string
	Email          string
}

func (h ContactHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"whatsapp_number": h.WhatsAppNumber,
		"email":           h.Email,
	})
}

var _ ContactHTTP = ContactHandler{}
