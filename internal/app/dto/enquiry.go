package dto

import (
	"time"

	domainenquiry "villastay/internal/domain/enquiry"
)

type EnquiryDates struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

type EnquirySummary struct {
	ID          string        `json:"id"`
	VillaID     string        `json:"villa_id"`
	VillaName   string        `json:"villa_name"`
	UserName    string        `json:"user_name"`
	Email       string        `json:"email,omitempty"`
	Phone       string        `json:"phone,omitempty"`
	Dates       *EnquiryDates `json:"dates,omitempty"`
	Guests      int           `json:"guests"`
	Message     string        `json:"message"`
	Status      string        `json:"status"`
	BookingType string        `json:"booking_type"`
	Source      string        `json:"source"`
	IsGuest     bool          `json:"is_guest"`
	CreatedAt   time.Time     `json:"created_at"`
	ConfirmedAt time.Time     `json:"confirmed_at,omitempty"`
	CancelledAt time.Time     `json:"cancelled_at,omitempty"`
}

type EnquiryCollection struct {
	Items []EnquirySummary `json:"items"`
}

func MapEnquirySummary(e *domainenquiry.Enquiry) EnquirySummary {
	if e == nil {
		return EnquirySummary{}
	}
	out := EnquirySummary{
		ID:          string(e.ID),
		VillaID:     e.VillaID,
		VillaName:   e.VillaName,
		UserName:    e.UserName,
		Email:       e.Email,
		Phone:       e.Phone,
		Guests:      e.Guests,
		Message:     e.Message,
		Status:      string(e.Status),
		BookingType: string(e.BookingType),
		Source:      e.Source,
		IsGuest:     e.IsGuest,
		CreatedAt:   e.CreatedAt,
		ConfirmedAt: e.ConfirmedAt,
		CancelledAt: e.CancelledAt,
	}
	if e.Dates != nil {
		out.Dates = &EnquiryDates{CheckIn: e.Dates.CheckIn, CheckOut: e.Dates.CheckOut}
	}
	return out
}

func MapEnquiryCollection(items []*domainenquiry.Enquiry) EnquiryCollection {
	out := EnquiryCollection{Items: make([]EnquirySummary, 0, len(items))}
	for _, e := range items {
		out.Items = append(out.Items, MapEnquirySummary(e))
	}
	return out
}
