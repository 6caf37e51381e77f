package dto

import (
	"time"

	"villastay/internal/app/services/availability"
)

type CalendarBlock struct {
	EnquiryID   string    `json:"enquiry_id"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	GuestName   string    `json:"guest_name"`
	BookingType string    `json:"booking_type"`
}

type Calendar struct {
	VillaID string          `json:"villa_id"`
	Blocks  []CalendarBlock `json:"blocks"`
}

type RangeAvailability struct {
	VillaID     string          `json:"villa_id"`
	Available   bool            `json:"available"`
	Conflicting []CalendarBlock `json:"conflicting"`
}

func MapCalendar(villaID string, blocks []availability.BlockedDate) Calendar {
	out := Calendar{VillaID: villaID, Blocks: make([]CalendarBlock, 0, len(blocks))}
	for _, b := range blocks {
		out.Blocks = append(out.Blocks, CalendarBlock{
			EnquiryID:   string(b.EnquiryID),
			CheckIn:     b.CheckIn,
			CheckOut:    b.CheckOut,
			GuestName:   b.GuestName,
			BookingType: string(b.BookingType),
		})
	}
	return out
}
