package enquiry

import (
	"time"

	"villastay/internal/domain/daterange"
)

// Event is published after a lifecycle transition is persisted, feeding
// the downstream notification pipeline.
type Event interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

type Submitted struct {
	EnquiryID ID
	VillaID   string
	Email     string
	Dates     *daterange.DateRange
	At        time.Time
}

func (e Submitted) EventName() string     { return "enquiry.submitted" }
func (e Submitted) AggregateID() string   { return string(e.EnquiryID) }
func (e Submitted) OccurredAt() time.Time { return e.At }

type Contacted struct {
	EnquiryID ID
	VillaID   string
	At        time.Time
}

func (e Contacted) EventName() string     { return "enquiry.contacted" }
func (e Contacted) AggregateID() string   { return string(e.EnquiryID) }
func (e Contacted) OccurredAt() time.Time { return e.At }

type Confirmed struct {
	EnquiryID ID
	VillaID   string
	Dates     *daterange.DateRange
	At        time.Time
}

func (e Confirmed) EventName() string     { return "enquiry.confirmed" }
func (e Confirmed) AggregateID() string   { return string(e.EnquiryID) }
func (e Confirmed) OccurredAt() time.Time { return e.At }

type Cancelled struct {
	EnquiryID ID
	VillaID   string
	At        time.Time
}

func (e Cancelled) EventName() string     { return "enquiry.cancelled" }
func (e Cancelled) AggregateID() string   { return string(e.EnquiryID) }
func (e Cancelled) OccurredAt() time.Time { return e.At }

type DatesUnavailable struct {
	EnquiryID ID
	VillaID   string
	At        time.Time
}

func (e DatesUnavailable) EventName() string     { return "enquiry.dates_unavailable" }
func (e DatesUnavailable) AggregateID() string   { return string(e.EnquiryID) }
func (e DatesUnavailable) OccurredAt() time.Time { return e.At }

type ManualBlockCreated struct {
	EnquiryID ID
	VillaID   string
	Dates     *daterange.DateRange
	Reason    string
	At        time.Time
}

func (e ManualBlockCreated) EventName() string     { return "enquiry.manual_block_created" }
func (e ManualBlockCreated) AggregateID() string   { return string(e.EnquiryID) }
func (e ManualBlockCreated) OccurredAt() time.Time { return e.At }
