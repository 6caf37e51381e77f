package mongo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"villastay/internal/domain/daterange"
	domainenquiry "villastay/internal/domain/enquiry"
)

const enquiriesCollection = "enquiries"

type EnquiryRepository struct {
	col    *mongo.Collection
	logger *slog.Logger
}

func NewEnquiryRepository(db *mongo.Database, logger *slog.Logger) *EnquiryRepository {
	return &EnquiryRepository{col: db.Collection(enquiriesCollection), logger: logger}
}

func (r *EnquiryRepository) ByID(ctx context.Context, id domainenquiry.ID) (*domainenquiry.Enquiry, error) {
	var doc enquiryDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainenquiry.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(r.logger), nil
}

func (r *EnquiryRepository) Insert(ctx context.Context, e *domainenquiry.Enquiry) error {
	if e.ID == "" {
		e.ID = domainenquiry.ID(uuid.NewString())
	}
	_, err := r.col.InsertOne(ctx, newEnquiryDocument(e))
	return err
}

func (r *EnquiryRepository) Update(ctx context.Context, e *domainenquiry.Enquiry) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": string(e.ID)}, newEnquiryDocument(e))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainenquiry.ErrNotFound
	}
	return nil
}

func (r *EnquiryRepository) ByVillaAndStatus(ctx context.Context, villaID string, status domainenquiry.Status) ([]*domainenquiry.Enquiry, error) {
	return r.find(ctx, bson.M{"villa_id": villaID, "status": string(status)})
}

func (r *EnquiryRepository) ByStatus(ctx context.Context, status domainenquiry.Status) ([]*domainenquiry.Enquiry, error) {
	return r.find(ctx, bson.M{"status": string(status)})
}

func (r *EnquiryRepository) ByEmail(ctx context.Context, email string) ([]*domainenquiry.Enquiry, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *EnquiryRepository) ByPhone(ctx context.Context, phone string) ([]*domainenquiry.Enquiry, error) {
	return r.find(ctx, bson.M{"phone": phone})
}

func (r *EnquiryRepository) All(ctx context.Context) ([]*domainenquiry.Enquiry, error) {
	return r.find(ctx, bson.M{})
}

// find runs an equality-predicate query. Ordering is left to callers:
// date fields are heterogeneous on disk, so any meaningful sort has to
// happen after normalization anyway.
func (r *EnquiryRepository) find(ctx context.Context, filter bson.M) ([]*domainenquiry.Enquiry, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainenquiry.Enquiry
	for cursor.Next(ctx) {
		var doc enquiryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate(r.logger))
	}
	return out, cursor.Err()
}

type enquiryDocument struct {
	ID           string `bson:"_id"`
	VillaID      string `bson:"villa_id"`
	VillaName    string `bson:"villa_name"`
	UserName     string `bson:"user_name"`
	Email        string `bson:"email"`
	Phone        string `bson:"phone"`
	CheckInDate  any    `bson:"check_in_date,omitempty"`
	CheckOutDate any    `bson:"check_out_date,omitempty"`
	Guests       int    `bson:"guests"`
	Message      string `bson:"message"`
	Status       string `bson:"status"`
	BookingType  string `bson:"booking_type"`
	Source       string `bson:"source,omitempty"`
	IsGuest      bool   `bson:"is_guest"`
	CreatedAt    any    `bson:"created_at"`
	UpdatedAt    any    `bson:"updated_at"`
	ConfirmedAt  any    `bson:"confirmed_at,omitempty"`
	CancelledAt  any    `bson:"cancelled_at,omitempty"`
	NotifiedAt   any    `bson:"notified_at,omitempty"`
}

func newEnquiryDocument(e *domainenquiry.Enquiry) enquiryDocument {
	doc := enquiryDocument{
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
		CreatedAt:   denormalizeDate(e.CreatedAt),
		UpdatedAt:   denormalizeDate(e.UpdatedAt),
	}
	if e.Dates != nil {
		doc.CheckInDate = denormalizeDate(e.Dates.CheckIn)
		doc.CheckOutDate = denormalizeDate(e.Dates.CheckOut)
	}
	if !e.ConfirmedAt.IsZero() {
		doc.ConfirmedAt = denormalizeDate(e.ConfirmedAt)
	}
	if !e.CancelledAt.IsZero() {
		doc.CancelledAt = denormalizeDate(e.CancelledAt)
	}
	if !e.NotifiedAt.IsZero() {
		doc.NotifiedAt = denormalizeDate(e.NotifiedAt)
	}
	return doc
}

func (d enquiryDocument) toAggregate(logger *slog.Logger) *domainenquiry.Enquiry {
	e := &domainenquiry.Enquiry{
		ID:          domainenquiry.ID(d.ID),
		VillaID:     d.VillaID,
		VillaName:   d.VillaName,
		UserName:    d.UserName,
		Email:       d.Email,
		Phone:       d.Phone,
		Guests:      d.Guests,
		Message:     d.Message,
		Status:      domainenquiry.Status(d.Status),
		BookingType: domainenquiry.BookingType(d.BookingType),
		Source:      d.Source,
		IsGuest:     d.IsGuest,
	}
	if t, ok := normalizeDate(d.CreatedAt, logger); ok {
		e.CreatedAt = t
	}
	if t, ok := normalizeDate(d.UpdatedAt, logger); ok {
		e.UpdatedAt = t
	}
	if t, ok := normalizeDate(d.ConfirmedAt, logger); ok {
		e.ConfirmedAt = t
	}
	if t, ok := normalizeDate(d.CancelledAt, logger); ok {
		e.CancelledAt = t
	}
	if t, ok := normalizeDate(d.NotifiedAt, logger); ok {
		e.NotifiedAt = t
	}
	checkIn, inOK := normalizeDate(d.CheckInDate, logger)
	checkOut, outOK := normalizeDate(d.CheckOutDate, logger)
	if inOK && outOK {
		dr := daterange.DateRange{CheckIn: checkIn, CheckOut: checkOut}
		if dr.Validate() == nil {
			e.Dates = &dr
		} else if logger != nil {
			logger.Warn("enquiry has inverted date range, treating as informational", "enquiry_id", d.ID)
		}
	}
	return e
}
