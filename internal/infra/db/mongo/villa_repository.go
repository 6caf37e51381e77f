package mongo

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainvilla "villastay/internal/domain/villa"
)

const villasCollection = "villas"

type VillaRepository struct {
	col    *mongo.Collection
	logger *slog.Logger
}

func NewVillaRepository(db *mongo.Database, logger *slog.Logger) *VillaRepository {
	return &VillaRepository{col: db.Collection(villasCollection), logger: logger}
}

func (r *VillaRepository) All(ctx context.Context) ([]*domainvilla.Villa, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *VillaRepository) ByID(ctx context.Context, id domainvilla.ID) (*domainvilla.Villa, error) {
	var doc villaDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domainvilla.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(r.logger), nil
}

func (r *VillaRepository) Featured(ctx context.Context, limit int) ([]*domainvilla.Villa, error) {
	return r.find(ctx, bson.M{"is_featured": true}, limitOption(limit))
}

func (r *VillaRepository) Trending(ctx context.Context, limit int) ([]*domainvilla.Villa, error) {
	return r.find(ctx, bson.M{"is_trending": true}, limitOption(limit))
}

func (r *VillaRepository) Find(ctx context.Context, params domainvilla.FindParams) ([]*domainvilla.Villa, error) {
	filter := bson.M{}
	if params.Location != "" {
		filter["location"] = params.Location
	}
	if params.Bedrooms > 0 {
		filter["bedrooms"] = params.Bedrooms
	}
	return r.find(ctx, filter, nil)
}

func (r *VillaRepository) Insert(ctx context.Context, v *domainvilla.Villa) error {
	if v.ID == "" {
		v.ID = domainvilla.ID(uuid.NewString())
	}
	_, err := r.col.InsertOne(ctx, newVillaDocument(v))
	return err
}

func (r *VillaRepository) Update(ctx context.Context, v *domainvilla.Villa) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": string(v.ID)}, newVillaDocument(v))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domainvilla.ErrNotFound
	}
	return nil
}

func (r *VillaRepository) Delete(ctx context.Context, id domainvilla.ID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainvilla.ErrNotFound
	}
	return nil
}

func (r *VillaRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domainvilla.Villa, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.col.Find(ctx, filter, opts)
	} else {
		cursor, err = r.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainvilla.Villa
	for cursor.Next(ctx) {
		var doc villaDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate(r.logger))
	}
	return out, cursor.Err()
}

func limitOption(limit int) *options.FindOptions {
	if limit <= 0 {
		return nil
	}
	return options.Find().SetLimit(int64(limit))
}

type villaDocument struct {
	ID            string   `bson:"_id"`
	Name          string   `bson:"name"`
	Location      string   `bson:"location"`
	Description   string   `bson:"description"`
	PricePerNight int64    `bson:"price_per_night"`
	Bedrooms      int      `bson:"bedrooms"`
	Bathrooms     int      `bson:"bathrooms"`
	MaxGuests     int      `bson:"max_guests"`
	Amenities     []string `bson:"amenities,omitempty"`
	Images        []string `bson:"images,omitempty"`
	IsFeatured    bool     `bson:"is_featured"`
	IsTrending    bool     `bson:"is_trending"`
	Rating        float64  `bson:"rating"`
	ReviewCount   int      `bson:"review_count"`
	CreatedAt     any      `bson:"created_at"`
	UpdatedAt     any      `bson:"updated_at"`
}

func newVillaDocument(v *domainvilla.Villa) villaDocument {
	return villaDocument{
		ID:            string(v.ID),
		Name:          v.Name,
		Location:      v.Location,
		Description:   v.Description,
		PricePerNight: v.PricePerNight,
		Bedrooms:      v.Bedrooms,
		Bathrooms:     v.Bathrooms,
		MaxGuests:     v.MaxGuests,
		Amenities:     v.Amenities,
		Images:        v.Images,
		IsFeatured:    v.IsFeatured,
		IsTrending:    v.IsTrending,
		Rating:        v.Rating,
		ReviewCount:   v.ReviewCount,
		CreatedAt:     denormalizeDate(v.CreatedAt),
		UpdatedAt:     denormalizeDate(v.UpdatedAt),
	}
}

func (d villaDocument) toAggregate(logger *slog.Logger) *domainvilla.Villa {
	v := &domainvilla.Villa{
		ID:            domainvilla.ID(d.ID),
		Name:          d.Name,
		Location:      d.Location,
		Description:   d.Description,
		PricePerNight: d.PricePerNight,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		MaxGuests:     d.MaxGuests,
		Amenities:     d.Amenities,
		Images:        d.Images,
		IsFeatured:    d.IsFeatured,
		IsTrending:    d.IsTrending,
		Rating:        d.Rating,
		ReviewCount:   d.ReviewCount,
	}
	if t, ok := normalizeDate(d.CreatedAt, logger); ok {
		v.CreatedAt = t
	}
	if t, ok := normalizeDate(d.UpdatedAt, logger); ok {
		v.UpdatedAt = t
	}
	return v
}
