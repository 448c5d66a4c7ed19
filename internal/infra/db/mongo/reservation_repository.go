package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainreservation "autorent/internal/domain/reservation"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("agg_reservation")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrReservationNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) ListByVehicle(ctx context.Context, vehicleID domainreservation.VehicleID) ([]*domainreservation.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"vehicle_id": string(vehicleID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainreservation.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *ReservationRepository) PendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*domainreservation.Reservation, error) {
	filter := bson.M{
		"status":     string(domainreservation.StatusPendingHold),
		"created_at": bson.M{"$lt": cutoff.UnixMilli()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainreservation.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

type reservationDocument struct {
	ID            string `bson:"_id"`
	VehicleID     string `bson:"vehicle_id"`
	StartDate     int64  `bson:"start_date"`
	EndDate       int64  `bson:"end_date"`
	StartTime     string `bson:"start_time,omitempty"`
	EndTime       string `bson:"end_time,omitempty"`
	CustomerName  string `bson:"customer_name,omitempty"`
	CustomerEmail string `bson:"customer_email,omitempty"`
	CustomerPhone string `bson:"customer_phone,omitempty"`
	Status        string `bson:"status"`
	CreatedAt     int64  `bson:"created_at"`
	UpdatedAt     int64  `bson:"updated_at"`
	Version       int64  `bson:"version"`
}

func newReservationDocument(res *domainreservation.Reservation) reservationDocument {
	return reservationDocument{
		ID:            string(res.ID),
		VehicleID:     string(res.VehicleID),
		StartDate:     res.StartDate.UnixMilli(),
		EndDate:       res.EndDate.UnixMilli(),
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		CustomerName:  res.Customer.Name,
		CustomerEmail: res.Customer.Email,
		CustomerPhone: res.Customer.Phone,
		Status:        string(res.Status),
		CreatedAt:     res.CreatedAt.UnixMilli(),
		UpdatedAt:     res.UpdatedAt.UnixMilli(),
		Version:       res.Version,
	}
}

func (d reservationDocument) toAggregate() *domainreservation.Reservation {
	return &domainreservation.Reservation{
		ID:        domainreservation.ReservationID(d.ID),
		VehicleID: domainreservation.VehicleID(d.VehicleID),
		StartDate: timestampToTime(d.StartDate),
		EndDate:   timestampToTime(d.EndDate),
		StartTime: d.StartTime,
		EndTime:   d.EndTime,
		Customer: domainreservation.Customer{
			Name:  d.CustomerName,
			Email: d.CustomerEmail,
			Phone: d.CustomerPhone,
		},
		Status:    domainreservation.Status(d.Status),
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
