package database

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sportzone-booking/errors"
	"sportzone-booking/model"
)

type bookingDocument struct {
	Id         primitive.ObjectID `bson:"_id"`
	Date       time.Time          `bson:"date"`
	Name       string             `bson:"name"`
	Contact    string             `bson:"contact"`
	Match      string             `bson:"match"`
	MatchDate  string             `bson:"match_date"`
	Type       string             `bson:"type"`
	Quantities map[string]int     `bson:"quantities"`
	Total      string             `bson:"total"`
}

// MongoLedger stores one document per booking. Documents are only ever inserted.
type MongoLedger struct {
	client     *mongo.Client
	collection *mongo.Collection
	location   *time.Location
	logger     logrus.FieldLogger
}

// DBInit connects to MongoDB and checks the server is reachable.
func DBInit(ctx context.Context, connString string) (*mongo.Client, error) {
	if connString == "" {
		return nil, fmt.Errorf("%w: MONGODB_CONNSTRING is not set", errors.ErrPersistence)
	}

	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot connect to the db: %w", errors.ErrPersistence, err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: db is not available: %w", errors.ErrPersistence, err)
	}

	return client, nil
}

func NewMongoLedger(client *mongo.Client, database, collection string, logger logrus.FieldLogger) *MongoLedger {
	return &MongoLedger{
		client:     client,
		collection: client.Database(database).Collection(collection),
		location:   time.Local,
		logger:     logger.WithField("ledger", database+"."+collection),
	}
}

func (l *MongoLedger) Append(ctx context.Context, record model.BookingRecord) error {
	doc := toDocument(record)
	if _, err := l.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("%w: insert booking: %w", errors.ErrPersistence, err)
	}

	l.logger.WithFields(logrus.Fields{
		"match": record.Match,
		"id":    doc.Id.Hex(),
	}).Info("booking appended")
	return nil
}

func (l *MongoLedger) ListAll(ctx context.Context) (Listing, error) {
	// ObjectIDs grow with insertion time, so sorting on _id keeps append order
	cur, err := l.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{primitive.E{Key: "_id", Value: 1}}))
	if err != nil {
		return Listing{}, fmt.Errorf("%w: find bookings: %w", errors.ErrPersistence, err)
	}
	defer cur.Close(ctx)

	records := []model.BookingRecord{}
	for cur.Next(ctx) {
		var doc bookingDocument
		if err := cur.Decode(&doc); err != nil {
			return Listing{}, fmt.Errorf("%w: decode booking: %w", errors.ErrPersistence, err)
		}
		record, err := fromDocument(doc, l.location)
		if err != nil {
			return Listing{}, fmt.Errorf("%w: booking %s: %w", errors.ErrPersistence, doc.Id.Hex(), err)
		}
		records = append(records, record)
	}
	if err := cur.Err(); err != nil {
		return Listing{}, fmt.Errorf("%w: read bookings: %w", errors.ErrPersistence, err)
	}

	return Listing{Records: records}, nil
}

func (l *MongoLedger) Close(ctx context.Context) error {
	return l.client.Disconnect(ctx)
}

func toDocument(record model.BookingRecord) bookingDocument {
	quantities := make(map[string]int, len(record.Quantities))
	for _, category := range model.Categories() {
		quantities[string(category)] = record.Quantities.Get(category)
	}
	return bookingDocument{
		Id:         primitive.NewObjectID(),
		Date:       record.CreatedAt,
		Name:       record.CustomerName,
		Contact:    record.ContactNumber,
		Match:      record.Match,
		MatchDate:  record.MatchDate,
		Type:       string(record.Tier),
		Quantities: quantities,
		Total:      record.TotalCharged.StringFixed(2),
	}
}

func fromDocument(doc bookingDocument, location *time.Location) (model.BookingRecord, error) {
	total, err := decimal.NewFromString(doc.Total)
	if err != nil {
		return model.BookingRecord{}, fmt.Errorf("total %q: %w", doc.Total, err)
	}

	quantities := make(model.Quantities, len(doc.Quantities))
	for category, qty := range doc.Quantities {
		quantities[model.Category(category)] = qty
	}

	return model.BookingRecord{
		CreatedAt:     doc.Date.In(location),
		CustomerName:  doc.Name,
		ContactNumber: doc.Contact,
		Match:         doc.Match,
		MatchDate:     doc.MatchDate,
		Tier:          model.Tier(doc.Type),
		Quantities:    quantities,
		TotalCharged:  total,
	}, nil
}
