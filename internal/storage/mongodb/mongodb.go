// Package mongodb provides the MongoDB-backed implementation of the
// storage.Storage interface using the official mongo-driver.
//
// Documents keep their native ObjectID _id inside the database; the
// public API surface only ever sees the 24-char hex form. The internal
// lessonDoc/contactDoc mirror structs exist solely for that conversion —
// the driver will not decode an ObjectID into a plain string field.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mongolearn/lessons-api/internal/config"
	"github.com/mongolearn/lessons-api/internal/odm"
	"github.com/mongolearn/lessons-api/internal/storage"
	"github.com/mongolearn/lessons-api/internal/types"
)

const connectTimeout = 10 * time.Second

// Registers the driver the same way database/sql drivers do: a blank
// import of this package makes "mongodb" available to storage.Open.
func init() {
	storage.Register(config.DriverMongoDB,
		func(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
			return New(ctx, cfg.Storage.URI, cfg.Storage.Database, log)
		})
}

// Mongo is the concrete implementation of storage.Storage.
type Mongo struct {
	client   *mongo.Client
	lessons  *mongo.Collection
	contacts *mongo.Collection
}

// New connects to the deployment at uri, pings it once so a bad address
// fails at startup rather than on the first request, and returns a ready
// backend bound to the named database.
//
// A server monitor is registered so that lost heartbeats surface in the
// logs — the driver otherwise retries silently in the background.
func New(ctx context.Context, uri, database string, log *slog.Logger) (*Mongo, error) {
	monitor := &event.ServerMonitor{
		ServerHeartbeatFailed: func(e *event.ServerHeartbeatFailedEvent) {
			log.Error("mongodb heartbeat failed",
				slog.String("connection_id", e.ConnectionID),
				slog.String("error", e.Failure.Error()),
			)
		},
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerMonitor(monitor))
	if err != nil {
		return nil, fmt.Errorf("mongodb.New: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongodb.New: ping: %w", err)
	}

	db := client.Database(database)
	return &Mongo{
		client:   client,
		lessons:  db.Collection(types.Lesson{}.CollectionName()),
		contacts: db.Collection(types.Contact{}.CollectionName()),
	}, nil
}

// lessonDoc is the stored form of types.Lesson.
type lessonDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	URL       string             `bson:"url"`
	Keywords  []string           `bson:"keywords"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d lessonDoc) toLesson() types.Lesson {
	keywords := d.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return types.Lesson{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		URL:       d.URL,
		Keywords:  keywords,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// contactDoc is the stored form of types.Contact.
type contactDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Title     string             `bson:"title"`
	Age       int                `bson:"age"`
	Party     string             `bson:"party,omitempty"`
	Phone     string             `bson:"phone,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d contactDoc) toContact() types.Contact {
	return types.Contact{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Title:     d.Title,
		Age:       d.Age,
		Party:     d.Party,
		Phone:     d.Phone,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// parseID converts a public hex ID into an ObjectID, mapping parse
// failures onto the odm sentinel so handlers can return 400, not 500.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", odm.ErrInvalidID, id)
	}
	return oid, nil
}

// mapWriteErr converts driver write errors to odm sentinels.
func mapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return odm.ErrDuplicate
	}
	return err
}

// ─────────────────────────────────────────────────────────────────────────────
// Lessons
// ─────────────────────────────────────────────────────────────────────────────

func (m *Mongo) CreateLesson(ctx context.Context, lesson types.Lesson) (string, error) {
	now := time.Now().UTC()
	doc := lessonDoc{
		Title:     lesson.Title,
		URL:       lesson.URL,
		Keywords:  lesson.Keywords,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := m.lessons.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("CreateLesson: %w", mapWriteErr(err))
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (m *Mongo) GetLessonByID(ctx context.Context, id string) (types.Lesson, error) {
	oid, err := parseID(id)
	if err != nil {
		return types.Lesson{}, err
	}

	var doc lessonDoc
	err = m.lessons.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.Lesson{}, odm.ErrNotFound
	}
	if err != nil {
		return types.Lesson{}, fmt.Errorf("GetLessonByID: %w", err)
	}
	return doc.toLesson(), nil
}

func (m *Mongo) GetLessons(ctx context.Context, q *odm.Query) ([]types.Lesson, error) {
	filter, opts := planFind(q)
	cursor, err := m.lessons.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("GetLessons: find: %w", err)
	}
	defer cursor.Close(ctx)

	lessons := make([]types.Lesson, 0)
	for cursor.Next(ctx) {
		var doc lessonDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("GetLessons: decode: %w", err)
		}
		lessons = append(lessons, doc.toLesson())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("GetLessons: cursor: %w", err)
	}
	return lessons, nil
}

func (m *Mongo) UpdateLessonByID(ctx context.Context, id string, lesson types.Lesson) (types.Lesson, error) {
	oid, err := parseID(id)
	if err != nil {
		return types.Lesson{}, err
	}

	update := bson.M{"$set": bson.M{
		"title":      lesson.Title,
		"url":        lesson.URL,
		"keywords":   lesson.Keywords,
		"updated_at": time.Now().UTC(),
	}}
	res, err := m.lessons.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return types.Lesson{}, fmt.Errorf("UpdateLessonByID: %w", mapWriteErr(err))
	}
	if res.MatchedCount == 0 {
		return types.Lesson{}, odm.ErrNotFound
	}
	return m.GetLessonByID(ctx, id)
}

func (m *Mongo) DeleteLessonByID(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := m.lessons.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("DeleteLessonByID: %w", err)
	}
	if res.DeletedCount == 0 {
		return odm.ErrNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Contacts
// ─────────────────────────────────────────────────────────────────────────────

func (m *Mongo) CreateContact(ctx context.Context, contact types.Contact) (string, error) {
	now := time.Now().UTC()
	doc := contactDoc{
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Title:     contact.Title,
		Age:       contact.Age,
		Party:     contact.Party,
		Phone:     contact.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := m.contacts.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("CreateContact: %w", mapWriteErr(err))
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (m *Mongo) GetContactByID(ctx context.Context, id string) (types.Contact, error) {
	oid, err := parseID(id)
	if err != nil {
		return types.Contact{}, err
	}

	var doc contactDoc
	err = m.contacts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return types.Contact{}, odm.ErrNotFound
	}
	if err != nil {
		return types.Contact{}, fmt.Errorf("GetContactByID: %w", err)
	}
	return doc.toContact(), nil
}

func (m *Mongo) GetContacts(ctx context.Context, q *odm.Query) ([]types.Contact, error) {
	filter, opts := planFind(q)
	cursor, err := m.contacts.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("GetContacts: find: %w", err)
	}
	defer cursor.Close(ctx)

	contacts := make([]types.Contact, 0)
	for cursor.Next(ctx) {
		var doc contactDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("GetContacts: decode: %w", err)
		}
		contacts = append(contacts, doc.toContact())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("GetContacts: cursor: %w", err)
	}
	return contacts, nil
}

func (m *Mongo) UpdateContactByID(ctx context.Context, id string, contact types.Contact) (types.Contact, error) {
	oid, err := parseID(id)
	if err != nil {
		return types.Contact{}, err
	}

	update := bson.M{"$set": bson.M{
		"first_name": contact.FirstName,
		"last_name":  contact.LastName,
		"title":      contact.Title,
		"age":        contact.Age,
		"party":      contact.Party,
		"phone":      contact.Phone,
		"updated_at": time.Now().UTC(),
	}}
	res, err := m.contacts.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return types.Contact{}, fmt.Errorf("UpdateContactByID: %w", mapWriteErr(err))
	}
	if res.MatchedCount == 0 {
		return types.Contact{}, odm.ErrNotFound
	}
	return m.GetContactByID(ctx, id)
}

func (m *Mongo) DeleteContactByID(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := m.contacts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("DeleteContactByID: %w", err)
	}
	if res.DeletedCount == 0 {
		return odm.ErrNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Maintenance
// ─────────────────────────────────────────────────────────────────────────────

// DropAll drops both collections. Mongo recreates them lazily on the next
// insert, so this is safe to run against an empty database too.
func (m *Mongo) DropAll(ctx context.Context) error {
	if err := m.lessons.Drop(ctx); err != nil {
		return fmt.Errorf("DropAll: lessons: %w", err)
	}
	if err := m.contacts.Drop(ctx); err != nil {
		return fmt.Errorf("DropAll: contacts: %w", err)
	}
	return nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
