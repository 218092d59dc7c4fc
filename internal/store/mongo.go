package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/harentsoaR/elearn-portal/internal/models"
)

// Mongo owns the client connection. Close it on shutdown.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the server and verifies the connection with a ping.
func Connect(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Mongo{client: client, db: client.Database(database)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// indexModels lists the index each collection needs. Student records written
// before enrollments carried an owner have no userId, so the owner index only
// covers documents where the field exists.
func indexModels() map[string]mongo.IndexModel {
	return map[string]mongo.IndexModel{
		UsersCollection: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		EnrollmentsCollection: {
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"userId": bson.M{"$exists": true}}),
		},
		SessionsCollection: {
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
}

// EnsureIndexes creates the unique and TTL indexes the services rely on.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	for coll, model := range indexModels() {
		if _, err := m.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}
	return nil
}

func (m *Mongo) Users() *MongoUsers {
	return &MongoUsers{coll: m.db.Collection(UsersCollection)}
}

func (m *Mongo) Logins() *MongoLogins {
	return &MongoLogins{coll: m.db.Collection(LoginsCollection)}
}

func (m *Mongo) Messages() *MongoMessages {
	return &MongoMessages{coll: m.db.Collection(MessagesCollection)}
}

func (m *Mongo) Enrollments() *MongoEnrollments {
	return &MongoEnrollments{coll: m.db.Collection(EnrollmentsCollection)}
}

func (m *Mongo) Sessions() *MongoSessions {
	return &MongoSessions{coll: m.db.Collection(SessionsCollection)}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	default:
		return err
	}
}

type MongoUsers struct {
	coll *mongo.Collection
}

func (r *MongoUsers) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, user)
	return translate(err)
}

func (r *MongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *MongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

type MongoLogins struct {
	coll *mongo.Collection
}

func (r *MongoLogins) Append(ctx context.Context, rec *models.LoginRecord) error {
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, rec)
	return translate(err)
}

type MongoMessages struct {
	coll *mongo.Collection
}

func (r *MongoMessages) Create(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, msg)
	return translate(err)
}

type MongoEnrollments struct {
	coll *mongo.Collection
}

func (r *MongoEnrollments) Create(ctx context.Context, e *models.Enrollment) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, e)
	return translate(err)
}

// FindAll returns every enrollment in insertion order.
func (r *MongoEnrollments) FindAll(ctx context.Context) ([]models.Enrollment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.Enrollment
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = make([]models.Enrollment, 0)
	}
	return out, nil
}

func (r *MongoEnrollments) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var e models.Enrollment
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&e); err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

func (r *MongoEnrollments) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := r.coll.FindOne(ctx, bson.M{"userId": ownerID}).Decode(&e); err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// Update overwrites the mutable fields. Status and owner are left alone.
func (r *MongoEnrollments) Update(ctx context.Context, e *models.Enrollment) error {
	update := bson.M{"$set": bson.M{
		"name":     e.StudentName,
		"program":  e.Program,
		"subjects": e.Subjects,
		"time":     e.TimeSlot,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": e.ID}, update)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoEnrollments) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoSessions struct {
	coll *mongo.Collection
}

func (r *MongoSessions) Create(ctx context.Context, s *models.Session) error {
	_, err := r.coll.InsertOne(ctx, s)
	return translate(err)
}

func (r *MongoSessions) Find(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *MongoSessions) Delete(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return translate(err)
}
