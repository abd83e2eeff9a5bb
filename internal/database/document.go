package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/thenoetrevino/coffeehub/internal/config"
	"github.com/thenoetrevino/coffeehub/internal/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// membersCollection holds member profile documents.
const membersCollection = "mems"

// openDocument connects the MongoDB client and pings the primary.
func openDocument(ctx context.Context, creds *config.MongoCredentials) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(creds.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create document client: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return client, fmt.Errorf("document ping failed: %w", err)
	}
	return client, nil
}

// ProfileStore reads and writes member profile documents.
type ProfileStore interface {
	// FindByUsername returns nil when no profile has that username.
	FindByUsername(ctx context.Context, username string) (*models.Member, error)
	// FindByID returns nil when no profile has that id.
	FindByID(ctx context.Context, id string) (*models.Member, error)
	// Upsert replaces every profile field of the document keyed by m.ID.
	Upsert(ctx context.Context, m *models.Member) error
}

// mongoProfiles is the MongoDB ProfileStore.
type mongoProfiles struct {
	coll *mongo.Collection
}

func newMongoProfiles(db *mongo.Database) *mongoProfiles {
	return &mongoProfiles{coll: db.Collection(membersCollection)}
}

func (p *mongoProfiles) FindByUsername(ctx context.Context, username string) (*models.Member, error) {
	return p.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (p *mongoProfiles) FindByID(ctx context.Context, id string) (*models.Member, error) {
	return p.findOne(ctx, bson.D{{Key: "id", Value: id}})
}

func (p *mongoProfiles) findOne(ctx context.Context, filter bson.D) (*models.Member, error) {
	var m models.Member
	err := p.coll.FindOne(ctx, filter).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find member profile: %w", err)
	}
	return &m, nil
}

// profileFields lists every stored profile field of m, keyed like the
// fixture documents. The avatar lives in the key-value store.
func profileFields(m *models.Member) bson.D {
	return bson.D{
		{Key: "id", Value: m.ID},
		{Key: "username", Value: m.Username},
		{Key: "password", Value: m.Password},
		{Key: "level", Value: m.Level},
		{Key: "fullname", Value: m.FullName},
		{Key: "birth", Value: m.Birth},
		{Key: "phone", Value: m.Phone},
		{Key: "email", Value: m.Email},
		{Key: "address", Value: m.Address},
	}
}

func (p *mongoProfiles) Upsert(ctx context.Context, m *models.Member) error {
	_, err := p.coll.UpdateOne(ctx,
		bson.D{{Key: "id", Value: m.ID}},
		bson.D{{Key: "$set", Value: profileFields(m)}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert member profile %s: %w", m.ID, err)
	}
	return nil
}
