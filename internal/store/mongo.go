// Package store persists assembled player records to MongoDB, keyed by
// the fbref id so re-scrapes replace rather than duplicate.
package store

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Emirken/scout-backend/pkg/models"
)

// PlayerStore wraps the players collection.
type PlayerStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	log        *zap.SugaredLogger
}

// New connects to MongoDB, pings it and ensures the collection indexes: a
// unique index on the fbref id plus secondary indexes for the common
// lookup fields.
func New(ctx context.Context, uri, dbName, collectionName string, log *zap.SugaredLogger) (*PlayerStore, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "pinging mongodb")
	}

	store := &PlayerStore{
		client:     client,
		collection: client.Database(dbName).Collection(collectionName),
		log:        log,
	}
	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	log.Infow("connected to mongodb", "database", dbName, "collection", collectionName)
	return store, nil
}

func (s *PlayerStore) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "fbrefId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "fullName", Value: 1}}},
		{Keys: bson.D{{Key: "team", Value: 1}}},
		{Keys: bson.D{{Key: "league", Value: 1}}},
	}
	if _, err := s.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return errors.Wrap(err, "creating indexes")
	}
	return nil
}

// UpsertPlayer writes the record, replacing any previous document with the
// same fbref id.
func (s *PlayerStore) UpsertPlayer(ctx context.Context, record *models.PlayerRecord) error {
	if record == nil {
		return errors.New("nil player record")
	}

	filter := bson.M{"fbrefId": record.FbrefID}
	update := bson.M{"$set": record}
	result, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrapf(err, "upserting player %s", record.FbrefID)
	}

	if result.UpsertedCount > 0 {
		s.log.Debugw("player inserted", "id", record.FbrefID, "name", record.FullName)
	} else {
		s.log.Debugw("player updated", "id", record.FbrefID, "name", record.FullName)
	}
	return nil
}

// GetPlayer returns the record for an fbref id, or (nil, nil) when no
// such player is stored.
func (s *PlayerStore) GetPlayer(ctx context.Context, fbrefID string) (*models.PlayerRecord, error) {
	var record models.PlayerRecord
	err := s.collection.FindOne(ctx, bson.M{"fbrefId": fbrefID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "fetching player %s", fbrefID)
	}
	return &record, nil
}

// HasPlayer reports whether a record with this fbref id exists.
func (s *PlayerStore) HasPlayer(ctx context.Context, fbrefID string) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"fbrefId": fbrefID}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Wrapf(err, "checking player %s", fbrefID)
	}
	return count > 0, nil
}

// ListPlayers returns all stored records matching the optional team and
// league filters (empty strings match everything).
func (s *PlayerStore) ListPlayers(ctx context.Context, team, league string) ([]models.PlayerRecord, error) {
	filter := bson.M{}
	if team != "" {
		filter["team"] = team
	}
	if league != "" {
		filter["league"] = league
	}

	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "listing players")
	}
	defer cursor.Close(ctx)

	var records []models.PlayerRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.Wrap(err, "decoding players")
	}
	return records, nil
}

// CountPlayers returns the total number of stored records.
func (s *PlayerStore) CountPlayers(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, errors.Wrap(err, "counting players")
	}
	return count, nil
}

// CountByLeague aggregates stored record counts per league.
func (s *PlayerStore) CountByLeague(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$league"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregating league counts")
	}
	defer cursor.Close(ctx)

	counts := map[string]int64{}
	for cursor.Next(ctx) {
		var row struct {
			League string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, errors.Wrap(err, "decoding league count")
		}
		counts[row.League] = row.Count
	}
	return counts, cursor.Err()
}

// Close disconnects from MongoDB.
func (s *PlayerStore) Close(ctx context.Context) error {
	return errors.Wrap(s.client.Disconnect(ctx), "disconnecting from mongodb")
}
