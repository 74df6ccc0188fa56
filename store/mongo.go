package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore backs Store with one mongo database; every logical collection
// maps to a collection of the same name.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	return nil
}

func (s *MongoStore) Put(ctx context.Context, collection, id string, doc interface{}) error {
	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, opts)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	return nil
}

func (s *MongoStore) PutVersioned(ctx context.Context, collection, id string, doc interface{}, expected int64) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("put versioned %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	var replacement bson.M
	if err := bson.Unmarshal(raw, &replacement); err != nil {
		return fmt.Errorf("put versioned %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	replacement["version"] = expected + 1

	filter := bson.M{"_id": id}
	if expected == 0 {
		// Match documents written before versioning as well.
		filter["$or"] = bson.A{
			bson.M{"version": bson.M{"$exists": false}},
			bson.M{"version": 0},
		}
	} else {
		filter["version"] = expected
	}

	opts := options.Replace().SetUpsert(expected == 0)
	res, err := s.db.Collection(collection).ReplaceOne(ctx, filter, replacement, opts)
	if err != nil {
		// The upsert path races the filter: a concurrent writer that already
		// bumped the version makes the insert collide on _id.
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return fmt.Errorf("put versioned %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		exists, eerr := s.Exists(ctx, collection, id)
		if eerr != nil {
			return eerr
		}
		if exists {
			return ErrConflict
		}
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("patch %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	return nil
}

func (s *MongoStore) Exists(ctx context.Context, collection, id string) (bool, error) {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	return true, nil
}

func (s *MongoStore) List(ctx context.Context, collection, orderBy string, out interface{}) error {
	findOptions := options.Find()
	if orderBy != "" {
		findOptions.SetSort(bson.D{{Key: orderBy, Value: 1}})
	}
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return fmt.Errorf("list %s: %w: %w", collection, ErrUnavailable, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("list %s: %w: %w", collection, ErrUnavailable, err)
	}
	return nil
}
