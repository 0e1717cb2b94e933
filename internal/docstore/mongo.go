// internal/docstore/mongo.go
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexsy/nexsy-backend/internal/apperrors"
	"github.com/nexsy/nexsy-backend/internal/config"
)

// MongoStore backs the document abstraction with a managed MongoDB
// deployment. Document ids are application-generated UUID strings kept
// in _id; owner scoping is a user_id condition attached to every filter
// from the verified caller.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, cfg config.MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

func (m *MongoStore) Insert(ctx context.Context, collection, ownerID string, doc Document) (string, error) {
	id := uuid.NewString()

	record := bson.M{}
	for k, v := range doc {
		record[k] = v
	}
	record["_id"] = id
	record["user_id"] = ownerID

	if _, err := m.db.Collection(collection).InsertOne(ctx, record); err != nil {
		return "", m.upstream("insert", collection, err)
	}
	return id, nil
}

func (m *MongoStore) Get(ctx context.Context, collection, ownerID, id string) (Document, error) {
	var record bson.M
	err := m.db.Collection(collection).
		FindOne(ctx, m.scoped(ownerID, bson.M{"_id": id})).
		Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, collection, id)
	}
	if err != nil {
		return nil, m.upstream("get", collection, err)
	}

	return toDocument(record)
}

func (m *MongoStore) Find(ctx context.Context, collection, ownerID string, q Query) ([]Document, error) {
	filter := bson.M{}
	for _, f := range q.Filters {
		filter[f.Field] = f.Value
	}

	opts := options.Find()
	if q.OrderBy != "" {
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: -1}, {Key: "_id", Value: -1}})
	} else {
		opts.SetSort(bson.D{{Key: "_id", Value: -1}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := m.db.Collection(collection).Find(ctx, m.scoped(ownerID, filter), opts)
	if err != nil {
		return nil, m.upstream("find", collection, err)
	}
	defer cursor.Close(ctx)

	var results []Document
	for cursor.Next(ctx) {
		var record bson.M
		if err := cursor.Decode(&record); err != nil {
			return nil, m.upstream("find", collection, err)
		}
		doc, err := toDocument(record)
		if err != nil {
			return nil, err
		}
		results = append(results, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, m.upstream("find", collection, err)
	}
	return results, nil
}

func (m *MongoStore) Update(ctx context.Context, collection, ownerID, id string, fields Document) error {
	result, err := m.db.Collection(collection).UpdateOne(
		ctx,
		m.scoped(ownerID, bson.M{"_id": id}),
		bson.M{"$set": bson.M(fields)},
	)
	if err != nil {
		return m.upstream("update", collection, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s %s", apperrors.ErrNotFound, collection, id)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, collection, ownerID, id string) (bool, error) {
	result, err := m.db.Collection(collection).DeleteOne(ctx, m.scoped(ownerID, bson.M{"_id": id}))
	if err != nil {
		return false, m.upstream("delete", collection, err)
	}
	return result.DeletedCount > 0, nil
}

func (m *MongoStore) DeleteCascade(ctx context.Context, collection, ownerID, id string, related []Relation) (bool, error) {
	session, err := m.client.StartSession()
	if err != nil {
		// Standalone topologies have no sessions; degrade to sequential
		// deletes with partial failures logged.
		logrus.WithError(err).Warn("Mongo session unavailable, cascading delete is not atomic")
		return m.deleteCascadeSequential(ctx, collection, ownerID, id, related)
	}
	defer session.EndSession(ctx)

	deleted, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := m.db.Collection(collection).DeleteOne(sc, m.scoped(ownerID, bson.M{"_id": id}))
		if err != nil {
			return false, err
		}
		if result.DeletedCount == 0 {
			return false, nil
		}

		for _, rel := range related {
			filter := m.scoped(ownerID, bson.M{rel.Field: id})
			if _, err := m.db.Collection(rel.Collection).DeleteMany(sc, filter); err != nil {
				return false, err
			}
		}
		return true, nil
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"collection": collection,
			"owner_id":   ownerID,
			"doc_id":     id,
		}).Warn("Transactional cascade failed, retrying sequentially")
		return m.deleteCascadeSequential(ctx, collection, ownerID, id, related)
	}
	return deleted.(bool), nil
}

func (m *MongoStore) deleteCascadeSequential(ctx context.Context, collection, ownerID, id string, related []Relation) (bool, error) {
	result, err := m.db.Collection(collection).DeleteOne(ctx, m.scoped(ownerID, bson.M{"_id": id}))
	if err != nil {
		return false, m.upstream("cascade delete", collection, err)
	}
	if result.DeletedCount == 0 {
		return false, nil
	}

	for _, rel := range related {
		filter := m.scoped(ownerID, bson.M{rel.Field: id})
		if _, err := m.db.Collection(rel.Collection).DeleteMany(ctx, filter); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"collection": rel.Collection,
				"owner_id":   ownerID,
				"parent_id":  id,
			}).Error("Cascading delete left orphaned documents")
		}
	}
	return true, nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoStore) scoped(ownerID string, filter bson.M) bson.M {
	filter["user_id"] = ownerID
	return filter
}

func (m *MongoStore) upstream(op, collection string, err error) error {
	logrus.WithError(err).WithField("collection", collection).Errorf("Mongo %s failed", op)
	return fmt.Errorf("%w: document store %s", apperrors.ErrUpstreamUnavailable, op)
}

// toDocument converts a decoded BSON record into the backend-neutral
// document shape, surfacing _id as "id".
func toDocument(record bson.M) (Document, error) {
	id, _ := record["_id"].(string)
	delete(record, "_id")

	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	doc["id"] = id
	return doc, nil
}
