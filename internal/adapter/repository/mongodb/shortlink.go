package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vadimbarashkov/shortlink-service/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type docState int

const (
	docStateSoftDeleted docState = 0
	docStateActive      docState = 1
)

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

type redirectDoc struct {
	From int    `bson:"from"`
	To   int    `bson:"to"`
	URL  string `bson:"url"`
}

type shortlinkDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	KeyType   string             `bson:"key_type"`
	Redirects []redirectDoc      `bson:"redirects"`
	Visits    int64              `bson:"visits"`
	State     docState           `bson:"state"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func newShortlinkDoc(sl *entity.Shortlink) *shortlinkDoc {
	redirects := make([]redirectDoc, 0, len(sl.Redirects))
	for _, r := range sl.Redirects {
		redirects = append(redirects, redirectDoc(r))
	}

	return &shortlinkDoc{
		Text:      sl.Key,
		KeyType:   string(sl.KeyType.OrDefault()),
		Redirects: redirects,
		Visits:    sl.Visits,
		State:     docStateActive,
	}
}

func (d *shortlinkDoc) toEntity() *entity.Shortlink {
	redirects := make([]entity.Redirect, 0, len(d.Redirects))
	for _, r := range d.Redirects {
		redirects = append(redirects, entity.Redirect(r))
	}

	return &entity.Shortlink{
		ID:        d.ID.Hex(),
		Key:       d.Text,
		KeyType:   entity.KeyType(d.KeyType),
		Redirects: redirects,
		Visits:    d.Visits,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func activeByText(key string) bson.D {
	return bson.D{
		{Key: "text", Value: key},
		{Key: "state", Value: docStateActive},
	}
}

type ShortlinkRepository struct {
	shortlinks *mongo.Collection
	counters   *mongo.Collection
	now        func() time.Time
}

func NewShortlinkRepository(db *mongo.Database) *ShortlinkRepository {
	return &ShortlinkRepository{
		shortlinks: db.Collection(ShortlinksCollection),
		counters:   db.Collection(CountersCollection),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// NextID increments the seeded shortlink counter and returns its new value.
// The counter is never created here; it must come from Bootstrap.
func (r *ShortlinkRepository) NextID(ctx context.Context) (uint64, error) {
	const op = "adapter.repository.mongodb.ShortlinkRepository.NextID"

	var counter counterDoc

	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: shortlinkCounterID}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, fmt.Errorf("%s: %w", op, entity.ErrCounterNotSeeded)
		}

		return 0, fmt.Errorf("%s: failed to increment counter: %w", op, err)
	}

	return uint64(counter.Seq), nil
}

func (r *ShortlinkRepository) Save(ctx context.Context, sl *entity.Shortlink) (*entity.Shortlink, error) {
	const op = "adapter.repository.mongodb.ShortlinkRepository.Save"

	doc := newShortlinkDoc(sl)
	doc.CreatedAt = r.now()
	doc.UpdatedAt = doc.CreatedAt

	res, err := r.shortlinks.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrKeyExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into %s: %w", op, ShortlinksCollection, err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}

	return doc.toEntity(), nil
}

func (r *ShortlinkRepository) RetrieveByKey(ctx context.Context, key string) (*entity.Shortlink, error) {
	const op = "adapter.repository.mongodb.ShortlinkRepository.RetrieveByKey"

	var doc shortlinkDoc

	if err := r.shortlinks.FindOne(ctx, activeByText(key)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortlinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to find shortlink: %w", op, err)
	}

	return doc.toEntity(), nil
}

func (r *ShortlinkRepository) RetrieveAndUpdateStats(ctx context.Context, key string) (*entity.Shortlink, error) {
	const op = "adapter.repository.mongodb.ShortlinkRepository.RetrieveAndUpdateStats"

	var doc shortlinkDoc

	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "visits", Value: 1}}},
		{Key: "$set", Value: bson.D{{Key: "updated_at", Value: r.now()}}},
	}

	err := r.shortlinks.FindOneAndUpdate(
		ctx,
		activeByText(key),
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortlinkNotFound)
		}

		return nil, fmt.Errorf("%s: failed to find and update shortlink: %w", op, err)
	}

	return doc.toEntity(), nil
}

func (r *ShortlinkRepository) RetrieveAll(ctx context.Context) ([]*entity.Shortlink, error) {
	const op = "adapter.repository.mongodb.ShortlinkRepository.RetrieveAll"

	cur, err := r.shortlinks.Find(ctx, bson.D{{Key: "state", Value: docStateActive}})
	if err != nil {
		return nil, fmt.Errorf("%s: failed to find shortlinks: %w", op, err)
	}

	var docs []shortlinkDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: failed to decode shortlinks: %w", op, err)
	}

	shortlinks := make([]*entity.Shortlink, 0, len(docs))
	for i := range docs {
		shortlinks = append(shortlinks, docs[i].toEntity())
	}

	return shortlinks, nil
}

// Remove soft deletes the shortlink. The document keeps its text so the key is never reissued.
func (r *ShortlinkRepository) Remove(ctx context.Context, key string) error {
	const op = "adapter.repository.mongodb.ShortlinkRepository.Remove"

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "state", Value: docStateSoftDeleted},
		{Key: "updated_at", Value: r.now()},
	}}}

	res, err := r.shortlinks.UpdateOne(ctx, activeByText(key), update)
	if err != nil {
		return fmt.Errorf("%s: failed to update shortlink state: %w", op, err)
	}

	if res.MatchedCount != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrShortlinkNotFound)
	}

	return nil
}
