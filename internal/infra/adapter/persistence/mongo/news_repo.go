// Package mongo implements the repository interfaces on MongoDB.
// The document shape mirrors the wire shape of a news summary, so a
// collection populated by this adapter is directly inspectable.
package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/repository"
)

const collectionName = "news_summaries"

// newsDocument is the BSON representation of a news summary.
type newsDocument struct {
	ID         string    `bson:"id"`
	Title      string    `bson:"title"`
	Summary    string    `bson:"summary"`
	SourceURL  string    `bson:"source_url"`
	SourceName string    `bson:"source_name"`
	Category   string    `bson:"category"`
	ImageURL   *string   `bson:"image_url"`
	Timestamp  time.Time `bson:"timestamp"`
	CreatedAt  time.Time `bson:"created_at"`
}

type NewsRepo struct {
	collection *mongo.Collection
}

// Connect establishes a MongoDB connection and verifies it with a ping.
// The caller owns the returned client and must Disconnect it on shutdown.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// NewNewsRepo returns a NewsRepository backed by the news_summaries collection.
func NewNewsRepo(client *mongo.Client, dbName string) repository.NewsRepository {
	return &NewsRepo{collection: client.Database(dbName).Collection(collectionName)}
}

// List returns news summaries sorted by timestamp descending.
func (repo *NewsRepo) List(ctx context.Context, filter repository.NewsFilter) ([]*entity.NewsSummary, error) {
	query := bson.M{}
	if filter.Category != "" && !strings.EqualFold(filter.Category, "all") {
		query["category"] = entity.NormalizeCategory(filter.Category)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(filter.Limit))

	cursor, err := repo.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	items := make([]*entity.NewsSummary, 0, filter.Limit)
	for cursor.Next(ctx) {
		var doc newsDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("List: decode: %w", err)
		}
		items = append(items, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("List: cursor: %w", err)
	}
	return items, nil
}

// CreateBatch inserts all items with an ordered InsertMany.
// Without a replica set MongoDB offers no multi-document transaction, so
// atomicity here is best-effort: an ordered insert stops at the first failure.
func (repo *NewsRepo) CreateBatch(ctx context.Context, items []*entity.NewsSummary) error {
	if len(items) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(items))
	for _, item := range items {
		docs = append(docs, fromEntity(item))
	}

	if _, err := repo.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("CreateBatch: %w", err)
	}
	return nil
}

// Count returns the total number of stored news summaries.
func (repo *NewsRepo) Count(ctx context.Context) (int64, error) {
	count, err := repo.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// CountByCategory returns per-category record counts.
func (repo *NewsRepo) CountByCategory(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := repo.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("CountByCategory: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Category string `bson:"_id"`
			Count    int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("CountByCategory: decode: %w", err)
		}
		counts[row.Category] = row.Count
	}
	return counts, cursor.Err()
}

func fromEntity(n *entity.NewsSummary) newsDocument {
	doc := newsDocument{
		ID:         n.ID,
		Title:      n.Title,
		Summary:    n.Summary,
		SourceURL:  n.SourceURL,
		SourceName: n.SourceName,
		Category:   n.Category,
		Timestamp:  n.Timestamp,
		CreatedAt:  n.CreatedAt,
	}
	if n.ImageURL != "" {
		img := n.ImageURL
		doc.ImageURL = &img
	}
	return doc
}

func (d newsDocument) toEntity() *entity.NewsSummary {
	item := &entity.NewsSummary{
		ID:         d.ID,
		Title:      d.Title,
		Summary:    d.Summary,
		SourceURL:  d.SourceURL,
		SourceName: d.SourceName,
		Category:   d.Category,
		Timestamp:  d.Timestamp,
		CreatedAt:  d.CreatedAt,
	}
	if d.ImageURL != nil {
		item.ImageURL = *d.ImageURL
	}
	return item
}
