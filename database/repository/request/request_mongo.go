package requestRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DDismyname28/home-portal/database"
	"github.com/DDismyname28/home-portal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of RequestRepository using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	coll := database.DB().Collection("requests")
	return &MongoRequestRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRequestRepo) Create(req *models.ServiceRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

func (r *MongoRequestRepo) GetByID(id string) (*models.ServiceRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	var req models.ServiceRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch request with id %s: %w", id, err)
	}
	return &req, nil
}

// Update persists every field except history. The history list is owned by
// AppendHistory's $push; a document-level $set here would overwrite entries
// appended between the caller's read and this write.
func (r *MongoRequestRepo) Update(req *models.ServiceRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	filter := bson.M{"id": req.ID}
	fields := bson.M{
		"requesterId":    req.RequesterID,
		"category":       req.Category,
		"provider":       req.Provider,
		"providerId":     req.ProviderID,
		"description":    req.Description,
		"scheduleDate":   req.ScheduledDate,
		"schedulePeriod": req.TimePreference,
		"status":         req.Status,
		"photos":         req.Photos,
		"updatedAt":      req.UpdatedAt,
	}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update request with id %s: %w", req.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("request with id %s not found", req.ID)
	}
	return nil
}

func (r *MongoRequestRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete request with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("request with id %s not found", id)
	}
	return nil
}

func (r *MongoRequestRepo) ListByRequester(requesterID string) ([]models.ServiceRequest, error) {
	return r.find(bson.M{"requesterId": requesterID})
}

// ListByProvider matches the normalized provider ID as well as raw
// references that stored the account ID or login directly.
func (r *MongoRequestRepo) ListByProvider(providerID, login string) ([]models.ServiceRequest, error) {
	or := []bson.M{
		{"providerId": providerID},
		{"provider": providerID},
	}
	if login != "" {
		or = append(or, bson.M{"provider": login})
	}
	return r.find(bson.M{"$or": or})
}

func (r *MongoRequestRepo) find(filter bson.M) ([]models.ServiceRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve requests: %w", err)
	}
	defer cursor.Close(ctx)
	var requests []models.ServiceRequest
	for cursor.Next(ctx) {
		var req models.ServiceRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return requests, nil
}

// AppendHistory uses a server-side $push so concurrent writers can never
// lose entries to a read-modify-write race.
func (r *MongoRequestRepo) AppendHistory(id string, entry models.HistoryEntry) ([]models.HistoryEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"history": entry},
		"$set":  bson.M{"updatedAt": entry.Timestamp},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ServiceRequest
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("request with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to append history to request %s: %w", id, err)
	}
	return updated.History, nil
}
