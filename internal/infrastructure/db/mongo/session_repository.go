package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

type SessionRepository struct {
	col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(collectionSessions)}
}

// participantCount evaluates to the length of the participants array,
// treating a missing field as empty.
var participantCount = bson.M{"$size": bson.M{"$ifNull": bson.A{"$participants", bson.A{}}}}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if s.Participants == nil {
		s.Participants = []string{}
	}
	s.ID = newID()
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		s.ID = ""
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Session
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	out := make([]*domain.Session, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return out, nil
}

// Update sets the editable fields. Participants are never written here so a
// concurrent join is not lost; the capacity guard runs in the same statement.
func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":   s.ID,
		"$expr": bson.M{"$lte": bson.A{participantCount, s.MaxParticipants}},
	}
	update := bson.M{"$set": bson.M{
		"title":              s.Title,
		"description":        s.Description,
		"date":               s.Date,
		"time":               s.Time,
		"venue":              s.Venue,
		"session_head":       s.SessionHead,
		"max_participants":   s.MaxParticipants,
		"status":             s.Status,
		"meeting_link":       s.MeetingLink,
		"feedback_form_link": s.FeedbackFormLink,
		"updated_at":         s.UpdatedAt,
	}}
	return r.findAndModify(ctx, filter, update)
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// AddParticipant pushes userID only when every join precondition holds at
// write time, which makes capacity enforcement atomic.
func (r *SessionRepository) AddParticipant(ctx context.Context, id, userID string, at time.Time) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":          id,
		"status":       bson.M{"$ne": domain.SessionCancelled},
		"participants": bson.M{"$ne": userID},
		"$expr":        bson.M{"$lt": bson.A{participantCount, "$max_participants"}},
	}
	update := bson.M{
		"$push": bson.M{"participants": userID},
		"$set":  bson.M{"updated_at": at},
	}
	return r.findAndModify(ctx, filter, update)
}

func (r *SessionRepository) RemoveParticipant(ctx context.Context, id, userID string, at time.Time) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "participants": userID}
	update := bson.M{
		"$pull": bson.M{"participants": userID},
		"$set":  bson.M{"updated_at": at},
	}
	return r.findAndModify(ctx, filter, update)
}

func (r *SessionRepository) findAndModify(ctx context.Context, filter, update bson.M) (*domain.Session, error) {
	var s domain.Session
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNoMatch
		}
		return nil, fmt.Errorf("update session: %w", err)
	}
	return &s, nil
}

func (r *SessionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "host_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
