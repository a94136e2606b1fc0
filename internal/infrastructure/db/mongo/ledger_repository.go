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

// ledgerQuery translates a LedgerFilter; typeField names the column the
// Type filter applies to.
func ledgerQuery(f ports.LedgerFilter, typeField string) bson.M {
	q := bson.M{}
	if f.StudentID != "" {
		q["student_id"] = f.StudentID
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Type != "" {
		q[typeField] = f.Type
	}
	return q
}

// reviewUpdate builds the guarded filter and update for a review transition.
func reviewUpdate(id string, u ports.ReviewUpdate) (bson.M, bson.M) {
	filter := bson.M{"_id": id, "status": u.From}
	update := bson.M{"$set": bson.M{
		"status":      u.To,
		"reviewed_by": u.ReviewedBy,
		"review_note": u.Note,
		"reviewed_at": u.At,
	}}
	return filter, update
}

var newestFirst = options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})

// ── Submissions ──────────────────────────────────────────────────────────────

type SubmissionRepository struct {
	col *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) *SubmissionRepository {
	return &SubmissionRepository{col: db.Collection(collectionSubmissions)}
}

func (r *SubmissionRepository) Create(ctx context.Context, s *domain.Submission) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	s.ID = newID()
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		s.ID = ""
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Submission
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	return &s, nil
}

func (r *SubmissionRepository) List(ctx context.Context, f ports.LedgerFilter) ([]*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, ledgerQuery(f, "category"), newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	out := make([]*domain.Submission, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}
	return out, nil
}

func (r *SubmissionRepository) UpdateReview(ctx context.Context, id string, u ports.ReviewUpdate) (*domain.Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := reviewUpdate(id, u)
	var s domain.Submission
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNoMatch
		}
		return nil, fmt.Errorf("review submission: %w", err)
	}
	return &s, nil
}

func (r *SubmissionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "submitted_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// ── Placements ───────────────────────────────────────────────────────────────

type PlacementRepository struct {
	col *mongo.Collection
}

func NewPlacementRepository(db *mongo.Database) *PlacementRepository {
	return &PlacementRepository{col: db.Collection(collectionPlacements)}
}

func (r *PlacementRepository) Create(ctx context.Context, p *domain.Placement) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = newID()
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		p.ID = ""
		return fmt.Errorf("insert placement: %w", err)
	}
	return nil
}

func (r *PlacementRepository) FindByID(ctx context.Context, id string) (*domain.Placement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Placement
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlacementNotFound
		}
		return nil, fmt.Errorf("find placement: %w", err)
	}
	return &p, nil
}

func (r *PlacementRepository) List(ctx context.Context, f ports.LedgerFilter) ([]*domain.Placement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, ledgerQuery(f, "type"), newestFirst)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	out := make([]*domain.Placement, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode placements: %w", err)
	}
	return out, nil
}

func (r *PlacementRepository) UpdateReview(ctx context.Context, id string, u ports.ReviewUpdate) (*domain.Placement, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := reviewUpdate(id, u)
	var p domain.Placement
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNoMatch
		}
		return nil, fmt.Errorf("review placement: %w", err)
	}
	return &p, nil
}

func (r *PlacementRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete placement: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPlacementNotFound
	}
	return nil
}

func (r *PlacementRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "student_id", Value: 1}, {Key: "submitted_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "type", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
