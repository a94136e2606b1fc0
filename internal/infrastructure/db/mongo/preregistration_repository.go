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

type PreRegistrationRepository struct {
	col *mongo.Collection
}

func NewPreRegistrationRepository(db *mongo.Database) *PreRegistrationRepository {
	return &PreRegistrationRepository{col: db.Collection(collectionPreRegistrations)}
}

func (r *PreRegistrationRepository) Create(ctx context.Context, p *domain.PreRegistration) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = newID()
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		p.ID = ""
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicatePreRegistration
		}
		return fmt.Errorf("insert pre-registration: %w", err)
	}
	return nil
}

// Upsert matches on an unconsumed record with the same email. When a consumed
// record holds the email the upsert's insert hits the unique index.
func (r *PreRegistrationRepository) Upsert(ctx context.Context, p *domain.PreRegistration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"email": p.Email, "is_registered": false}
	set := bson.M{
		"full_name":    p.FullName,
		"role":         p.Role,
		"phone_number": p.PhoneNumber,
	}
	for k, v := range roleFieldsDoc(p.RoleFields) {
		set[k] = v
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":        newID(),
			"created_at": p.CreatedAt,
		},
	}

	res, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, domain.ErrDuplicatePreRegistration
		}
		return false, fmt.Errorf("upsert pre-registration: %w", err)
	}
	if id, ok := res.UpsertedID.(string); ok {
		p.ID = id
	}
	return res.UpsertedCount == 1, nil
}

func roleFieldsDoc(f domain.RoleFields) bson.M {
	return bson.M{
		"student_id":      f.StudentID,
		"department":      f.Department,
		"year_of_study":   f.YearOfStudy,
		"faculty_id":      f.FacultyID,
		"designation":     f.Designation,
		"admin_id":        f.AdminID,
		"alumni_id":       f.AlumniID,
		"graduation_year": f.GraduationYear,
	}
}

func (r *PreRegistrationRepository) FindUnregistered(ctx context.Context, email string, role domain.Role) (*domain.PreRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.PreRegistration
	err := r.col.FindOne(ctx, bson.M{"email": email, "role": role, "is_registered": false}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPreRegistrationNotFound
		}
		return nil, fmt.Errorf("find pre-registration: %w", err)
	}
	return &p, nil
}

// MarkRegistered is a compare-and-set on is_registered so that two signups
// racing for the same record cannot both consume it.
func (r *PreRegistrationRepository) MarkRegistered(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "is_registered": false},
		bson.M{"$set": bson.M{"is_registered": true, "registered_at": at}},
	)
	if err != nil {
		return fmt.Errorf("mark pre-registration: %w", err)
	}
	if res.ModifiedCount == 0 {
		return domain.ErrPreRegistrationNotFound
	}
	return nil
}

func (r *PreRegistrationRepository) List(ctx context.Context, filter ports.PreRegistrationFilter) ([]*domain.PreRegistration, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.Role != "" {
		q["role"] = filter.Role
	}
	if filter.Registered != nil {
		q["is_registered"] = *filter.Registered
	}
	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "email", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list pre-registrations: %w", err)
	}
	out := make([]*domain.PreRegistration, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode pre-registrations: %w", err)
	}
	return out, nil
}

func (r *PreRegistrationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "role", Value: 1}, {Key: "is_registered", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
