package users

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/legalease/legalease/backend/go-services/internal/models"
)

// ErrEmailTaken is returned when registering with an email that already exists
var ErrEmailTaken = errors.New("email already registered")

// ProfileRepository defines persistence operations for profiles
type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	Update(ctx context.Context, p *models.Profile) (*models.Profile, error)
}

// MongoProfileRepository implements ProfileRepository using MongoDB
type MongoProfileRepository struct {
	col *mongo.Collection
}

// NewMongoProfileRepository creates a new repository for the given collection
func NewMongoProfileRepository(col *mongo.Collection) *MongoProfileRepository {
	return &MongoProfileRepository{col: col}
}

func (r *MongoProfileRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	existing, err := r.GetByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return p, nil
}

func (r *MongoProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	if err := r.col.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoProfileRepository) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	p.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":      p.Name,
		"age":       p.Age,
		"phone":     p.Phone,
		"updatedAt": p.UpdatedAt,
	}}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, update); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ID)
}

// MemoryProfileRepository is an in-memory ProfileRepository for tests and
// running without MongoDB.
type MemoryProfileRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.Profile
	byEmail map[string]*models.Profile
}

func NewMemoryProfileRepository() *MemoryProfileRepository {
	return &MemoryProfileRepository{
		byID:    make(map[string]*models.Profile),
		byEmail: make(map[string]*models.Profile),
	}
}

func (r *MemoryProfileRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(p.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, ErrEmailTaken
	}
	now := time.Now().UTC()
	cp := *p
	cp.CreatedAt = now
	cp.UpdatedAt = now
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	r.byID[cp.ID] = &cp
	r.byEmail[key] = &cp
	out := cp
	return &out, nil
}

func (r *MemoryProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (r *MemoryProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (r *MemoryProfileRepository) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[p.ID]
	if !ok {
		return nil, nil
	}
	cur.Name = p.Name
	cur.Age = p.Age
	cur.Phone = p.Phone
	cur.UpdatedAt = time.Now().UTC()
	out := *cur
	return &out, nil
}
