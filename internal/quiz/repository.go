package quiz

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAttemptNotFound = errors.New("attempt not found")

type AttemptRepository interface {
	Create(a *Attempt) error
	GetByID(id uuid.UUID) (*Attempt, error)
	List(limit int) ([]*Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Attempt{})
}

func (r *attemptRepository) Create(a *Attempt) error {
	return r.db.Create(a).Error
}

func (r *attemptRepository) GetByID(id uuid.UUID) (*Attempt, error) {
	var a Attempt
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *attemptRepository) List(limit int) ([]*Attempt, error) {
	var attempts []*Attempt
	if err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

// memoryRepository backs the attempt history when no database is configured.
type memoryRepository struct {
	mu       sync.Mutex
	attempts []*Attempt
	max      int
}

func NewMemoryRepository(max int) AttemptRepository {
	return &memoryRepository{max: max}
}

func (r *memoryRepository) Create(a *Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.attempts = append(r.attempts, a)
	if r.max > 0 && len(r.attempts) > r.max {
		r.attempts = r.attempts[len(r.attempts)-r.max:]
	}
	return nil
}

func (r *memoryRepository) GetByID(id uuid.UUID) (*Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.attempts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrAttemptNotFound
}

func (r *memoryRepository) List(limit int) ([]*Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Attempt, len(r.attempts))
	copy(out, r.attempts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
