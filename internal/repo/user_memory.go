package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/market-api/internal/models"
)

// InMemoryUserRepository is an in-memory implementation of UserRepository.
type InMemoryUserRepository struct {
	mu       sync.Mutex
	users    []models.User
	saved    map[uuid.UUID][]uuid.UUID
	products *InMemoryProductRepository
}

// NewInMemoryUserRepository creates a new instance of InMemoryUserRepository.
// The product repository backs the saved-products association.
func NewInMemoryUserRepository(products *InMemoryProductRepository) *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:    []models.User{},
		saved:    map[uuid.UUID][]uuid.UUID{},
		products: products,
	}
}

func (r *InMemoryUserRepository) Create(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	return user, nil
}

func (r *InMemoryUserRepository) GetAll(_ context.Context, filter UserFilter) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]models.User, len(r.users))
	copy(users, r.users)

	sort.SliceStable(users, func(i, j int) bool {
		if filter.Order == "oldest" {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	return paginate(users, filter.Offset, filter.Limit), nil
}

func (r *InMemoryUserRepository) GetByID(_ context.Context, id uuid.UUID) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getByIDLocked(id)
}

func (r *InMemoryUserRepository) Update(_ context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = user
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			delete(r.saved, id)
			return nil
		}
	}
	return ErrUserNotFound
}

func (r *InMemoryUserRepository) SavedProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	r.mu.Lock()
	if _, err := r.getByIDLocked(userID); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	ids := make([]uuid.UUID, len(r.saved[userID]))
	copy(ids, r.saved[userID])
	r.mu.Unlock()

	return r.products.GetByIDs(ctx, ids)
}

func (r *InMemoryUserRepository) SaveProduct(ctx context.Context, userID, productID uuid.UUID) ([]models.Product, error) {
	if _, err := r.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	if _, err := r.getByIDLocked(userID); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	already := false
	for _, id := range r.saved[userID] {
		if id == productID {
			already = true
			break
		}
	}
	if !already {
		r.saved[userID] = append(r.saved[userID], productID)
	}
	r.mu.Unlock()

	return r.SavedProducts(ctx, userID)
}

func (r *InMemoryUserRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = []models.User{}
	r.saved = map[uuid.UUID][]uuid.UUID{}
}

func (r *InMemoryUserRepository) getByIDLocked(id uuid.UUID) (models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}
