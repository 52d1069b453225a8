package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/rpattn/filedash/internal/domain"
	"github.com/rpattn/filedash/internal/rowfilter"
)

// memoryUserRepository keeps accounts in process memory.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

// NewMemoryUserRepository returns an empty in-memory UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: map[uuid.UUID]domain.User{}}
}

func (r *memoryUserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return domain.User{}, domain.ErrUsernameTaken
		}
	}
	r.users[user.ID] = user
	return user, nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *memoryUserRepository) GetByUsernames(ctx context.Context, usernames []string) ([]domain.User, error) {
	wanted := make(map[string]struct{}, len(usernames))
	for _, name := range usernames {
		wanted[name] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := []domain.User{}
	for _, u := range r.users {
		if _, ok := wanted[u.Username]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *memoryUserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// memoryFileRepository keeps the file catalog in process memory and searches
// it with the same predicate the dashboard applies in the browser.
type memoryFileRepository struct {
	mu         sync.RWMutex
	files      []domain.File
	normalizer rowfilter.Normalizer
}

// NewMemoryFileRepository returns an empty in-memory FileRepository.
func NewMemoryFileRepository() FileRepository {
	return NewLocalizedMemoryFileRepository(rowfilter.DefaultNormalizer)
}

// NewLocalizedMemoryFileRepository folds search text with n.
func NewLocalizedMemoryFileRepository(n rowfilter.Normalizer) FileRepository {
	return &memoryFileRepository{normalizer: n}
}

func (r *memoryFileRepository) Create(ctx context.Context, file domain.File) (domain.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, file)
	return file, nil
}

func (r *memoryFileRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.files {
		if f.ID == id {
			return f, nil
		}
	}
	return domain.File{}, domain.ErrNotFound
}

func (r *memoryFileRepository) List(ctx context.Context, filter *domain.FileFilter) ([]domain.File, error) {
	q := r.normalizer.Query(searchTerm(filter))

	r.mu.RLock()
	files := make([]domain.File, 0, len(r.files))
	for _, f := range r.files {
		if r.normalizer.Matches(f.SearchRow(), q) {
			files = append(files, f)
		}
	}
	r.mu.RUnlock()

	// Newest first; insertion order breaks ties.
	for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
		files[i], files[j] = files[j], files[i]
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].CreatedAt.After(files[j].CreatedAt) })
	return files, nil
}

func (r *memoryFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.files {
		if f.ID == id {
			r.files = append(r.files[:i], r.files[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
