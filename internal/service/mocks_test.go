package service

import (
	"fmt"
	"sync"
	"time"

	"trimly-be/internal/entities"
	"trimly-be/internal/errs"
	"trimly-be/internal/repository"
)

// fakeURLRepo is an in-memory URLRepository with the same contract as the
// Postgres one: lookups hide tombstoned rows and a live short code is unique.
type fakeURLRepo struct {
	mu   sync.Mutex
	urls map[string]*entities.URL // keyed by id
	seq  int

	createErr    error // forced error for infrastructure-failure paths
	incrementErr error
}

var _ repository.URLRepository = (*fakeURLRepo)(nil)

func newFakeURLRepo() *fakeURLRepo {
	return &fakeURLRepo{urls: make(map[string]*entities.URL)}
}

func copyURL(u *entities.URL) *entities.URL {
	cp := *u
	return &cp
}

func (f *fakeURLRepo) Create(shortCode, originalURL string, userID *string) (*entities.URL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, u := range f.urls {
		if u.ShortCode == shortCode && !u.Deleted() {
			return nil, fmt.Errorf("short code %q is taken: %w", shortCode, errs.ErrConflict)
		}
	}

	f.seq++
	now := time.Now().UTC()
	u := &entities.URL{
		ID:          fmt.Sprintf("url-%d", f.seq),
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.urls[u.ID] = u
	return copyURL(u), nil
}

func (f *fakeURLRepo) FindByID(id string) (*entities.URL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.urls[id]
	if !ok || u.Deleted() {
		return nil, errs.ErrNotFound
	}
	return copyURL(u), nil
}

func (f *fakeURLRepo) FindByShortCode(shortCode string) (*entities.URL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.urls {
		if u.ShortCode == shortCode && !u.Deleted() {
			return copyURL(u), nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeURLRepo) GetByUserID(userID string) ([]*entities.URL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entities.URL
	for _, u := range f.urls {
		if !u.Deleted() && u.UserID != nil && *u.UserID == userID {
			out = append(out, copyURL(u))
		}
	}
	return out, nil
}

func (f *fakeURLRepo) Update(id, originalURL string) (*entities.URL, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.urls[id]
	if !ok || u.Deleted() {
		return nil, errs.ErrNotFound
	}
	u.OriginalURL = originalURL
	u.UpdatedAt = time.Now().UTC()
	return copyURL(u), nil
}

func (f *fakeURLRepo) IncrementClickCount(shortCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.incrementErr != nil {
		return f.incrementErr
	}
	for _, u := range f.urls {
		if u.ShortCode == shortCode && !u.Deleted() {
			u.ClickCount++
			return nil
		}
	}
	// No match is a successful no-op.
	return nil
}

func (f *fakeURLRepo) SoftDelete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.urls[id]
	if !ok || u.Deleted() {
		return errs.ErrNotFound
	}
	now := time.Now().UTC()
	u.DeletedAt = &now
	return nil
}

// clickCount reads the counter straight out of the map, deleted or not.
func (f *fakeURLRepo) clickCount(shortCode string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.urls {
		if u.ShortCode == shortCode {
			return u.ClickCount
		}
	}
	return -1
}

// stubGenerator returns a scripted sequence of codes, repeating the last one
// once the script runs out.
type stubGenerator struct {
	mu    sync.Mutex
	codes []string
	calls int
}

func (g *stubGenerator) Generate(length int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.calls
	if i >= len(g.codes) {
		i = len(g.codes) - 1
	}
	g.calls++
	return g.codes[i], nil
}

// fakeUserRepo is an in-memory UserRepository enforcing email uniqueness.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entities.User // keyed by id
	seq   int
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (f *fakeUserRepo) Create(email, passwordHash string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return nil, fmt.Errorf("email %q already in use: %w", email, errs.ErrConflict)
		}
	}

	f.seq++
	now := time.Now().UTC()
	u := &entities.User{
		ID:           fmt.Sprintf("user-%d", f.seq),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUserRepo) FindByID(id string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
