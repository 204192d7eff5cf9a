package services

import (
	"context"
	"errors"
	"time"

	"digieventos/internal/domain"
)

type mockParticipantRepository struct {
	reg        *domain.Registration
	created    bool
	regsByUser map[string][]*domain.Registration
	byEvent    map[string][]*domain.ParticipantInfo
	err        error
	cancelErr  error

	cancelCalls [][2]string
}

func (m *mockParticipantRepository) Register(ctx context.Context, eventID, userID string) (*domain.Registration, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	return m.reg, m.created, nil
}

func (m *mockParticipantRepository) Cancel(ctx context.Context, registrationID, userID string) error {
	m.cancelCalls = append(m.cancelCalls, [2]string{registrationID, userID})
	return m.cancelErr
}

func (m *mockParticipantRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.regsByUser[userID], nil
}

func (m *mockParticipantRepository) ListActiveByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*domain.ParticipantInfo, error) {
	if m.byEvent == nil {
		return map[string][]*domain.ParticipantInfo{}, nil
	}
	return m.byEvent, nil
}

type mockEventRepository struct {
	events  map[string]*domain.Event
	err     error
	updated *domain.Event

	cancelledIDs []string
	deletedIDs   []string
	replaced     map[string][]string
}

func (m *mockEventRepository) Create(ctx context.Context, e *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	e.ID = "ev-new"
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) GetActiveByID(ctx context.Context, id string) (*domain.Event, error) {
	ev, ok := m.events[id]
	if !ok || ev.CancelledAt != nil {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) ListActive(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []*domain.Event{}
	for _, ev := range m.events {
		if ev.CancelledAt == nil {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (m *mockEventRepository) Update(ctx context.Context, id string, upd *domain.EventUpdate) (*domain.Event, error) {
	if m.updated != nil {
		return m.updated, nil
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) SetCancelled(ctx context.Context, id string) error {
	m.cancelledIDs = append(m.cancelledIDs, id)
	return nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockEventRepository) ReplaceCategories(ctx context.Context, eventID string, categoryIDs []string) error {
	if m.replaced == nil {
		m.replaced = map[string][]string{}
	}
	m.replaced[eventID] = categoryIDs
	return nil
}

type mockCategoryRepository struct {
	categories map[string]*domain.Category
	byTitle    map[string]*domain.Category
	byEvent    map[string][]*domain.Category
	err        error
}

func (m *mockCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if m.err != nil {
		return m.err
	}
	c.ID = "cat-new"
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockCategoryRepository) GetByTitle(ctx context.Context, title string) (*domain.Category, error) {
	c, ok := m.byTitle[title]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	return nil, nil
}

func (m *mockCategoryRepository) ListByEventIDs(ctx context.Context, eventIDs []string) (map[string][]*domain.Category, error) {
	if m.byEvent == nil {
		return map[string][]*domain.Category{}, nil
	}
	return m.byEvent, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, id string, title, description *string) (*domain.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if title != nil {
		c.Title = *title
	}
	if description != nil {
		c.Description = description
	}
	return c, nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

type mockUserRepository struct {
	users   map[string]*domain.User
	byEmail map[string]*domain.User
	err     error

	deletedIDs      []string
	passwordUpdates map[string]string
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	if m.err != nil {
		return m.err
	}
	u.ID = "user-new"
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, id string, upd *domain.UserUpdate) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if m.passwordUpdates == nil {
		m.passwordUpdates = map[string]string{}
	}
	m.passwordUpdates[id] = passwordHash
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

type mockFileStore struct {
	uploads []string
	url     string
	err     error
}

func (m *mockFileStore) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.uploads = append(m.uploads, folder+"/"+contentType)
	if m.url != "" {
		return m.url, nil
	}
	return "https://files.test/" + folder + "/object", nil
}

func (m *mockFileStore) Delete(ctx context.Context, url string) error {
	return nil
}

type mockHasher struct {
	compareErr error
}

func (m *mockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	if m.compareErr != nil {
		return m.compareErr
	}
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type mockTokens struct {
	verifyClaims *domain.TokenClaims
	verifyErr    error
}

func (m *mockTokens) Issue(userID, email, role, tokenType string, expiry time.Duration) (string, error) {
	return tokenType + "-token-" + userID, nil
}

func (m *mockTokens) Verify(token string) (*domain.TokenClaims, error) {
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	return m.verifyClaims, nil
}
