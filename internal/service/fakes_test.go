package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/odm275/dev-network/internal/apperr"
	"github.com/odm275/dev-network/internal/models"
	"github.com/odm275/dev-network/internal/store"
)

type memUsers struct {
	mu    sync.Mutex
	byID  map[string]models.User
	calls int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]models.User{}}
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return apperr.ErrEmailTaken
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	m.byID[u.ID] = *u
	return nil
}

func (m *memUsers) EmailExists(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.byID {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, apperr.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, apperr.ErrUserNotFound
	}
	return &u, nil
}

type memProfiles struct {
	mu     sync.Mutex
	byUser map[string]models.Profile
	writes int
}

func newMemProfiles() *memProfiles {
	return &memProfiles{byUser: map[string]models.Profile{}}
}

func cloneProfile(p models.Profile) models.Profile {
	p.Skills = append([]string(nil), p.Skills...)
	p.Experience = append(models.Experiences(nil), p.Experience...)
	p.Education = append(models.Educations(nil), p.Education...)
	social := models.SocialLinks{}
	for k, v := range p.Social {
		social[k] = v
	}
	p.Social = social
	return p
}

func (m *memProfiles) FindByUser(_ context.Context, userID string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byUser[userID]
	if !ok {
		return nil, apperr.ErrProfileNotFound
	}
	p = cloneProfile(p)
	return &p, nil
}

func (m *memProfiles) FindByHandle(_ context.Context, handle string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byUser {
		if p.Handle == handle {
			p = cloneProfile(p)
			return &p, nil
		}
	}
	return nil, apperr.ErrProfileNotFound
}

func (m *memProfiles) List(_ context.Context, _ store.ListParams) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Profile, 0, len(m.byUser))
	for _, p := range m.byUser {
		out = append(out, cloneProfile(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out, nil
}

func (m *memProfiles) HandleTaken(_ context.Context, handle string, exceptUserID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for userID, p := range m.byUser {
		if p.Handle == handle && userID != exceptUserID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memProfiles) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byUser[p.UserID]; exists {
		return nil, store.ErrProfileExists
	}
	m.writes++
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.User = models.Owner{ID: p.UserID}
	m.byUser[p.UserID] = cloneProfile(*p)
	created := cloneProfile(*p)
	return &created, nil
}

func (m *memProfiles) Mutate(_ context.Context, userID string, fn func(p *models.Profile) error) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byUser[userID]
	if !ok {
		return nil, apperr.ErrProfileNotFound
	}
	working := cloneProfile(stored)
	if err := fn(&working); err != nil {
		return nil, err
	}
	m.writes++
	m.byUser[userID] = cloneProfile(working)
	return &working, nil
}

func (m *memProfiles) DeleteWithUser(_ context.Context, userID string) (store.DeleteSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, had := m.byUser[userID]
	delete(m.byUser, userID)
	return store.DeleteSummary{UserID: userID, DeletedProfile: had}, nil
}

type memPosts struct {
	mu   sync.Mutex
	byID map[string]models.Post
	seq  int
}

func newMemPosts() *memPosts {
	return &memPosts{byID: map[string]models.Post{}}
}

func clonePost(p models.Post) models.Post {
	p.Likes = append(models.Likes{}, p.Likes...)
	p.Comments = append(models.Comments{}, p.Comments...)
	return p
}

func (m *memPosts) Create(_ context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Unix(int64(m.seq), 0)
	m.byID[p.ID] = clonePost(*p)
	return nil
}

func (m *memPosts) FindByID(_ context.Context, id string) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, apperr.ErrPostNotFound
	}
	p = clonePost(p)
	return &p, nil
}

func (m *memPosts) List(_ context.Context, _ store.ListParams) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Post, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memPosts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return apperr.ErrPostNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memPosts) Mutate(_ context.Context, id string, fn func(p *models.Post) error) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.byID[id]
	if !ok {
		return nil, apperr.ErrPostNotFound
	}
	working := clonePost(stored)
	if err := fn(&working); err != nil {
		return nil, err
	}
	m.byID[id] = clonePost(working)
	return &working, nil
}
