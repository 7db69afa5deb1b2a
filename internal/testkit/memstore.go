// Package testkit provides in-memory stores that behave like the gorm
// repositories: every read returns a detached copy and every write replaces
// the stored row.
package testkit

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"devconnector/internal/model"
)

type Store struct {
	mu       sync.Mutex
	nextID   uint
	users    map[uint]model.User
	profiles map[uint]model.Profile // keyed by user id
	posts    map[uint]model.Post

	// Err, when set, is returned by every operation.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:    map[uint]model.User{},
		profiles: map[uint]model.Profile{},
		posts:    map[uint]model.Post{},
	}
}

func (s *Store) Users() *UserStore       { return &UserStore{s} }
func (s *Store) Profiles() *ProfileStore { return &ProfileStore{s} }
func (s *Store) Posts() *PostStore       { return &PostStore{s} }

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

type UserStore struct{ s *Store }

func (u *UserStore) Create(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.Err != nil {
		return u.s.Err
	}
	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = u.s.id()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	u.s.users[user.ID] = *user
	return nil
}

func (u *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.Err != nil {
		return nil, u.s.Err
	}
	for _, user := range u.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, nil
}

func (u *UserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.Err != nil {
		return nil, u.s.Err
	}
	user, ok := u.s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

type ProfileStore struct{ s *Store }

func (p *ProfileStore) GetByUserID(_ context.Context, userID uint) (*model.Profile, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.Err != nil {
		return nil, p.s.Err
	}
	profile, ok := p.s.profiles[userID]
	if !ok {
		return nil, nil
	}
	out := p.s.joined(profile)
	return &out, nil
}

func (p *ProfileStore) List(_ context.Context) ([]model.Profile, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.Err != nil {
		return nil, p.s.Err
	}
	out := make([]model.Profile, 0, len(p.s.profiles))
	for _, profile := range p.s.profiles {
		out = append(out, p.s.joined(profile))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (p *ProfileStore) Create(_ context.Context, profile *model.Profile) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.Err != nil {
		return p.s.Err
	}
	profile.ID = p.s.id()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	p.s.profiles[profile.UserID] = detachProfile(*profile)
	return nil
}

func (p *ProfileStore) Save(_ context.Context, profile *model.Profile) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.Err != nil {
		return p.s.Err
	}
	if _, ok := p.s.profiles[profile.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p.s.profiles[profile.UserID] = detachProfile(*profile)
	return nil
}

func (p *ProfileStore) DeleteAccount(_ context.Context, userID uint) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.Err != nil {
		return p.s.Err
	}
	delete(p.s.profiles, userID)
	delete(p.s.users, userID)
	return nil
}

// joined must be called with the lock held.
func (s *Store) joined(profile model.Profile) model.Profile {
	out := detachProfile(profile)
	if user, ok := s.users[profile.UserID]; ok {
		out.User = &model.PublicUser{ID: user.ID, Name: user.Name, Avatar: user.Avatar}
	}
	out.AfterFind(nil)
	return out
}

func detachProfile(p model.Profile) model.Profile {
	p.User = nil
	p.Skills = slices.Clone(p.Skills)
	p.Experience = slices.Clone(p.Experience)
	p.Education = slices.Clone(p.Education)
	return p
}

type PostStore struct{ s *Store }

func (p *PostStore) Create(_ context.Context, post *model.Post) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.Err != nil {
		return p.s.Err
	}
	post.ID = p.s.id()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	p.s.posts[post.ID] = detachPost(*post)
	return nil
}

func (p *PostStore) ListNewestFirst(_ context.Context) ([]model.Post, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.Err != nil {
		return nil, p.s.Err
	}
	out := make([]model.Post, 0, len(p.s.posts))
	for _, post := range p.s.posts {
		out = append(out, detachPost(post))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (p *PostStore) GetByID(_ context.Context, id uint) (*model.Post, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.Err != nil {
		return nil, p.s.Err
	}
	post, ok := p.s.posts[id]
	if !ok {
		return nil, nil
	}
	out := detachPost(post)
	return &out, nil
}

func (p *PostStore) Save(_ context.Context, post *model.Post) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.Err != nil {
		return p.s.Err
	}
	if _, ok := p.s.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	p.s.posts[post.ID] = detachPost(*post)
	return nil
}

func (p *PostStore) Delete(_ context.Context, id uint) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if p.s.Err != nil {
		return p.s.Err
	}
	delete(p.s.posts, id)
	return nil
}

func detachPost(p model.Post) model.Post {
	p.Comments = slices.Clone(p.Comments)
	if p.Comments == nil {
		p.Comments = []model.CommentEntry{}
	}
	return p
}
