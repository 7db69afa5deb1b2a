package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"devconnector/internal/model"
)

type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	ListNewestFirst(ctx context.Context) ([]model.Post, error)
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	Save(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uint) error
}

type PostService struct {
	posts PostStore
	users UserStore
	newID func() string
	now   func() time.Time
}

func NewPostService(posts PostStore, users UserStore) *PostService {
	return &PostService{
		posts: posts,
		users: users,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

func (s *PostService) Create(ctx context.Context, userID uint, text string) (*model.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Fields: []FieldError{{Param: "text", Msg: "Text is required"}}}
	}

	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID:    userID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		Comments:  []model.CommentEntry{},
		CreatedAt: s.now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListAll(ctx context.Context) ([]model.Post, error) {
	return s.posts.ListNewestFirst(ctx)
}

// GetByID treats ids that do not parse the same as ids that do not exist.
func (s *PostService) GetByID(ctx context.Context, rawID string) (*model.Post, error) {
	id, ok := parseID(rawID)
	if !ok {
		return nil, ErrPostNotFound
	}
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, userID uint, rawID string) error {
	post, err := s.GetByID(ctx, rawID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrForbidden
	}
	return s.posts.Delete(ctx, post.ID)
}

func (s *PostService) AddComment(ctx context.Context, userID uint, rawPostID, text string) ([]model.CommentEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Fields: []FieldError{{Param: "text", Msg: "Text is required"}}}
	}

	post, err := s.GetByID(ctx, rawPostID)
	if err != nil {
		return nil, err
	}
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	post.AddComment(model.CommentEntry{
		ID:        s.newID(),
		UserID:    userID,
		Text:      text,
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: s.now(),
	})
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// RemoveComment finds the comment first, then checks the caller wrote it.
func (s *PostService) RemoveComment(ctx context.Context, userID uint, rawPostID, commentID string) ([]model.CommentEntry, error) {
	post, err := s.GetByID(ctx, rawPostID)
	if err != nil {
		return nil, err
	}

	comment := post.FindComment(commentID)
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}

	post.RemoveComment(commentID)
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}

// save reports a post deleted since it was read as not found.
func (s *PostService) save(ctx context.Context, post *model.Post) error {
	err := s.posts.Save(ctx, post)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	return err
}

func (s *PostService) author(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
