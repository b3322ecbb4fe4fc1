package service

import (
	"context"
	"strings"

	"devlink/internal/models"
	"devlink/internal/repository"
)

const maxPostLength = 5000

// PostService handles the post feed, likes and comments.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

func validatePostText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("text is required")
	}
	if len(text) > maxPostLength {
		return models.NewValidationError("text must not exceed 5000 characters")
	}
	return nil
}

// Create makes a new post, stamping the author's current name and avatar
// onto it.
func (s *PostService) Create(ctx context.Context, userID uint, text string) (*models.Post, error) {
	if err := validatePostText(text); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   userID,
		Text:     text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns posts newest-first.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// Get loads a single post with its likes and comments.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, postID, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("User not authorized")
	}
	return s.postRepo.Delete(ctx, postID)
}

// Like records the caller's like and returns the post's updated like list.
// Liking a post twice fails, including under concurrent requests.
func (s *PostService) Like(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.postRepo.Like(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.postRepo.GetLikes(ctx, postID)
}

// Unlike removes the caller's like and returns the updated like list.
func (s *PostService) Unlike(ctx context.Context, postID, userID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.postRepo.Unlike(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.postRepo.GetLikes(ctx, postID)
}

// AddComment adds a comment with the author's snapshot fields and returns
// the post's updated comment list, newest first.
func (s *PostService) AddComment(ctx context.Context, postID, userID uint, text string) ([]models.Comment, error) {
	if err := validatePostText(text); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.postRepo.GetComments(ctx, postID)
}

// RemoveComment deletes a comment. Only the comment's author may remove it,
// and the comment must belong to the addressed post.
func (s *PostService) RemoveComment(ctx context.Context, postID, commentID, userID uint) ([]models.Comment, error) {
	comment, err := s.postRepo.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("User not authorized")
	}
	if err := s.postRepo.RemoveComment(ctx, postID, commentID); err != nil {
		return nil, err
	}
	return s.postRepo.GetComments(ctx, postID)
}
