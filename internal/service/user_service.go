// Package service contains the business logic layer between HTTP handlers
// and repositories.
package service

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"strings"

	"devlink/internal/cache"
	"devlink/internal/middleware"
	"devlink/internal/models"
	"devlink/internal/repository"
	"devlink/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles registration, authentication and account lifecycle.
type UserService struct {
	userRepo repository.UserRepository
	db       *gorm.DB
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, db *gorm.DB) *UserService {
	return &UserService{userRepo: userRepo, db: db}
}

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GravatarURL derives the avatar URL for an email address.
func GravatarURL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", hash)
}

// Register creates a new user with a bcrypt-hashed password and a
// gravatar-derived avatar.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validation.ValidateName(input.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.ToLower(strings.TrimSpace(input.Email)),
		Password: string(hashed),
		Avatar:   GravatarURL(input.Email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password both return
// the same invalid-credentials error so the two cases cannot be told apart.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, models.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewInvalidCredentialsError()
	}
	return user, nil
}

// GetUser loads a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// DeleteAccount removes the user and everything they own in one transaction:
// their likes and comments everywhere, their posts (with those posts' likes
// and comments), their profile with its sub-records, and finally the user row.
// Rows are removed for real (no soft delete) so the email becomes free to
// register again. Every post whose cache entry the cascade could leave stale
// is evicted after commit.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	var touchedPosts []uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&models.Post{}).
			Where("user_id = ?", userID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		// Other users' posts this user liked or commented on; their cached
		// like/comment lists go stale once the rows below are gone.
		var likedIDs, commentedIDs []uint
		if err := tx.Model(&models.Like{}).
			Where("user_id = ?", userID).
			Pluck("post_id", &likedIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Comment{}).
			Where("user_id = ?", userID).
			Pluck("post_id", &commentedIDs).Error; err != nil {
			return err
		}
		touchedPosts = append(append(postIDs, likedIDs...), commentedIDs...)

		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		// Likes and comments this user left on other people's posts.
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		var profile models.Profile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Delete(&profile).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Hard delete: a soft-deleted row would keep holding the unique
		// email index entry forever.
		res := tx.Unscoped().Delete(&models.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("User", userID)
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*models.AppError); ok {
			return err
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateUser(ctx, userID)
	cache.InvalidateProfile(ctx, userID)
	seen := make(map[uint]struct{}, len(touchedPosts))
	for _, id := range touchedPosts {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		cache.InvalidatePost(ctx, id)
	}
	middleware.Logger.InfoContext(ctx, "account deleted", "user_id", userID)
	return nil
}
