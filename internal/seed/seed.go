// Package seed populates the database with realistic development data.
package seed

import (
	"fmt"

	"devlink/internal/middleware"
	"devlink/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options controls the amount of generated data.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	Seed            int64
}

// DefaultOptions returns a small but representative dataset.
func DefaultOptions() Options {
	return Options{
		Users:           25,
		PostsPerUser:    3,
		CommentsPerPost: 2,
		Seed:            0,
	}
}

// Run fills the database with fake users, profiles, posts, likes and
// comments. It is idempotent-ish for dev use only: running twice just adds
// more data.
func Run(db *gorm.DB, opts Options) error {
	if opts.Seed != 0 {
		gofakeit.Seed(opts.Seed)
	}

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u := NewUser()
		if err := db.Create(u).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, u)
	}

	for _, u := range users {
		p := NewProfile(u.ID)
		if err := db.Create(p).Error; err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}
		for i := 0; i < gofakeit.Number(1, 3); i++ {
			if err := db.Create(NewExperience(p.ID)).Error; err != nil {
				return fmt.Errorf("seed experience: %w", err)
			}
		}
		for i := 0; i < gofakeit.Number(0, 2); i++ {
			if err := db.Create(NewEducation(p.ID)).Error; err != nil {
				return fmt.Errorf("seed education: %w", err)
			}
		}
	}

	for _, u := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post := NewPost(u)
			if err := db.Create(post).Error; err != nil {
				return fmt.Errorf("seed post: %w", err)
			}

			for j := 0; j < opts.CommentsPerPost; j++ {
				commenter := users[gofakeit.Number(0, len(users)-1)]
				if err := db.Create(NewComment(post.ID, commenter)).Error; err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}

			// Random likers; ON CONFLICT absorbs duplicate picks.
			for j := 0; j < gofakeit.Number(0, 5); j++ {
				liker := users[gofakeit.Number(0, len(users)-1)]
				like := models.Like{PostID: post.ID, UserID: liker.ID}
				if err := db.Clauses(clause.OnConflict{DoNothing: true}).
					Create(&like).Error; err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
		}
	}

	middleware.Logger.Info("seed complete",
		"users", opts.Users,
		"posts", opts.Users*opts.PostsPerUser,
	)
	return nil
}
