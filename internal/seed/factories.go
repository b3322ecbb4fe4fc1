package seed

import (
	"fmt"
	"strings"
	"time"

	"devlink/internal/models"
	"devlink/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

var devStatuses = []string{
	"Junior Developer",
	"Developer",
	"Senior Developer",
	"Staff Engineer",
	"Engineering Manager",
	"Student or Learning",
	"Instructor",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "SQL",
	"PostgreSQL", "Redis", "Docker", "Kubernetes", "React", "gRPC",
}

// NewUser builds a user with a bcrypt-hashed password. All seeded users
// share the password "password1" for local testing.
func NewUser() *models.User {
	email := strings.ToLower(gofakeit.Email())
	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	return &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hash),
		Avatar:   service.GravatarURL(email),
	}
}

// NewProfile builds a profile for the given user.
func NewProfile(userID uint) *models.Profile {
	nSkills := gofakeit.Number(2, 6)
	idx := seq(len(skillPool))
	gofakeit.ShuffleInts(idx)
	skills := make([]string, 0, nSkills)
	for _, i := range idx[:nSkills] {
		skills = append(skills, skillPool[i])
	}

	return &models.Profile{
		UserID:         userID,
		Status:         gofakeit.RandomString(devStatuses),
		Skills:         skills,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Bio:            gofakeit.Sentence(12),
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Social: models.SocialLinks{
			Twitter:  "https://twitter.com/" + strings.ToLower(gofakeit.Username()),
			LinkedIn: "https://linkedin.com/in/" + strings.ToLower(gofakeit.Username()),
		},
	}
}

// NewExperience builds a work history entry for the given profile.
func NewExperience(profileID uint) *models.Experience {
	from := gofakeit.DateRange(
		time.Now().AddDate(-8, 0, 0),
		time.Now().AddDate(-1, 0, 0),
	)
	current := gofakeit.Bool()
	var to *time.Time
	if !current {
		t := gofakeit.DateRange(from, time.Now())
		to = &t
	}
	return &models.Experience{
		ProfileID:   profileID,
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		From:        from,
		To:          to,
		Current:     current,
		Description: gofakeit.Sentence(10),
	}
}

// NewEducation builds a schooling entry for the given profile.
func NewEducation(profileID uint) *models.Education {
	from := gofakeit.DateRange(
		time.Now().AddDate(-12, 0, 0),
		time.Now().AddDate(-5, 0, 0),
	)
	to := from.AddDate(4, 0, 0)
	return &models.Education{
		ProfileID:    profileID,
		School:       gofakeit.Company() + " University",
		Degree:       gofakeit.RandomString([]string{"BSc", "MSc", "Bootcamp Certificate"}),
		FieldOfStudy: gofakeit.RandomString([]string{"Computer Science", "Software Engineering", "Information Systems"}),
		From:         from,
		To:           &to,
		Description:  gofakeit.Sentence(8),
	}
}

// NewPost builds a post stamped with the author's snapshot fields.
func NewPost(author *models.User) *models.Post {
	return &models.Post{
		UserID: author.ID,
		Text:   gofakeit.Paragraph(1, gofakeit.Number(1, 3), gofakeit.Number(5, 15), " "),
		Name:   author.Name,
		Avatar: author.Avatar,
	}
}

// NewComment builds a comment by the given author on the given post.
func NewComment(postID uint, author *models.User) *models.Comment {
	return &models.Comment{
		PostID: postID,
		UserID: author.ID,
		Text:   gofakeit.Sentence(gofakeit.Number(4, 12)),
		Name:   author.Name,
		Avatar: author.Avatar,
	}
}

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}
