package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/glowstories/glowstories-backend/internal/config"
	"github.com/glowstories/glowstories-backend/internal/database"
	"github.com/glowstories/glowstories-backend/internal/logging"
	"github.com/glowstories/glowstories-backend/internal/models"
	"github.com/glowstories/glowstories-backend/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultTopics = []models.Topic{
	{Name: "Rhinoplasty", Slug: "rhinoplasty", Icon: "nose", Description: strPtr("Nose reshaping stories and advice"), SortOrder: 1},
	{Name: "Hair Transplant", Slug: "hair-transplant", Icon: "hair", Description: strPtr("FUE and DHI experiences"), SortOrder: 2},
	{Name: "Dental Aesthetics", Slug: "dental-aesthetics", Icon: "tooth", Description: strPtr("Veneers, implants and smile design"), SortOrder: 3},
	{Name: "Body Contouring", Slug: "body-contouring", Icon: "body", Description: strPtr("Liposuction, tummy tuck and BBL"), SortOrder: 4},
	{Name: "Skin & Face", Slug: "skin-face", Icon: "face", Description: strPtr("Botox, fillers and facelifts"), SortOrder: 5},
	{Name: "Eye Surgery", Slug: "eye-surgery", Icon: "eye", Description: strPtr("Blepharoplasty and LASIK"), SortOrder: 6},
}

func strPtr(s string) *string { return &s }

var seedTags = []string{
	"recovery", "before-after", "turkey", "cost", "first-week",
	"swelling", "surgeon-choice", "revision", "consultation",
}

func main() {
	users := flag.Int("users", 20, "number of fake users to create")
	posts := flag.Int("posts", 50, "number of fake posts to create")
	comments := flag.Int("comments", 100, "number of fake comments to create")
	flag.Parse()

	logging.Setup()
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	db := database.DB
	tagService := services.NewTagService(db)

	// Admin account for moderation and generated content ownership.
	admin := models.User{
		Username: "admin",
		Password: mustHash("admin12345"),
		Role:     models.RoleAdmin,
		Verified: true,
	}
	if err := db.Where("username = ?", admin.Username).FirstOrCreate(&admin).Error; err != nil {
		slog.Error("admin seed failed", "error", err)
		os.Exit(1)
	}

	for i := range defaultTopics {
		topic := defaultTopics[i]
		if err := db.Where("slug = ?", topic.Slug).FirstOrCreate(&topic).Error; err != nil {
			slog.Error("topic seed failed", "slug", topic.Slug, "error", err)
			os.Exit(1)
		}
		defaultTopics[i].ID = topic.ID
	}
	slog.Info("topics seeded", "count", len(defaultTopics))

	seededUsers := make([]models.User, 0, *users)
	for i := 0; i < *users; i++ {
		email := gofakeit.Email()
		bio := gofakeit.Sentence(10)
		avatar := gofakeit.ImageURL(100, 100)
		user := models.User{
			Username:  gofakeit.Username(),
			Email:     &email,
			Password:  mustHash(gofakeit.Password(true, true, true, false, false, 12)),
			Role:      models.RoleUser,
			Bio:       &bio,
			AvatarURL: &avatar,
		}
		if rand.Intn(5) == 0 {
			ct := models.ValidContributorTypes[rand.Intn(len(models.ValidContributorTypes))]
			user.Role = models.RoleContributor
			user.ContributorType = &ct
		}
		if err := db.Create(&user).Error; err != nil {
			slog.Warn("user seed skipped", "username", user.Username, "error", err)
			continue
		}
		seededUsers = append(seededUsers, user)
	}
	slog.Info("users seeded", "count", len(seededUsers))

	if len(seededUsers) == 0 {
		slog.Error("no users seeded, aborting")
		os.Exit(1)
	}

	statuses := []models.PostStatus{
		models.PostPublished, models.PostPublished, models.PostPublished,
		models.PostPending, models.PostFlagged,
	}

	seededPosts := make([]models.Post, 0, *posts)
	for i := 0; i < *posts; i++ {
		author := seededUsers[rand.Intn(len(seededUsers))]
		topic := defaultTopics[rand.Intn(len(defaultTopics))]
		post := models.Post{
			UserID:  author.ID,
			Title:   gofakeit.Sentence(gofakeit.Number(5, 12)),
			Content: gofakeit.Paragraph(3, 5, 20, "\n\n"),
			TopicID: &topic.ID,
			Status:  statuses[rand.Intn(len(statuses))],
		}
		if err := db.Create(&post).Error; err != nil {
			slog.Warn("post seed skipped", "title", post.Title, "error", err)
			continue
		}

		names := pickTags(2 + rand.Intn(2))
		if err := tagService.AttachTags(post.ID, names); err != nil {
			slog.Warn("tag attach failed", "post_id", post.ID, "error", err)
		}
		seededPosts = append(seededPosts, post)
	}
	slog.Info("posts seeded", "count", len(seededPosts))

	published := make([]models.Post, 0, len(seededPosts))
	for _, p := range seededPosts {
		if p.Status == models.PostPublished {
			published = append(published, p)
		}
	}

	created := 0
	for i := 0; i < *comments && len(published) > 0; i++ {
		author := seededUsers[rand.Intn(len(seededUsers))]
		post := published[rand.Intn(len(published))]
		comment := models.Comment{
			PostID:  post.ID,
			UserID:  author.ID,
			Content: gofakeit.Sentence(gofakeit.Number(5, 25)),
			Status:  models.CommentPublished,
		}
		if err := db.Create(&comment).Error; err != nil {
			slog.Warn("comment seed skipped", "error", err)
			continue
		}
		if err := db.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
			slog.Warn("comment count bump failed", "post_id", post.ID, "error", err)
		}
		created++
	}
	slog.Info("comments seeded", "count", created)

	slog.Info("seeding complete")
}

func pickTags(n int) []string {
	perm := rand.Perm(len(seedTags))
	names := make([]string, 0, n)
	for _, idx := range perm[:n] {
		names = append(names, seedTags[idx])
	}
	return names
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("bcrypt hash failed", "error", err)
		os.Exit(1)
	}
	return string(hash)
}
