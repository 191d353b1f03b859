package services

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"time"

	"github.com/glowstories/glowstories-backend/internal/generation"
	"github.com/glowstories/glowstories-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNoAdminUser       = errors.New("no admin user available to own generated posts")
	ErrGenerationFailed  = errors.New("content generation failed")
	ErrGeneratorDisabled = errors.New("generation provider not configured")
)

// Generator is the slice of the generation client this service needs;
// tests substitute a stub.
type Generator interface {
	IsAvailable() bool
	Generate(ctx context.Context, p generation.Params) (*generation.Result, error)
}

// Fixed parameter pools for scheduled and one-shot generation.
var (
	agePool    = []string{"20s", "30s", "40s", "50s", "60s"}
	genderPool = []string{"female", "male", "non-binary"}

	procedurePool = []string{
		"rhinoplasty", "breast augmentation", "liposuction", "facelift",
		"eyelid surgery", "tummy tuck", "hair transplant", "lip filler",
		"botox", "laser skin resurfacing",
	}

	reasonPool = []string{
		"post-pregnancy confidence", "long-standing insecurity",
		"career and visibility", "recovery after weight loss",
		"aging gracefully on own terms", "correcting an old injury",
	}
)

// GenerationService drives the AI content pipeline: one-shot, batch and
// scheduled generation all land here. Per-item failures are logged and
// skipped; only the absence of an admin owner aborts a run.
type GenerationService struct {
	db         *gorm.DB
	client     Generator
	posts      *PostService
	batchDelay time.Duration
}

func NewGenerationService(db *gorm.DB, client Generator, posts *PostService, batchDelay time.Duration) *GenerationService {
	return &GenerationService{db: db, client: client, posts: posts, batchDelay: batchDelay}
}

// adminOwner picks the identity that owns generated posts: the oldest
// admin account.
func (s *GenerationService) adminOwner() (*models.User, error) {
	var admin models.User
	err := s.db.Where("role IN ?", []string{models.RoleAdmin, models.RoleSuperadmin}).
		Order("created_at ASC").
		First(&admin).Error
	if err != nil {
		return nil, ErrNoAdminUser
	}
	return &admin, nil
}

func randomParams(contentType string) generation.Params {
	return generation.Params{
		Age:         agePool[rand.Intn(len(agePool))],
		Gender:      genderPool[rand.Intn(len(genderPool))],
		Procedure:   procedurePool[rand.Intn(len(procedurePool))],
		Reason:      reasonPool[rand.Intn(len(reasonPool))],
		ContentType: contentType,
	}
}

// GenerateOne produces and persists a single post with randomized
// parameters. Used by the admin one-shot endpoint and the scheduler.
func (s *GenerationService) GenerateOne(ctx context.Context) (*models.Post, error) {
	contentType := generation.ContentPersonal
	if rand.Intn(2) == 0 {
		contentType = generation.ContentEducational
	}
	return s.generate(ctx, randomParams(contentType))
}

// GenerateCustom produces a post from admin-supplied parameters.
func (s *GenerationService) GenerateCustom(ctx context.Context, p generation.Params) (*models.Post, error) {
	if p.ContentType == "" {
		p.ContentType = generation.ContentPersonal
	}
	return s.generate(ctx, p)
}

func (s *GenerationService) generate(ctx context.Context, p generation.Params) (*models.Post, error) {
	if !s.client.IsAvailable() {
		return nil, ErrGeneratorDisabled
	}

	admin, err := s.adminOwner()
	if err != nil {
		return nil, err
	}

	result, err := s.client.Generate(ctx, p)
	if err != nil {
		slog.Error("content generation failed", "action", "generate_post", "error", err.Error(), "procedure", p.Procedure)
		return nil, ErrGenerationFailed
	}

	return s.posts.CreateGenerated(admin.ID, result.Title, result.Content, nil, result.Tags)
}

// GenerateBatch produces up to count posts sequentially, alternating
// educational and personal voices, sleeping between upstream calls to avoid
// bursting the provider. A failed item is logged and skipped; the batch
// carries on and returns whatever was created.
func (s *GenerationService) GenerateBatch(ctx context.Context, count int) ([]models.Post, error) {
	if !s.client.IsAvailable() {
		return nil, ErrGeneratorDisabled
	}
	if count <= 0 {
		count = 4
	}
	if count > 10 {
		count = 10
	}

	admin, err := s.adminOwner()
	if err != nil {
		return nil, err
	}

	created := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		contentType := generation.ContentEducational
		if i%2 == 1 {
			contentType = generation.ContentPersonal
		}

		result, err := s.client.Generate(ctx, randomParams(contentType))
		if err != nil {
			slog.Error("batch generation item failed", "action", "generate_batch", "error", err.Error(), "item", i)
			continue
		}

		post, err := s.posts.CreateGenerated(admin.ID, result.Title, result.Content, nil, result.Tags)
		if err != nil {
			slog.Error("failed to persist generated post", "action", "generate_batch", "error", err.Error(), "item", i)
			continue
		}
		created = append(created, *post)

		if i < count-1 && s.batchDelay > 0 {
			select {
			case <-time.After(s.batchDelay):
			case <-ctx.Done():
				return created, ctx.Err()
			}
		}
	}
	return created, nil
}
