package services

import (
	"context"
	"strings"
	"time"

	"blogcms/internal/errs"
	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/repository"
	"blogcms/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
	statsMonths      = 6
)

type PostService interface {
	Create(ctx context.Context, in models.PostInput) (*models.Post, error)
	// GetByID and GetBySlug hide drafts when publicOnly is set.
	GetByID(ctx context.Context, id string, publicOnly bool) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string, publicOnly bool) (*models.Post, error)
	List(ctx context.Context, f models.PostFilter) (*models.PostList, error)
	Update(ctx context.Context, id string, in models.PostInput) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	SetPublish(ctx context.Context, id string, publish bool) (*models.Post, error)
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type postService struct {
	repo repository.PostRepo
	now  func() time.Time
}

func NewPostService(repo repository.PostRepo) PostService {
	return &postService{repo: repo, now: time.Now}
}

func (s *postService) Create(ctx context.Context, in models.PostInput) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Info("creating post",
		zap.String("title", strings.TrimSpace(in.Title)),
		zap.Int("content_len", len(in.Content)),
	)

	p := &models.Post{Published: true}
	if err := applyInput(p, in); err != nil {
		log.Warn("post validation failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("failed to create post (repo)", zap.String("slug", p.Slug), zap.Error(err))
		return nil, err
	}

	log.Info("post created", zap.String("id", created.ID), zap.String("slug", created.Slug), zap.Bool("published", created.Published))
	return created, nil
}

func (s *postService) GetByID(ctx context.Context, id string, publicOnly bool) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Debug("fetching post by id", zap.String("id", id))

	if _, err := uuid.Parse(id); err != nil {
		return nil, errs.NotFoundf("post not found")
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Warn("post not found (repo)", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if publicOnly && !p.Published {
		return nil, errs.NotFoundf("post not found")
	}
	return p, nil
}

func (s *postService) GetBySlug(ctx context.Context, slug string, publicOnly bool) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Debug("fetching post by slug", zap.String("slug", slug))

	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		log.Warn("post not found by slug (repo)", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	if publicOnly && !p.Published {
		return nil, errs.NotFoundf("post not found")
	}
	return p, nil
}

func (s *postService) List(ctx context.Context, f models.PostFilter) (*models.PostList, error) {
	log := logger.WithCtx(ctx)

	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Category = strings.TrimSpace(f.Category)
	f.Query = strings.TrimSpace(f.Query)

	log.Debug("listing posts",
		zap.Int("limit", f.Limit),
		zap.Int("offset", f.Offset),
		zap.String("category", f.Category),
		zap.Any("published", f.Published),
	)

	items, err := s.repo.List(ctx, f)
	if err != nil {
		log.Error("failed to list posts (repo)", zap.Error(err))
		return nil, err
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		log.Error("failed to count posts (repo)", zap.Error(err))
		return nil, err
	}

	log.Debug("posts listed", zap.Int("count", len(items)), zap.Int("total", total))
	return &models.PostList{Items: items, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

func (s *postService) Update(ctx context.Context, id string, in models.PostInput) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Info("updating post", zap.String("id", id), zap.String("title", strings.TrimSpace(in.Title)))

	p, err := s.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := applyInput(p, in); err != nil {
		log.Warn("post validation failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		log.Error("failed to update post (repo)", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("post updated", zap.String("id", id), zap.Bool("published", updated.Published))
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	log := logger.WithCtx(ctx)
	log.Info("deleting post", zap.String("id", id))

	if _, err := uuid.Parse(id); err != nil {
		return errs.NotFoundf("post not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error("failed to delete post (repo)", zap.String("id", id), zap.Error(err))
		return err
	}

	log.Info("post deleted", zap.String("id", id))
	return nil
}

func (s *postService) SetPublish(ctx context.Context, id string, publish bool) (*models.Post, error) {
	log := logger.WithCtx(ctx)
	log.Info("changing publish state", zap.String("id", id), zap.Bool("publish", publish))

	if _, err := uuid.Parse(id); err != nil {
		return nil, errs.NotFoundf("post not found")
	}
	p, err := s.repo.UpdatePublish(ctx, id, publish)
	if err != nil {
		log.Error("failed to change publish state (repo)", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	log.Info("publish state changed", zap.String("id", id), zap.Bool("published", p.Published))
	return p, nil
}

// Stats reports totals and published posts per month for the current and
// previous five months; months without posts are reported as zero.
func (s *postService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	log := logger.WithCtx(ctx)

	published, draft := true, false
	total, err := s.repo.Count(ctx, models.PostFilter{})
	if err != nil {
		log.Error("failed to count posts (repo)", zap.Error(err))
		return nil, err
	}
	pub, err := s.repo.Count(ctx, models.PostFilter{Published: &published})
	if err != nil {
		log.Error("failed to count published posts (repo)", zap.Error(err))
		return nil, err
	}
	drafts, err := s.repo.Count(ctx, models.PostFilter{Published: &draft})
	if err != nil {
		log.Error("failed to count drafts (repo)", zap.Error(err))
		return nil, err
	}

	now := s.now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(statsMonths - 1), 0)
	counts, err := s.repo.CountPublishedByMonth(ctx, first)
	if err != nil {
		log.Error("failed to count posts per month (repo)", zap.Error(err))
		return nil, err
	}

	byMonth := make(map[string]int, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c.Count
	}
	perMonth := make([]models.MonthCount, 0, statsMonths)
	for i := 0; i < statsMonths; i++ {
		m := first.AddDate(0, i, 0).Format("2006-01")
		perMonth = append(perMonth, models.MonthCount{Month: m, Count: byMonth[m]})
	}

	log.Debug("dashboard stats computed", zap.Int("total", total), zap.Int("published", pub), zap.Int("drafts", drafts))
	return &models.DashboardStats{
		TotalPosts:     total,
		PublishedPosts: pub,
		DraftPosts:     drafts,
		PostsPerMonth:  perMonth,
	}, nil
}

// applyInput validates in and copies it over p. Published is left untouched
// when the input omits it.
func applyInput(p *models.Post, in models.PostInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return errs.Validationf("title is required").WithDetails(map[string]string{"field": "title"})
	}
	if strings.TrimSpace(in.Content) == "" {
		return errs.Validationf("content is required").WithDetails(map[string]string{"field": "content"})
	}

	slug := utils.Slugify(in.Slug)
	if strings.TrimSpace(in.Slug) == "" {
		slug = utils.Slugify(title)
	}
	if slug == "" {
		return errs.Validationf("slug is empty, provide one with latin letters or digits").
			WithDetails(map[string]string{"field": "slug"})
	}

	p.Title = title
	p.Slug = slug
	p.Content = in.Content
	p.Author = strings.TrimSpace(in.Author)
	p.Excerpt = strPtr(in.Excerpt)
	p.Category = strPtr(in.Category)
	p.ReadTime = strPtr(in.ReadTime)
	p.ImageURL = strPtr(in.ImageURL)
	p.ImageAlt = strPtr(in.ImageAlt)
	p.Featured = in.Featured
	if in.Published != nil {
		p.Published = *in.Published
	}
	return nil
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
