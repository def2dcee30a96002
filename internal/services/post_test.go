package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"blogcms/internal/errs"
	"blogcms/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPostRepo is an in-memory PostRepo with the same published_at rules as SQL.
type memPostRepo struct {
	posts  map[string]*models.Post
	months []models.MonthCount
	since  time.Time
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[string]*models.Post{}}
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	return &c
}

func (m *memPostRepo) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	for _, other := range m.posts {
		if other.Slug == p.Slug {
			return nil, errs.New(errs.Conflict, "post already exists")
		}
	}
	c := clonePost(p)
	c.ID = uuid.NewString()
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Published {
		c.PublishedAt = &now
	}
	m.posts[c.ID] = c
	return clonePost(c), nil
}

func (m *memPostRepo) GetByID(_ context.Context, id string) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, errs.NotFoundf("post not found")
	}
	return clonePost(p), nil
}

func (m *memPostRepo) GetBySlug(_ context.Context, slug string) (*models.Post, error) {
	for _, p := range m.posts {
		if p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return nil, errs.NotFoundf("post not found")
}

func (m *memPostRepo) match(f models.PostFilter) []*models.Post {
	var out []*models.Post
	for _, p := range m.posts {
		if f.Published != nil && p.Published != *f.Published {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if f.Category != "" && (p.Category == nil || *p.Category != f.Category) {
			continue
		}
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memPostRepo) List(_ context.Context, f models.PostFilter) ([]*models.Post, error) {
	all := m.match(f)
	if f.Offset >= len(all) {
		return []*models.Post{}, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && len(all) > f.Limit {
		all = all[:f.Limit]
	}
	return all, nil
}

func (m *memPostRepo) Count(_ context.Context, f models.PostFilter) (int, error) {
	return len(m.match(f)), nil
}

func (m *memPostRepo) Update(_ context.Context, p *models.Post) (*models.Post, error) {
	old, ok := m.posts[p.ID]
	if !ok {
		return nil, errs.NotFoundf("post not found")
	}
	c := clonePost(p)
	c.CreatedAt = old.CreatedAt
	c.PublishedAt = old.PublishedAt
	if c.Published && c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}
	c.UpdatedAt = time.Now()
	m.posts[c.ID] = c
	return clonePost(c), nil
}

func (m *memPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.posts[id]; !ok {
		return errs.NotFoundf("post not found")
	}
	delete(m.posts, id)
	return nil
}

func (m *memPostRepo) UpdatePublish(_ context.Context, id string, publish bool) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, errs.NotFoundf("post not found")
	}
	p.Published = publish
	if publish && p.PublishedAt == nil {
		now := time.Now()
		p.PublishedAt = &now
	}
	return clonePost(p), nil
}

func (m *memPostRepo) CountPublishedByMonth(_ context.Context, since time.Time) ([]models.MonthCount, error) {
	m.since = since
	return m.months, nil
}

func TestPostCreate_Defaults(t *testing.T) {
	svc := NewPostService(newMemPostRepo())

	p, err := svc.Create(context.Background(), models.PostInput{
		Title:   "  Hello, World!  ",
		Content: "# Body",
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello, World!", p.Title)
	assert.Equal(t, "hello-world", p.Slug)
	assert.True(t, p.Published)
	assert.False(t, p.Featured)
	assert.NotNil(t, p.PublishedAt)
	assert.Nil(t, p.Excerpt)
}

func TestPostCreate_DraftAndExplicitSlug(t *testing.T) {
	svc := NewPostService(newMemPostRepo())
	draft := false

	p, err := svc.Create(context.Background(), models.PostInput{
		Title:     "Title",
		Slug:      "My Custom Slug",
		Content:   "body",
		Published: &draft,
	})
	require.NoError(t, err)
	assert.Equal(t, "my-custom-slug", p.Slug)
	assert.False(t, p.Published)
	assert.Nil(t, p.PublishedAt)
}

func TestPostCreate_Validation(t *testing.T) {
	svc := NewPostService(newMemPostRepo())

	cases := []models.PostInput{
		{Title: "", Content: "body"},
		{Title: "Title", Content: "   "},
		{Title: "???", Content: "body"},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), in)
		assert.True(t, errs.Is(err, errs.Validation), "%+v: %v", in, err)
	}
}

func TestPostCreate_SlugConflict(t *testing.T) {
	svc := NewPostService(newMemPostRepo())

	_, err := svc.Create(context.Background(), models.PostInput{Title: "Same", Content: "a"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), models.PostInput{Title: "Same", Content: "b"})
	assert.True(t, errs.Is(err, errs.Conflict))
}

func TestPostGet_PublicHidesDrafts(t *testing.T) {
	svc := NewPostService(newMemPostRepo())
	draft := false

	p, err := svc.Create(context.Background(), models.PostInput{Title: "Draft", Content: "x", Published: &draft})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), p.ID, true)
	assert.True(t, errs.Is(err, errs.NotFound))
	_, err = svc.GetBySlug(context.Background(), p.Slug, true)
	assert.True(t, errs.Is(err, errs.NotFound))

	got, err := svc.GetByID(context.Background(), p.ID, false)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestPostGet_MalformedIDIsNotFound(t *testing.T) {
	svc := NewPostService(newMemPostRepo())
	_, err := svc.GetByID(context.Background(), "42", false)
	assert.True(t, errs.Is(err, errs.NotFound))
	assert.True(t, errs.Is(svc.Delete(context.Background(), "nope"), errs.NotFound))
}

func TestPostUpdate_KeepsPublishedAt(t *testing.T) {
	svc := NewPostService(newMemPostRepo())

	p, err := svc.Create(context.Background(), models.PostInput{Title: "One", Content: "x"})
	require.NoError(t, err)
	firstPublished := *p.PublishedAt

	off := false
	_, err = svc.SetPublish(context.Background(), p.ID, false)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), p.ID, models.PostInput{
		Title: "One (edited)", Content: "y", Published: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "one-edited", updated.Slug)
	assert.False(t, updated.Published)

	republished, err := svc.SetPublish(context.Background(), p.ID, true)
	require.NoError(t, err)
	assert.True(t, republished.Published)
	assert.True(t, firstPublished.Equal(*republished.PublishedAt))
}

func TestPostList_LimitClamp(t *testing.T) {
	svc := NewPostService(newMemPostRepo())
	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.Create(context.Background(), models.PostInput{Title: title, Content: "x"})
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background(), models.PostFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, list.Limit)
	assert.Equal(t, 3, list.Total)

	list, err = svc.List(context.Background(), models.PostFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 3, list.Total)

	list, err = svc.List(context.Background(), models.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, defaultListLimit, list.Limit)
}

func TestPostStats(t *testing.T) {
	repo := newMemPostRepo()
	svc := &postService{repo: repo, now: func() time.Time {
		return time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	}}
	draft := false
	_, err := svc.Create(context.Background(), models.PostInput{Title: "a", Content: "x"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), models.PostInput{Title: "b", Content: "x", Published: &draft})
	require.NoError(t, err)
	repo.months = []models.MonthCount{{Month: "2025-01", Count: 4}, {Month: "2025-03", Count: 1}}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalPosts)
	assert.Equal(t, 1, stats.PublishedPosts)
	assert.Equal(t, 1, stats.DraftPosts)
	assert.Equal(t, time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC), repo.since)
	assert.Equal(t, []models.MonthCount{
		{Month: "2024-10", Count: 0},
		{Month: "2024-11", Count: 0},
		{Month: "2024-12", Count: 0},
		{Month: "2025-01", Count: 4},
		{Month: "2025-02", Count: 0},
		{Month: "2025-03", Count: 1},
	}, stats.PostsPerMonth)
}
