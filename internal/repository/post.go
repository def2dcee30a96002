package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blogcms/internal/errs"
	"blogcms/internal/models"
)

type PostRepo interface {
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, f models.PostFilter) ([]*models.Post, error)
	Count(ctx context.Context, f models.PostFilter) (int, error)
	Update(ctx context.Context, p *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	UpdatePublish(ctx context.Context, id string, publish bool) (*models.Post, error)
	CountPublishedByMonth(ctx context.Context, since time.Time) ([]models.MonthCount, error)
}

type postRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPostRepo(db *pgxpool.Pool) PostRepo {
	return &postRepo{db: db, sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

const postColumns = `id, title, slug, excerpt, content, author, category, read_time, image_url, image_alt,
	featured, published, published_at, created_at, updated_at`

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Author, &p.Category, &p.ReadTime,
		&p.ImageURL, &p.ImageAlt, &p.Featured, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	q := `
		INSERT INTO posts (title, slug, excerpt, content, author, category, read_time, image_url, image_alt,
		                   featured, published, published_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, CASE WHEN $11 THEN NOW() ELSE NULL END)
		RETURNING ` + postColumns

	out, err := scanPost(r.db.QueryRow(ctx, q,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Author, p.Category, p.ReadTime,
		p.ImageURL, p.ImageAlt, p.Featured, p.Published,
	))
	return out, mapErr(err, "post")
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	out, err := scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	return out, mapErr(err, "post")
}

func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	out, err := scanPost(r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = $1`, slug))
	return out, mapErr(err, "post")
}

func applyFilter(b sq.SelectBuilder, f models.PostFilter) sq.SelectBuilder {
	if f.Published != nil {
		b = b.Where(sq.Eq{"published": *f.Published})
	}
	if f.Featured != nil {
		b = b.Where(sq.Eq{"featured": *f.Featured})
	}
	if f.Category != "" {
		b = b.Where(sq.Eq{"category": f.Category})
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		b = b.Where(sq.Or{sq.ILike{"title": like}, sq.ILike{"excerpt": like}})
	}
	return b
}

func (r *postRepo) List(ctx context.Context, f models.PostFilter) ([]*models.Post, error) {
	b := applyFilter(r.sb.Select(postColumns).From("posts"), f).
		OrderBy("published_at DESC NULLS LAST", "created_at DESC")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, errs.Wrap(errs.Unknown, "build post list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err, "post")
	}
	defer rows.Close()

	list := make([]*models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, mapErr(err, "post")
		}
		list = append(list, p)
	}
	return list, mapErr(rows.Err(), "post")
}

func (r *postRepo) Count(ctx context.Context, f models.PostFilter) (int, error) {
	query, args, err := applyFilter(r.sb.Select("COUNT(*)").From("posts"), f).ToSql()
	if err != nil {
		return 0, errs.Wrap(errs.Unknown, "build post count query", err)
	}
	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, mapErr(err, "post")
	}
	return n, nil
}

// Update replaces the editable record. published_at is stamped on the first
// publish and kept afterwards.
func (r *postRepo) Update(ctx context.Context, p *models.Post) (*models.Post, error) {
	q := `
		UPDATE posts
		SET title=$1,
		    slug=$2,
		    excerpt=$3,
		    content=$4,
		    author=$5,
		    category=$6,
		    read_time=$7,
		    image_url=$8,
		    image_alt=$9,
		    featured=$10,
		    published=$11,
		    published_at = CASE WHEN $11 THEN COALESCE(published_at, NOW()) ELSE published_at END,
		    updated_at=NOW()
		WHERE id=$12
		RETURNING ` + postColumns

	out, err := scanPost(r.db.QueryRow(ctx, q,
		p.Title, p.Slug, p.Excerpt, p.Content, p.Author, p.Category, p.ReadTime,
		p.ImageURL, p.ImageAlt, p.Featured, p.Published, p.ID,
	))
	return out, mapErr(err, "post")
}

func (r *postRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id=$1", id)
	if err != nil {
		return mapErr(err, "post")
	}
	if tag.RowsAffected() == 0 {
		return errs.NotFoundf("post not found")
	}
	return nil
}

func (r *postRepo) UpdatePublish(ctx context.Context, id string, publish bool) (*models.Post, error) {
	q := `
		UPDATE posts
		SET published = $2,
		    published_at = CASE WHEN $2 THEN COALESCE(published_at, NOW()) ELSE published_at END,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns
	out, err := scanPost(r.db.QueryRow(ctx, q, id, publish))
	return out, mapErr(err, "post")
}

func (r *postRepo) CountPublishedByMonth(ctx context.Context, since time.Time) ([]models.MonthCount, error) {
	const q = `
		SELECT to_char(date_trunc('month', published_at), 'YYYY-MM') AS month, COUNT(*)
		FROM posts
		WHERE published AND published_at >= $1
		GROUP BY 1
		ORDER BY 1
	`
	rows, err := r.db.Query(ctx, q, since)
	if err != nil {
		return nil, mapErr(err, "post")
	}
	defer rows.Close()

	var out []models.MonthCount
	for rows.Next() {
		var m models.MonthCount
		if err := rows.Scan(&m.Month, &m.Count); err != nil {
			return nil, mapErr(err, "post")
		}
		out = append(out, m)
	}
	return out, mapErr(rows.Err(), "post")
}
