package repository

import (
	"context"
	"fmt"

	"blog-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const blogWithAuthorColumns = `
	b.id::text, b.title, b.author_id::text, b.image, b.description, b.created_at, b.updated_at,
	u.id::text, u.username, u.email, u.blog_ids::text[]
`

// BlogRepository handles database operations for blogs
type BlogRepository struct {
	db *pgxpool.Pool
}

// NewBlogRepository creates a new blog repository
func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{db: db}
}

// Count returns the number of blogs
func (r *BlogRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count blogs: %w", err)
	}
	return total, nil
}

// List returns every blog, newest first, with its author populated
func (r *BlogRepository) List(ctx context.Context) ([]*models.Blog, error) {
	query := `
		SELECT ` + blogWithAuthorColumns + `
		FROM blogs b
		LEFT JOIN users u ON u.id = b.author_id
		ORDER BY b.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]*models.Blog, 0)
	for rows.Next() {
		blog, err := scanBlogWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blogs: %w", err)
	}

	return blogs, nil
}

// GetByID retrieves a blog by ID with its author populated
func (r *BlogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	query := `
		SELECT ` + blogWithAuthorColumns + `
		FROM blogs b
		LEFT JOIN users u ON u.id = b.author_id
		WHERE b.id = $1
	`
	blog, err := scanBlogWithAuthor(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return blog, nil
}

// CreateOwned inserts a blog and appends its id to the author's blog list
// in one transaction. ErrNotFound means the author no longer exists.
func (r *BlogRepository) CreateOwned(ctx context.Context, blog *models.Blog) error {
	if blog.AuthorID == nil {
		return fmt.Errorf("failed to create blog: author is required")
	}

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		insert := `
			INSERT INTO blogs (id, title, author_id, image, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.Exec(ctx, insert,
			blog.ID, blog.Title, *blog.AuthorID, blog.Image, blog.Description, blog.CreatedAt, blog.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create blog: %w", err)
		}

		appendID := `
			UPDATE users SET blog_ids = array_append(blog_ids, $1), updated_at = $2
			WHERE id = $3
		`
		result, err := tx.Exec(ctx, appendID, blog.ID, blog.UpdatedAt, *blog.AuthorID)
		if err != nil {
			return fmt.Errorf("failed to link blog to author: %w", err)
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// UpdateWhere applies upd only if a blog matches both the id and the owner
// of filter. The check and the write are one statement. ErrNotFound covers
// both a missing blog and a blog owned by someone else.
func (r *BlogRepository) UpdateWhere(ctx context.Context, filter models.BlogFilter, upd models.BlogUpdate) (*models.Blog, error) {
	query := `
		UPDATE blogs SET title = $1, image = $2, description = $3, updated_at = $4
		WHERE id = $5 AND author_id = $6
		RETURNING id::text, title, author_id::text, image, description, created_at, updated_at
	`
	var blog models.Blog
	err := r.db.QueryRow(ctx, query,
		upd.Title, upd.Image, upd.Description, upd.UpdatedAt, filter.ID, filter.OwnerID,
	).Scan(
		&blog.ID, &blog.Title, &blog.AuthorID, &blog.Image, &blog.Description,
		&blog.CreatedAt, &blog.UpdatedAt,
	)
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}
	return &blog, nil
}

// DeleteWhere locks the blog, asks authorize whether it may go, then removes
// it from its author's list before deleting the row. All of it runs in one
// transaction; an authorize error rolls back and is returned unchanged.
func (r *BlogRepository) DeleteWhere(ctx context.Context, id string, authorize func(*models.Blog) error) (*models.Blog, error) {
	var deleted *models.Blog

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			SELECT ` + blogWithAuthorColumns + `
			FROM blogs b
			LEFT JOIN users u ON u.id = b.author_id
			WHERE b.id = $1
			FOR UPDATE OF b
		`
		blog, err := scanBlogWithAuthor(tx.QueryRow(ctx, query, id))
		if err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to get blog: %w", err)
		}

		if err := authorize(blog); err != nil {
			return err
		}

		if blog.AuthorID != nil {
			pull := `UPDATE users SET blog_ids = array_remove(blog_ids, $1) WHERE id = $2`
			if _, err := tx.Exec(ctx, pull, blog.ID, *blog.AuthorID); err != nil {
				return fmt.Errorf("failed to unlink blog from author: %w", err)
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, blog.ID); err != nil {
			return fmt.Errorf("failed to delete blog: %w", err)
		}

		deleted = blog
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func scanBlogWithAuthor(row pgx.Row) (*models.Blog, error) {
	var (
		blog          models.Blog
		authorID      *string
		authorName    *string
		authorEmail   *string
		authorBlogIDs []string
	)
	err := row.Scan(
		&blog.ID, &blog.Title, &blog.AuthorID, &blog.Image, &blog.Description,
		&blog.CreatedAt, &blog.UpdatedAt,
		&authorID, &authorName, &authorEmail, &authorBlogIDs,
	)
	if err != nil {
		return nil, err
	}

	if authorID != nil {
		blog.Author = &models.User{
			ID:       *authorID,
			Username: *authorName,
			Email:    *authorEmail,
			BlogIDs:  authorBlogIDs,
		}
	}
	return &blog, nil
}
