package blog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/blogapi/internal/platform/database/schema"
	"github.com/taibuivan/blogapi/internal/platform/dberr"
	pgstore "github.com/taibuivan/blogapi/internal/platform/postgres"
	"github.com/taibuivan/blogapi/pkg/uuid"
)

// postgresDocument is the JSONB payload of a blog_posts row.
type postgresDocument struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  Author `json:"author"`
}

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var postgresSelect = fmt.Sprintf(`SELECT %s FROM %s`,
	strings.Join(schema.BlogPost.Columns(), ", "), schema.BlogPost.Table,
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var (
		p   Post
		doc postgresDocument
	)
	if err := row.Scan(&p.ID, &doc, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Title = doc.Title
	p.Content = doc.Content
	p.Author = doc.Author
	return &p, nil
}

func (repository *PostgresRepository) ListPosts(ctx context.Context) ([]*Post, error) {
	query := postgresSelect + fmt.Sprintf(` ORDER BY %s ASC, %s ASC`, schema.BlogPost.CreatedAt, schema.BlogPost.ID)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_posts")
	}

	return posts, nil
}

func (repository *PostgresRepository) GetPost(ctx context.Context, id string) (*Post, error) {
	if !uuid.Valid(id) {
		return nil, dberr.ErrNotFound
	}

	query := postgresSelect + fmt.Sprintf(` WHERE %s = $1`, schema.BlogPost.ID)

	p, err := scanPost(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_post")
	}
	return p, nil
}

func (repository *PostgresRepository) CreatePost(ctx context.Context, p *Post) error {
	doc, err := json.Marshal(postgresDocument{Title: p.Title, Content: p.Content, Author: p.Author})
	if err != nil {
		return dberr.Wrap(err, "encode_post")
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2::jsonb, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.BlogPost.Table, schema.BlogPost.ID, schema.BlogPost.Doc, schema.BlogPost.CreatedAt, schema.BlogPost.UpdatedAt,
		schema.BlogPost.CreatedAt, schema.BlogPost.UpdatedAt,
	)

	id := uuid.New()
	if err := repository.db.QueryRow(ctx, query, id, string(doc)).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return dberr.Wrap(err, "create_post")
	}

	p.ID = id
	return nil
}

// UpdatePost merges the patch into the stored document with the jsonb ||
// operator, so the write is a single statement.
func (repository *PostgresRepository) UpdatePost(ctx context.Context, id string, patch PostPatch) error {
	if !uuid.Valid(id) {
		return dberr.ErrNotFound
	}

	fields, err := json.Marshal(patch.Fields())
	if err != nil {
		return dberr.Wrap(err, "encode_patch")
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = %s || $2::jsonb, %s = NOW()
		WHERE %s = $1
	`,
		schema.BlogPost.Table,
		schema.BlogPost.Doc, schema.BlogPost.Doc, schema.BlogPost.UpdatedAt,
		schema.BlogPost.ID,
	)

	cmd, err := repository.db.Exec(ctx, query, id, string(fields))
	if err != nil {
		return dberr.Wrap(err, "update_post")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeletePost(ctx context.Context, id string) error {
	if !uuid.Valid(id) {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.BlogPost.Table, schema.BlogPost.ID)

	if _, err := repository.db.Exec(ctx, query, id); err != nil {
		return dberr.Wrap(err, "delete_post")
	}
	return nil
}

func (repository *PostgresRepository) Ping(ctx context.Context) error {
	return pgstore.Ping(ctx, repository.db)
}
