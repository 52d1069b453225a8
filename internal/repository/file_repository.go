package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpattn/filedash/internal/domain"
)

const fileColumns = `id, display_name, category, original_filename, storage_key, url, uploaded_by, created_at`

// fileRepository implements FileRepository interface
type fileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository creates a new file repository
func NewFileRepository(pool *pgxpool.Pool) FileRepository {
	return &fileRepository{pool: pool}
}

func scanFile(row pgx.Row) (domain.File, error) {
	var f domain.File
	err := row.Scan(&f.ID, &f.DisplayName, &f.Category, &f.OriginalFilename, &f.StorageKey, &f.URL, &f.UploadedBy, &f.CreatedAt)
	return f, err
}

// Create creates a new file record
func (r *fileRepository) Create(ctx context.Context, file domain.File) (domain.File, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO files (id, display_name, category, original_filename, storage_key, url, uploaded_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+fileColumns,
		file.ID, file.DisplayName, file.Category, file.OriginalFilename, file.StorageKey, file.URL, file.UploadedBy, file.CreatedAt,
	)
	created, err := scanFile(row)
	if err != nil {
		return domain.File{}, fmt.Errorf("failed to create file: %w", err)
	}
	return created, nil
}

// GetByID retrieves a file by ID
func (r *fileRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.File, error) {
	f, err := scanFile(r.pool.QueryRow(ctx, `SELECT `+fileColumns+` FROM files WHERE id = $1`, id))
	if err != nil {
		return domain.File{}, notFound(err, "failed to get file")
	}
	return f, nil
}

// List retrieves files, optionally narrowed by a case-insensitive substring
// search over display name, category and original filename.
func (r *fileRepository) List(ctx context.Context, filter *domain.FileFilter) ([]domain.File, error) {
	query := `SELECT ` + fileColumns + ` FROM files`
	var args []any
	if term := searchTerm(filter); term != "" {
		query += ` WHERE display_name ILIKE $1 ESCAPE '\'
			OR category ILIKE $1 ESCAPE '\'
			OR original_filename ILIKE $1 ESCAPE '\'`
		args = append(args, containsPattern(term))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	files := []domain.File{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate files: %w", err)
	}
	return files, nil
}

// Delete deletes a file record
func (r *fileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
