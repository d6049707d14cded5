package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"lectern/internal/domain"
	"lectern/internal/domain/models"
	"lectern/internal/domain/repositories"
)

const fileColumns = `id, teacher_id, folder_id, name, original_filename,
		mime_type, size_bytes, storage_path, download_url, url_expires_at,
		uploaded_by, created_at`

// PostgresFileRepository implements the FileRepository interface.
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository.
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create persists a committed file row.
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, r.tables.Files, fileColumns)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		file.ID,
		file.TenantID,
		file.FolderID,
		file.Name,
		file.OriginalFilename,
		file.MimeType,
		file.SizeBytes,
		file.StoragePath,
		file.DownloadURL,
		file.URLExpiresAt,
		file.UploadedBy,
		file.CreatedAt,
	)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// GetByID retrieves a file by (id, tenant).
func (r *PostgresFileRepository) GetByID(ctx context.Context, id, tenantID string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND teacher_id = $2
	`, fileColumns, r.tables.Files)

	file, err := scanFile(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return file, nil
}

// Rename updates a file's display name by (id, tenant).
func (r *PostgresFileRepository) Rename(ctx context.Context, id, tenantID, name string) (*models.File, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1
		WHERE id = $2 AND teacher_id = $3
		RETURNING %s
	`, r.tables.Files, fileColumns)

	file, err := scanFile(GetExecutor(ctx, r.pool).QueryRow(ctx, query, name, id, tenantID))
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("rename file: %w", err)
	}

	return file, nil
}

// UpdateDownloadURL refreshes the cached signed URL on a row.
func (r *PostgresFileRepository) UpdateDownloadURL(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET download_url = $1, url_expires_at = $2
		WHERE id = $3 AND teacher_id = $4
	`, r.tables.Files)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		file.DownloadURL,
		file.URLExpiresAt,
		file.ID,
		file.TenantID,
	)
	if err != nil {
		return fmt.Errorf("update download url: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a file row by (id, tenant).
func (r *PostgresFileRepository) Delete(ctx context.Context, id, tenantID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND teacher_id = $2
	`, r.tables.Files)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ListByFolder lists files directly in a folder, name-ordered.
func (r *PostgresFileRepository) ListByFolder(ctx context.Context, folderID *string, tenantID string) ([]models.File, error) {
	var query string
	var args []interface{}

	if folderID == nil {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE teacher_id = $1 AND folder_id IS NULL
			ORDER BY name ASC
		`, fileColumns, r.tables.Files)
		args = append(args, tenantID)
	} else {
		query = fmt.Sprintf(`
			SELECT %s
			FROM %s
			WHERE teacher_id = $1 AND folder_id = $2
			ORDER BY name ASC
		`, fileColumns, r.tables.Files)
		args = append(args, tenantID, *folderID)
	}

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, *file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}

// ListStoragePathsByFolders returns the storage paths of every file parented
// under any of the given folders.
func (r *PostgresFileRepository) ListStoragePathsByFolders(ctx context.Context, folderIDs []string, tenantID string) ([]string, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT storage_path
		FROM %s
		WHERE teacher_id = $1 AND folder_id = ANY($2)
	`, r.tables.Files)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, tenantID, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("list storage paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("scan storage path: %w", err)
		}
		paths = append(paths, path)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate storage paths: %w", err)
	}

	return paths, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFile(row rowScanner) (*models.File, error) {
	var file models.File
	err := row.Scan(
		&file.ID,
		&file.TenantID,
		&file.FolderID,
		&file.Name,
		&file.OriginalFilename,
		&file.MimeType,
		&file.SizeBytes,
		&file.StoragePath,
		&file.DownloadURL,
		&file.URLExpiresAt,
		&file.UploadedBy,
		&file.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &file, nil
}
