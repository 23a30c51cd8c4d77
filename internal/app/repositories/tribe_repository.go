package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
	"github.com/blogsphere/blogsphere/internal/pkg/dberrors"
	"github.com/blogsphere/blogsphere/internal/pkg/logger"
)

const tribeSelectColumns = `
	t.id, t.name, COALESCE(t.description, ''), t.owner_id, t.privacy, COALESCE(t.join_code, ''), t.created_at,
	(SELECT COUNT(*) FROM tribe_members tm WHERE tm.tribe_id = t.id),
	EXISTS(SELECT 1 FROM tribe_members tm WHERE tm.tribe_id = t.id AND tm.user_id = $1)`

// TribeRepository handles tribe database operations
type TribeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTribeRepository creates a new TribeRepository
func NewTribeRepository(db *pgxpool.Pool) *TribeRepository {
	return &TribeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanTribe(row pgx.Row) (*models.Tribe, error) {
	var tribe models.Tribe
	err := row.Scan(
		&tribe.ID,
		&tribe.Name,
		&tribe.Description,
		&tribe.OwnerID,
		&tribe.Privacy,
		&tribe.JoinCode,
		&tribe.CreatedAt,
		&tribe.MemberCount,
		&tribe.ViewerIsMember,
	)
	if err != nil {
		return nil, err
	}
	return &tribe, nil
}

// Create inserts a tribe and returns its ID. JoinCode must be empty for
// public tribes; the check constraint enforces it either way.
func (r *TribeRepository) Create(ctx context.Context, name, description string, ownerID int64, privacy models.TribePrivacy, joinCode string) (int64, error) {
	var code *string
	if joinCode != "" {
		code = &joinCode
	}

	sql, args, err := r.sb.Insert("tribes").
		Columns("name", "description", "owner_id", "privacy", "join_code", "created_at").
		Values(name, description, ownerID, privacy, code, time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create tribe query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "tribes_name_key") {
			return 0, apperrors.NewConflictError("a tribe with this name already exists")
		}
		logger.Error().Err(err).Str("name", name).Msg("Error creating tribe")
		return 0, fmt.Errorf("error creating tribe: %w", err)
	}

	return id, nil
}

// GetByID retrieves a tribe with member count and viewer membership flag
func (r *TribeRepository) GetByID(ctx context.Context, tribeID, viewerID int64) (*models.Tribe, error) {
	sql := fmt.Sprintf("SELECT %s FROM tribes t WHERE t.id = $2", tribeSelectColumns)

	tribe, err := scanTribe(r.db.QueryRow(ctx, sql, viewerID, tribeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTribeNotFound
		}
		return nil, fmt.Errorf("error retrieving tribe: %w", err)
	}

	return tribe, nil
}

// List retrieves all tribes, optionally filtered by a name search term
func (r *TribeRepository) List(ctx context.Context, viewerID int64, search string) ([]*models.Tribe, error) {
	sql := fmt.Sprintf("SELECT %s FROM tribes t", tribeSelectColumns)
	args := []interface{}{viewerID}

	if search != "" {
		sql += " WHERE t.name ILIKE $2"
		args = append(args, "%"+search+"%")
	}

	sql += " ORDER BY t.created_at DESC, t.id DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying tribes: %w", err)
	}
	defer rows.Close()

	var tribes []*models.Tribe
	for rows.Next() {
		tribe, err := scanTribe(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning tribe row: %w", err)
		}
		tribes = append(tribes, tribe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tribe rows: %w", err)
	}

	return tribes, nil
}

// ListForMember retrieves the tribes a user belongs to
func (r *TribeRepository) ListForMember(ctx context.Context, userID int64) ([]*models.Tribe, error) {
	sql := fmt.Sprintf(`SELECT %s FROM tribes t
		JOIN tribe_members m ON m.tribe_id = t.id AND m.user_id = $1
		ORDER BY m.joined_at DESC`, tribeSelectColumns)

	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying member tribes: %w", err)
	}
	defer rows.Close()

	var tribes []*models.Tribe
	for rows.Next() {
		tribe, err := scanTribe(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning tribe row: %w", err)
		}
		tribes = append(tribes, tribe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tribe rows: %w", err)
	}

	return tribes, nil
}

// Update rewrites tribe metadata, privacy and join code together so the
// privacy/code pairing can never be observed half-applied.
func (r *TribeRepository) Update(ctx context.Context, tribeID int64, name, description string, privacy models.TribePrivacy, joinCode string) error {
	var code *string
	if joinCode != "" {
		code = &joinCode
	}

	sql, args, err := r.sb.Update("tribes").
		Set("name", name).
		Set("description", description).
		Set("privacy", privacy).
		Set("join_code", code).
		Where(squirrel.Eq{"id": tribeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update tribe query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "tribes_name_key") {
			return apperrors.NewConflictError("a tribe with this name already exists")
		}
		return fmt.Errorf("error updating tribe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTribeNotFound
	}

	return nil
}

// Delete removes a tribe. Members and messages cascade.
func (r *TribeRepository) Delete(ctx context.Context, tribeID int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM tribes WHERE id = $1", tribeID)
	if err != nil {
		return fmt.Errorf("error deleting tribe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTribeNotFound
	}
	return nil
}

// Count returns the total number of tribes
func (r *TribeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tribes").Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting tribes: %w", err)
	}
	return total, nil
}
