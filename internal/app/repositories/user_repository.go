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

const userColumns = "id, email, password, full_name, username, bio, location, avatar_url, role, pinned_post_id, created_at, updated_at"

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var fullName, username, bio, location, avatarURL *string
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&fullName,
		&username,
		&bio,
		&location,
		&avatarURL,
		&user.Role,
		&user.PinnedPostID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if fullName != nil {
		user.FullName = *fullName
	}
	if username != nil {
		user.Username = *username
	}
	if bio != nil {
		user.Bio = *bio
	}
	if location != nil {
		user.Location = *location
	}
	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	return &user, nil
}

// Create inserts a new user and returns its ID
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string, role models.RoleType) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "role", "created_at", "updated_at").
		Values(email, passwordHash, role, time.Now(), time.Now()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", email).Msg("Error creating user")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by username query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by username: %w", err)
	}

	return user, nil
}

// SetupProfile sets the one-time profile fields. Fails with ErrUsernameTaken
// when the requested username is already held by another user.
func (r *UserRepository) SetupProfile(ctx context.Context, userID int64, fullName, username, bio, location string) error {
	sql, args, err := r.sb.Update("users").
		Set("full_name", fullName).
		Set("username", username).
		Set("bio", bio).
		Set("location", location).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build setup profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.ErrUsernameTaken
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error setting up profile")
		return fmt.Errorf("error setting up profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateProfile updates the mutable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, fullName, bio, location, avatarURL string) error {
	sql, args, err := r.sb.Update("users").
		Set("full_name", fullName).
		Set("bio", bio).
		Set("location", location).
		Set("avatar_url", avatarURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetPinnedPost sets or clears the profile pin
func (r *UserRepository) SetPinnedPost(ctx context.Context, userID int64, postID *int64) error {
	sql, args, err := r.sb.Update("users").
		Set("pinned_post_id", postID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set pinned post query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error setting pinned post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// List retrieves users ordered by newest registration first, optionally
// filtered by a case-insensitive match on name, username or email
func (r *UserRepository) List(ctx context.Context, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	countQuery := r.sb.Select("COUNT(*)").From("users")
	listQuery := r.sb.Select(userColumns).From("users")

	if search != "" {
		pattern := "%" + search + "%"
		filter := squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"username": pattern},
			squirrel.ILike{"email": pattern},
		}
		countQuery = countQuery.Where(filter)
		listQuery = listQuery.Where(filter)
	}

	var total int64
	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count users query: %w", err)
	}
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting users: %w", err)
	}

	sql, args, err := listQuery.
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return total, nil
}

// Delete removes a user. Posts, reactions, comments, follows, memberships
// and notifications cascade through foreign keys.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error deleting user")
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
