package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmaslov/campuschat-server/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	var profile model.Profile
	query := `SELECT id, email, display_name, bio, career, photo_url, created_at
			  FROM user_profiles WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID, &profile.Email, &profile.DisplayName, &profile.Bio,
		&profile.Career, &profile.PhotoURL, &profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile by id: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile model.Profile) error {
	query := `INSERT INTO user_profiles (id, email, display_name, bio, career, photo_url)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		profile.ID, profile.Email, profile.DisplayName, profile.Bio,
		profile.Career, profile.PhotoURL,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// Update writes only the fields the patch provides.
func (r *ProfileRepository) Update(ctx context.Context, id uuid.UUID, patch model.ProfilePatch) error {
	if patch.IsZero() {
		return nil
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("display_name", patch.DisplayName)
	add("bio", patch.Bio)
	add("career", patch.Career)
	add("photo_url", patch.PhotoURL)

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE user_profiles SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
