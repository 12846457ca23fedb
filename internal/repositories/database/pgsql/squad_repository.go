package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSquadRepository struct {
	BaseRepository
}

// newPgxSquadRepository creates a new repository for squad data.
func newPgxSquadRepository(pool *pgxpool.Pool) portsrepo.SquadRepository {
	return &PgxSquadRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SquadRepository = (*PgxSquadRepository)(nil)

func (r *PgxSquadRepository) SaveSquad(ctx context.Context, squad domain.Squad) error {
	query := `
		INSERT INTO squads (squad_id, name, description, created_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, squad.SquadID, squad.Name, squad.Description, squad.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: squad %q already exists", apperrors.ErrDuplicate, squad.Name)
		}
		return fmt.Errorf("failed to save squad %s: %w", squad.SquadID, err)
	}
	return nil
}

func (r *PgxSquadRepository) FindSquadByID(ctx context.Context, squadID string) (*domain.Squad, error) {
	query := `
		SELECT s.squad_id, s.name, s.description, s.created_at, COUNT(m.member_id) AS members_count
		FROM squads s
		LEFT JOIN team_members m ON m.squad_id = s.squad_id
		WHERE s.squad_id = $1
		GROUP BY s.squad_id;
	`
	var squad domain.Squad
	err := r.Pool.QueryRow(ctx, query, squadID).Scan(
		&squad.SquadID,
		&squad.Name,
		&squad.Description,
		&squad.CreatedAt,
		&squad.MembersCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("squad %s not found", squadID))
		}
		return nil, fmt.Errorf("failed to find squad %s: %w", squadID, err)
	}
	return &squad, nil
}

func (r *PgxSquadRepository) ListSquads(ctx context.Context) ([]domain.Squad, error) {
	query := `
		SELECT s.squad_id, s.name, s.description, s.created_at, COUNT(m.member_id) AS members_count
		FROM squads s
		LEFT JOIN team_members m ON m.squad_id = s.squad_id
		GROUP BY s.squad_id
		ORDER BY s.name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query squads: %w", err)
	}
	defer rows.Close()

	squads := []domain.Squad{}
	for rows.Next() {
		var squad domain.Squad
		if err := rows.Scan(&squad.SquadID, &squad.Name, &squad.Description, &squad.CreatedAt, &squad.MembersCount); err != nil {
			return nil, fmt.Errorf("failed to scan squad row: %w", err)
		}
		squads = append(squads, squad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating squad rows: %w", err)
	}
	return squads, nil
}

func (r *PgxSquadRepository) UpdateSquad(ctx context.Context, squad domain.Squad) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE squads SET name = $2, description = $3 WHERE squad_id = $1;`,
		squad.SquadID, squad.Name, squad.Description)
	if err != nil {
		return fmt.Errorf("failed to update squad %s: %w", squad.SquadID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("squad %s not found", squad.SquadID))
	}
	return nil
}

func (r *PgxSquadRepository) DeleteSquad(ctx context.Context, squadID string) error {
	// Members keep their row; the squad link is cleared by the FK's ON DELETE SET NULL.
	tag, err := r.Pool.Exec(ctx, `DELETE FROM squads WHERE squad_id = $1;`, squadID)
	if err != nil {
		return fmt.Errorf("failed to delete squad %s: %w", squadID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("squad %s not found", squadID))
	}
	return nil
}
