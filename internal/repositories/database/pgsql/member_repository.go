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

const memberColumns = `m.member_id, m.user_id, m.name, m.role_title, m.squad_id, m.status, m.email, m.phone, m.created_at, m.updated_at, s.name AS squad_name`

type PgxMemberRepository struct {
	BaseRepository
}

// newPgxMemberRepository creates a new repository for team member data.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepository {
	return &PgxMemberRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.MemberRepository = (*PgxMemberRepository)(nil)

func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.TeamMember) error {
	query := `
		INSERT INTO team_members (member_id, user_id, name, role_title, squad_id, status, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		member.MemberID,
		member.UserID,
		member.Name,
		member.RoleTitle,
		member.SquadID,
		member.Status,
		member.Email,
		member.Phone,
		member.CreatedAt,
		member.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: member %s already exists", apperrors.ErrDuplicate, member.MemberID)
		}
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced squad or user does not exist")
		}
		return fmt.Errorf("failed to save member %s: %w", member.MemberID, err)
	}
	return nil
}

func (r *PgxMemberRepository) scanMember(row pgx.Row) (*domain.TeamMember, error) {
	var member domain.TeamMember
	err := row.Scan(
		&member.MemberID,
		&member.UserID,
		&member.Name,
		&member.RoleTitle,
		&member.SquadID,
		&member.Status,
		&member.Email,
		&member.Phone,
		&member.CreatedAt,
		&member.UpdatedAt,
		&member.SquadName,
	)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.TeamMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM team_members m
		LEFT JOIN squads s ON s.squad_id = m.squad_id
		WHERE m.member_id = $1;
	`
	member, err := r.scanMember(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("team member %s not found", memberID))
		}
		return nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	return member, nil
}

// FindMemberByUserID resolves the member linked to a platform account. A miss
// returns nil, nil: no link is not an error for scope resolution.
func (r *PgxMemberRepository) FindMemberByUserID(ctx context.Context, userID string) (*domain.TeamMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM team_members m
		LEFT JOIN squads s ON s.squad_id = m.squad_id
		WHERE m.user_id = $1;
	`
	member, err := r.scanMember(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find member by user %s: %w", userID, err)
	}
	return member, nil
}

// FindMemberByEmail resolves a member by email. A miss returns nil, nil.
func (r *PgxMemberRepository) FindMemberByEmail(ctx context.Context, email string) (*domain.TeamMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM team_members m
		LEFT JOIN squads s ON s.squad_id = m.squad_id
		WHERE lower(m.email) = lower($1);
	`
	member, err := r.scanMember(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find member by email: %w", err)
	}
	return member, nil
}

func (r *PgxMemberRepository) ListMembers(ctx context.Context, squadID *string, status *domain.MemberStatus) ([]domain.TeamMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM team_members m
		LEFT JOIN squads s ON s.squad_id = m.squad_id
		WHERE ($1::text IS NULL OR m.squad_id = $1)
		  AND ($2::text IS NULL OR m.status = $2)
		ORDER BY m.name;
	`
	rows, err := r.Pool.Query(ctx, query, squadID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []domain.TeamMember{}
	for rows.Next() {
		member, err := r.scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

func (r *PgxMemberRepository) UpdateMember(ctx context.Context, member domain.TeamMember) error {
	query := `
		UPDATE team_members SET
			user_id = $2, name = $3, role_title = $4, squad_id = $5, status = $6,
			email = $7, phone = $8, updated_at = $9
		WHERE member_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		member.MemberID,
		member.UserID,
		member.Name,
		member.RoleTitle,
		member.SquadID,
		member.Status,
		member.Email,
		member.Phone,
		member.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced squad or user does not exist")
		}
		return fmt.Errorf("failed to update member %s: %w", member.MemberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("team member %s not found", member.MemberID))
	}
	return nil
}

func (r *PgxMemberRepository) DeleteMember(ctx context.Context, memberID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM team_members WHERE member_id = $1;`, memberID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("member still has dependent records")
		}
		return fmt.Errorf("failed to delete member %s: %w", memberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("team member %s not found", memberID))
	}
	return nil
}
