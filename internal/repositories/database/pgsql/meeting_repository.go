package pgsql

import (
	"context"
	"fmt"

	"github.com/rqos/agency-ops-backend/internal/apperrors"
	"github.com/rqos/agency-ops-backend/internal/core/domain"
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMeetingRepository struct {
	BaseRepository
}

// newPgxMeetingRepository creates a new repository for meeting logs.
func newPgxMeetingRepository(pool *pgxpool.Pool) portsrepo.MeetingRepository {
	return &PgxMeetingRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.MeetingRepository = (*PgxMeetingRepository)(nil)

func (r *PgxMeetingRepository) SaveMeeting(ctx context.Context, meeting domain.Meeting) error {
	query := `
		INSERT INTO meetings (meeting_id, meeting_type, client_id, squad_id, member_id, health_score, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		meeting.MeetingID,
		meeting.MeetingType,
		meeting.ClientID,
		meeting.SquadID,
		meeting.MemberID,
		meeting.HealthScore,
		meeting.Notes,
		meeting.CreatedBy,
		meeting.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationFailedError("referenced client, squad or member does not exist")
		}
		return fmt.Errorf("failed to save meeting %s: %w", meeting.MeetingID, err)
	}
	return nil
}

func (r *PgxMeetingRepository) ListMeetings(ctx context.Context, clientID *string, meetingType *domain.MeetingType, scope *domain.Scope) ([]domain.Meeting, error) {
	if scope.Empty() {
		return []domain.Meeting{}, nil
	}

	query := `
		SELECT mt.meeting_id, mt.meeting_type, mt.client_id, mt.squad_id, mt.member_id,
		       mt.health_score, mt.notes, mt.created_by, mt.created_at,
		       c.name AS client_name, m.name AS member_name
		FROM meetings mt
		JOIN clients c ON c.client_id = mt.client_id
		LEFT JOIN team_members m ON m.member_id = mt.member_id
		WHERE ($1::text IS NULL OR mt.client_id = $1)
		  AND ($2::text IS NULL OR mt.meeting_type = $2)
		  AND ($3::boolean OR mt.member_id = $4 OR mt.client_id = ANY($5))
		ORDER BY mt.created_at DESC;
	`
	unscoped := scope == nil
	var scopeMember *string
	var scopeClients []string
	if scope != nil {
		scopeMember = &scope.MemberID
		scopeClients = scope.ClientIDs
	}

	rows, err := r.Pool.Query(ctx, query, clientID, meetingType, unscoped, scopeMember, scopeClients)
	if err != nil {
		return nil, fmt.Errorf("failed to query meetings: %w", err)
	}
	defer rows.Close()

	meetings := []domain.Meeting{}
	for rows.Next() {
		var meeting domain.Meeting
		err := rows.Scan(
			&meeting.MeetingID,
			&meeting.MeetingType,
			&meeting.ClientID,
			&meeting.SquadID,
			&meeting.MemberID,
			&meeting.HealthScore,
			&meeting.Notes,
			&meeting.CreatedBy,
			&meeting.CreatedAt,
			&meeting.ClientName,
			&meeting.MemberName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meeting row: %w", err)
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meeting rows: %w", err)
	}
	return meetings, nil
}
