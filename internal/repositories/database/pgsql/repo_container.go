package pgsql

import (
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:     newPgxClientRepository(dbPool),
		SquadRepo:      newPgxSquadRepository(dbPool),
		MemberRepo:     newPgxMemberRepository(dbPool),
		AllocationRepo: newPgxAllocationRepository(dbPool),
		DemandRepo:     newPgxDemandRepository(dbPool),
		DemandColRepo:  newPgxColumnRepository(dbPool, "demand_columns", "demands"),
		DesignRepo:     newPgxDesignRepository(dbPool),
		DesignColRepo:  newPgxColumnRepository(dbPool, "design_columns", "design_demands"),
		FinancialRepo:  newPgxFinancialRepository(dbPool),
		MeetingRepo:    newPgxMeetingRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		DashboardRepo:  newPgxDashboardRepository(dbPool),
	}
}
