package services

import (
	portsrepo "github.com/rqos/agency-ops-backend/internal/core/ports/repositories"
	portssvc "github.com/rqos/agency-ops-backend/internal/core/ports/services"
	"github.com/rqos/agency-ops-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, store portssvc.AttachmentStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Scope policy first since the read paths depend on it
	container.Scope = NewScopePolicy(repos.MemberRepo, repos.AllocationRepo)

	container.Client = NewClientService(repos.ClientRepo)
	container.Team = NewTeamService(repos.SquadRepo, repos.MemberRepo, repos.AllocationRepo)
	container.Demand = NewDemandService(repos.DemandRepo, repos.DemandColRepo)
	container.Design = NewDesignService(
		repos.DesignRepo,
		repos.DesignColRepo,
		repos.MemberRepo,
		store,
		DesignRates{
			DefaultArtRate:      cfg.DefaultArtRate,
			DefaultVideoRate:    cfg.DefaultVideoRate,
			MaxUploadBytes:      cfg.MaxUploadBytes,
			AllowedContentTypes: cfg.AllowedContentTypes,
		},
	)
	container.Financial = NewFinancialService(repos.FinancialRepo, repos.AllocationRepo, repos.ClientRepo)
	container.Dashboard = NewDashboardService(repos.DashboardRepo, container.Scope)
	container.Meeting = NewMeetingService(repos.MeetingRepo, repos.ClientRepo, container.Scope)
	container.Auth = NewAuthService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, WithAuthIssuer(cfg.JWTIssuer))

	return container
}
