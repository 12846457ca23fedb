package repositories

// RepositoryProvider bundles all repositories so callers can wire services
// without depending on a concrete database package.
type RepositoryProvider struct {
	ClientRepo     ClientRepository
	SquadRepo      SquadRepository
	MemberRepo     MemberRepository
	AllocationRepo AllocationRepository
	DemandRepo     DemandRepository
	DemandColRepo  ColumnRepository
	DesignRepo     DesignRepository
	DesignColRepo  ColumnRepository
	FinancialRepo  FinancialRepository
	MeetingRepo    MeetingRepository
	UserRepo       UserRepository
	DashboardRepo  DashboardRepository
}
