package services

// ServiceContainer bundles every service facade for route registration.
type ServiceContainer struct {
	Client    ClientService
	Team      TeamService
	Demand    DemandService
	Design    DesignService
	Financial FinancialService
	Dashboard DashboardService
	Meeting   MeetingService
	Scope     ScopePolicy
	Auth      AuthService
}
