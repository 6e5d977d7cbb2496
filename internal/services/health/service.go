package health

// Status is the body of GET /health.
type Status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Service encapsulates health-related checks.
type Service struct {
	AppName string
}

// NewService constructs a new health service.
func NewService(appName string) *Service {
	if appName == "" {
		appName = "HireMind"
	}
	return &Service{AppName: appName}
}

// Status reports liveness. It has no dependencies to probe.
func (s *Service) Status() Status {
	return Status{Status: "OK", Message: s.AppName + " Backend is running!"}
}
