package api

// Identity service endpoints
const (
	// Service name
	IdentityService = "identity.Identity"

	// Authentication endpoints
	IdentityRegister = "/identity.Identity/Register"
	IdentityLogin    = "/identity.Identity/Login"
	IdentityRefresh  = "/identity.Identity/Refresh"

	// Health checks stay open for probes
	HealthCheck = "/grpc.health.v1.Health/Check"
	HealthWatch = "/grpc.health.v1.Health/Watch"
)

// PublicEndpoints defines endpoints that don't require authentication
var PublicEndpoints = map[string]bool{
	IdentityRegister: true,
	IdentityLogin:    true,
	IdentityRefresh:  true,
	HealthCheck:      true,
	HealthWatch:      true,
}
