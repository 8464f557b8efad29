package apipaths

// API surface paths. Used by routes and by handler tests.

const (
	Health       = "/api/health"
	AuthCallback = "/api/auth/callback"
	AuthLogin    = "/api/auth/login"
	AuthSession  = "/api/auth/session"
	OAuthToken   = "/api/python/oauth/token"
	CreateIssue  = "/api/python/create-issue"

	GitHubUser     = "/api/github/user"
	GitHubOrgs     = "/api/github/orgs"
	GitHubRepos    = "/api/github/repos"
	GitHubAccounts = "/api/github/accounts"

	DebugScopes  = "/api/debug/scopes"
	DebugSession = "/api/debug/session"
	DebugOAuth   = "/api/debug/oauth"
	DebugSystem  = "/api/debug/system"
)
