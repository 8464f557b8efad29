package github

import "github.com/google/go-github/v66/github"

// Account is the owner summary attached to each repository group in the
// accounts response
type Account struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	AvatarURL   string `json:"avatar_url"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// AccountGroup pairs an account with its repository list
type AccountGroup struct {
	Account      Account              `json:"account"`
	Repositories []*github.Repository `json:"repositories"`
}

// Totals summarizes the accounts response for the frontend
type Totals struct {
	TotalPersonalRepos int `json:"totalPersonalRepos"`
	TotalOrganizations int `json:"totalOrganizations"`
	TotalOrgRepos      int `json:"totalOrgRepos"`
	TotalRepos         int `json:"totalRepos"`
}

// AccountsSummary groups personal and per-organization repositories
type AccountsSummary struct {
	User          *github.User   `json:"user"`
	Personal      AccountGroup   `json:"personal"`
	Organizations []AccountGroup `json:"organizations"`
	Summary       Totals         `json:"summary"`
}

// OrgProbe is one organization visible to the scope probe
type OrgProbe struct {
	Login  string `json:"login"`
	Public bool   `json:"public"`
}

// OrgAccessProbe reports whether the token can list organizations
type OrgAccessProbe struct {
	Success            bool       `json:"success"`
	OrganizationsFound int        `json:"organizationsFound,omitempty"`
	Organizations      []OrgProbe `json:"organizations,omitempty"`
	Error              string     `json:"error,omitempty"`
	Details            string     `json:"details,omitempty"`
}

// Recommendations flags the scopes a re-authorization should request
type Recommendations struct {
	ReadOrgRequired       bool `json:"readOrgRequired"`
	RepoRequired          bool `json:"repoRequired"`
	ReauthorizationNeeded bool `json:"reauthorizationNeeded"`
}

// ScopeReport describes the OAuth scopes granted to the session token
type ScopeReport struct {
	TokenScopes        []string        `json:"tokenScopes"`
	AcceptedScopes     []string        `json:"acceptedScopes"`
	HasReadOrgScope    bool            `json:"hasReadOrgScope"`
	HasRepoScope       bool            `json:"hasRepoScope"`
	OrganizationAccess *OrgAccessProbe `json:"organizationAccess"`
	Recommendations    Recommendations `json:"recommendations"`
}
