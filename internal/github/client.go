package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// ErrUnauthorized indicates GitHub rejected the bearer token. Callers treat
// this as "token expired or revoked" and tear the session down.
var ErrUnauthorized = errors.New("github token expired or revoked")

// listPageSize caps every list at a single 100-entry page. The frontend
// shows a picker, not a complete inventory, so pagination is not walked.
const listPageSize = 100

// Client wraps the GitHub REST API for the proxy endpoints. The bearer token
// is supplied per call because it lives in the caller's session, not in the
// process.
type Client struct {
	baseURL string
}

// NewClient creates a client. baseURL overrides api.github.com and is used
// by tests and GitHub Enterprise deployments; empty selects the default.
func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

// api builds a go-github client authenticated with the given token
func (c *Client) api(ctx context.Context, token string) (*github.Client, error) {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	gh := github.NewClient(oauth2.NewClient(ctx, src))

	if c.baseURL != "" {
		base := c.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API base URL: %w", err)
		}
		gh.BaseURL = u
	}

	return gh, nil
}

// User fetches the authenticated user's profile
func (c *Client) User(ctx context.Context, token string) (*github.User, error) {
	gh, err := c.api(ctx, token)
	if err != nil {
		return nil, err
	}

	user, _, err := gh.Users.Get(ctx, "")
	if err != nil {
		return nil, mapError(err)
	}
	return user, nil
}

// Organizations fetches the organizations the authenticated user belongs to
func (c *Client) Organizations(ctx context.Context, token string) ([]*github.Organization, error) {
	gh, err := c.api(ctx, token)
	if err != nil {
		return nil, err
	}

	orgs, _, err := gh.Organizations.List(ctx, "", &github.ListOptions{PerPage: listPageSize})
	if err != nil {
		return nil, mapError(err)
	}
	return orgs, nil
}

// Repositories merges the user's personal repositories with those of every
// organization the user belongs to. Organization-level failures degrade to
// an empty list for that organization; only the personal fetch can fail the
// whole call.
func (c *Client) Repositories(ctx context.Context, token string) ([]*github.Repository, error) {
	gh, err := c.api(ctx, token)
	if err != nil {
		return nil, err
	}

	personal, _, err := gh.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: listPageSize},
	})
	if err != nil {
		return nil, mapError(err)
	}

	orgs, _, err := gh.Organizations.List(ctx, "", &github.ListOptions{PerPage: listPageSize})
	if err != nil {
		// Continue with personal repos only
		slog.WarnContext(ctx, "failed to fetch organizations", "error", err)
		orgs = nil
	}

	orgRepos := c.orgRepositories(ctx, gh, orgs)

	return MergeRepositories(personal, orgRepos), nil
}

// Accounts fetches user, personal repositories and organizations
// concurrently, then fans out per-organization repository fetches and builds
// the grouped accounts response.
func (c *Client) Accounts(ctx context.Context, token string) (*AccountsSummary, error) {
	gh, err := c.api(ctx, token)
	if err != nil {
		return nil, err
	}

	var (
		user     *github.User
		personal []*github.Repository
		orgs     []*github.Organization
	)

	errs := fanOut(
		func() error {
			var err error
			user, _, err = gh.Users.Get(ctx, "")
			return err
		},
		func() error {
			var err error
			personal, _, err = gh.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
				Sort:        "updated",
				ListOptions: github.ListOptions{PerPage: listPageSize},
			})
			return err
		},
		func() error {
			var err error
			orgs, _, err = gh.Organizations.List(ctx, "", &github.ListOptions{PerPage: listPageSize})
			return err
		},
	)
	for _, err := range errs {
		if err != nil {
			return nil, mapError(err)
		}
	}

	orgRepos := c.orgRepositories(ctx, gh, orgs)

	return buildAccountsSummary(user, personal, orgs, orgRepos), nil
}

// Scopes issues a header-only request to read the token's OAuth scopes and
// separately probes organization access.
func (c *Client) Scopes(ctx context.Context, token string) (*ScopeReport, error) {
	gh, err := c.api(ctx, token)
	if err != nil {
		return nil, err
	}

	req, err := gh.NewRequest(http.MethodHead, "user", nil)
	if err != nil {
		return nil, err
	}
	resp, err := gh.Do(ctx, req, nil)
	if err != nil {
		return nil, mapError(err)
	}

	scopes := resp.Header.Get("X-OAuth-Scopes")
	accepted := resp.Header.Get("X-Accepted-OAuth-Scopes")

	report := &ScopeReport{
		TokenScopes:     splitScopes(scopes),
		AcceptedScopes:  splitScopes(accepted),
		HasReadOrgScope: strings.Contains(scopes, "read:org"),
		HasRepoScope:    strings.Contains(scopes, "repo"),
	}
	report.Recommendations = Recommendations{
		ReadOrgRequired:       !report.HasReadOrgScope,
		RepoRequired:          !report.HasRepoScope,
		ReauthorizationNeeded: !(report.HasReadOrgScope && report.HasRepoScope),
	}

	// Scope headers say what was granted; the probe says what works
	orgs, _, err := gh.Organizations.List(ctx, "", &github.ListOptions{PerPage: listPageSize})
	if err != nil {
		report.OrganizationAccess = &OrgAccessProbe{
			Success: false,
			Error:   err.Error(),
			Details: "Failed to fetch organizations",
		}
		return report, nil
	}

	probe := &OrgAccessProbe{
		Success:            true,
		OrganizationsFound: len(orgs),
	}
	for _, org := range orgs {
		probe.Organizations = append(probe.Organizations, OrgProbe{
			Login:  org.GetLogin(),
			Public: org.GetDescription() != "",
		})
	}
	report.OrganizationAccess = probe

	return report, nil
}

// mapError converts a GitHub 401 into ErrUnauthorized and leaves everything
// else untouched
func mapError(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return err
}

func splitScopes(header string) []string {
	if header == "" {
		return []string{}
	}
	return strings.Split(header, ", ")
}
