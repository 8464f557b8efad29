package http

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	gh "github.com/google/go-github/v66/github"
	"github.com/issuedesk/internal/apipaths"
	githubapi "github.com/issuedesk/internal/github"
)

func TestGitHubEndpointsRequireSession(t *testing.T) {
	s := newTestServer(t, "")

	paths := []string{
		apipaths.GitHubUser,
		apipaths.GitHubOrgs,
		apipaths.GitHubRepos,
		apipaths.GitHubAccounts,
		apipaths.DebugScopes,
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := doRequest(s, jsonRequest(http.MethodGet, path, "", nil))
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			if body := decodeBody(t, w); body["error"] != "Not authenticated" {
				t.Errorf("error = %v", body["error"])
			}
		})
	}
}

func TestGetGitHubUser(t *testing.T) {
	s := newTestServer(t, "")
	s.github = &fakeGitHub{user: &gh.User{
		Login: gh.String("alice"),
		Name:  gh.String("Alice"),
	}}
	cookies := loginCookies(t, s, "tok")

	w := doRequest(s, jsonRequest(http.MethodGet, apipaths.GitHubUser, "", cookies))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["login"] != "alice" {
		t.Errorf("login = %v", body["login"])
	}
}

func TestGetGitHubReposExpiredToken(t *testing.T) {
	s := newTestServer(t, "")
	s.github = &fakeGitHub{err: githubapi.ErrUnauthorized}
	cookies := loginCookies(t, s, "expired")

	w := doRequest(s, jsonRequest(http.MethodGet, apipaths.GitHubRepos, "", cookies))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "GitHub token expired" {
		t.Errorf("error = %v", body["error"])
	}
	if !sessionExpired(w) {
		t.Error("an expired token must destroy the session")
	}
}

func TestGetGitHubUserUpstreamFailure(t *testing.T) {
	s := newTestServer(t, "")
	s.github = &fakeGitHub{err: errors.New("connection reset")}
	cookies := loginCookies(t, s, "tok")

	w := doRequest(s, jsonRequest(http.MethodGet, apipaths.GitHubUser, "", cookies))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	body := decodeBody(t, w)
	if body["error"] != "Failed to fetch user data" {
		t.Errorf("error = %v", body["error"])
	}
	if body["details"] != "connection reset" {
		t.Errorf("details = %v", body["details"])
	}
	if sessionExpired(w) {
		t.Error("a transient failure must not destroy the session")
	}
}

func TestGetGitHubOrgs(t *testing.T) {
	s := newTestServer(t, "")
	s.github = &fakeGitHub{orgs: []*gh.Organization{
		{Login: gh.String("acme")},
	}}
	cookies := loginCookies(t, s, "tok")

	w := doRequest(s, jsonRequest(http.MethodGet, apipaths.GitHubOrgs, "", cookies))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var orgs []map[string]interface{}
	decodeInto(t, w, &orgs)
	if len(orgs) != 1 || orgs[0]["login"] != "acme" {
		t.Errorf("orgs = %v", orgs)
	}
}

func TestGetGitHubRepos(t *testing.T) {
	s := newTestServer(t, "")
	s.github = &fakeGitHub{repos: []*gh.Repository{
		{ID: gh.Int64(1), Name: gh.String("mine")},
		{ID: gh.Int64(2), Name: gh.String("theirs")},
	}}
	cookies := loginCookies(t, s, "tok")

	w := doRequest(s, jsonRequest(http.MethodGet, apipaths.GitHubRepos, "", cookies))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var repos []map[string]interface{}
	decodeInto(t, w, &repos)
	if len(repos) != 2 {
		t.Errorf("repos = %d entries, want 2", len(repos))
	}
}

func TestGetGitHubAccounts(t *testing.T) {
	s := newTestServer(t, "")
	s.github = &fakeGitHub{accounts: &githubapi.AccountsSummary{
		User: &gh.User{Login: gh.String("alice")},
		Personal: githubapi.AccountGroup{
			Account:      githubapi.Account{Login: "alice", Type: "User"},
			Repositories: []*gh.Repository{},
		},
		Organizations: []githubapi.AccountGroup{},
		Summary:       githubapi.Totals{TotalPersonalRepos: 0},
	}}
	cookies := loginCookies(t, s, "tok")

	w := doRequest(s, jsonRequest(http.MethodGet, apipaths.GitHubAccounts, "", cookies))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := decodeBody(t, w)
	personal, ok := body["personal"].(map[string]interface{})
	if !ok {
		t.Fatalf("personal = %v", body["personal"])
	}
	account, _ := personal["account"].(map[string]interface{})
	if account["login"] != "alice" {
		t.Errorf("personal account = %v", account)
	}
}

func TestGetTokenScopes(t *testing.T) {
	s := newTestServer(t, "")
	s.github = &fakeGitHub{scopes: &githubapi.ScopeReport{
		TokenScopes:     []string{"repo", "read:org"},
		HasRepoScope:    true,
		HasReadOrgScope: true,
	}}
	cookies := loginCookies(t, s, "tok")

	w := doRequest(s, jsonRequest(http.MethodGet, apipaths.DebugScopes, "", cookies))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["hasRepoScope"] != true || body["hasReadOrgScope"] != true {
		t.Errorf("scope report = %v", body)
	}
}

func TestDebugSessionReportsPresenceOnly(t *testing.T) {
	s := newTestServer(t, "")
	cookies := loginCookies(t, s, "gho_secret_token_value")

	w := doRequest(s, jsonRequest(http.MethodGet, apipaths.DebugSession, "", cookies))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["hasAccessToken"] != true {
		t.Errorf("hasAccessToken = %v", body["hasAccessToken"])
	}
	if strings.Contains(w.Body.String(), "gho_secret_token_value") {
		t.Error("session diagnostics must not include the token value")
	}
}
