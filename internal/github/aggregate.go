package github

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/go-github/v66/github"
)

// fanOut runs the given operations concurrently and returns their errors in
// call order once all have settled
func fanOut(ops ...func() error) []error {
	errs := make([]error, len(ops))

	var wg sync.WaitGroup
	for i, op := range ops {
		wg.Add(1)
		go func(i int, op func() error) {
			defer wg.Done()
			errs[i] = op()
		}(i, op)
	}
	wg.Wait()

	return errs
}

// orgRepositories fetches each organization's repositories in parallel.
// Results are slotted by organization index so output order follows the
// upstream organization list regardless of completion order. A failed fetch
// leaves an empty slot rather than failing the aggregate.
func (c *Client) orgRepositories(ctx context.Context, gh *github.Client, orgs []*github.Organization) [][]*github.Repository {
	results := make([][]*github.Repository, len(orgs))

	var wg sync.WaitGroup
	for i, org := range orgs {
		wg.Add(1)
		go func(i int, login string) {
			defer wg.Done()

			repos, _, err := gh.Repositories.ListByOrg(ctx, login, &github.RepositoryListByOrgOptions{
				Sort:        "updated",
				ListOptions: github.ListOptions{PerPage: listPageSize},
			})
			if err != nil {
				slog.WarnContext(ctx, "failed to fetch repositories for organization",
					"org", login, "error", err)
				return
			}
			results[i] = repos
		}(i, org.GetLogin())
	}
	wg.Wait()

	return results
}

// MergeRepositories combines personal and organization repositories,
// deduplicates by repository ID (first occurrence wins) and sorts the result
// by last-updated timestamp, most recent first.
func MergeRepositories(personal []*github.Repository, orgRepos [][]*github.Repository) []*github.Repository {
	seen := make(map[int64]bool)
	merged := make([]*github.Repository, 0, len(personal))

	add := func(repos []*github.Repository) {
		for _, repo := range repos {
			id := repo.GetID()
			if seen[id] {
				continue
			}
			seen[id] = true
			merged = append(merged, repo)
		}
	}

	add(personal)
	for _, repos := range orgRepos {
		add(repos)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].GetUpdatedAt().Time.After(merged[j].GetUpdatedAt().Time)
	})

	return merged
}

// buildAccountsSummary structures the fetched data for the frontend
func buildAccountsSummary(user *github.User, personal []*github.Repository, orgs []*github.Organization, orgRepos [][]*github.Repository) *AccountsSummary {
	login := user.GetLogin()

	// Personal group only lists repositories the user owns; the raw
	// personal list can include repos from other owners the user
	// collaborates on
	owned := make([]*github.Repository, 0, len(personal))
	for _, repo := range personal {
		if repo.GetOwner().GetLogin() == login {
			owned = append(owned, repo)
		}
	}

	summary := &AccountsSummary{
		User: user,
		Personal: AccountGroup{
			Account: Account{
				Login:     login,
				Name:      user.GetName(),
				AvatarURL: user.GetAvatarURL(),
				Type:      "User",
			},
			Repositories: owned,
		},
		Organizations: make([]AccountGroup, 0, len(orgs)),
	}

	totalOrgRepos := 0
	for i, org := range orgs {
		repos := orgRepos[i]
		if repos == nil {
			repos = []*github.Repository{}
		}
		totalOrgRepos += len(repos)

		name := org.GetName()
		if name == "" {
			name = org.GetLogin()
		}

		summary.Organizations = append(summary.Organizations, AccountGroup{
			Account: Account{
				Login:       org.GetLogin(),
				Name:        name,
				AvatarURL:   org.GetAvatarURL(),
				Description: org.GetDescription(),
				Type:        "Organization",
			},
			Repositories: repos,
		})
	}

	summary.Summary = Totals{
		TotalPersonalRepos: len(owned),
		TotalOrganizations: len(orgs),
		TotalOrgRepos:      totalOrgRepos,
		// The grand total counts the unfiltered personal list, so it
		// can exceed the per-group counts. The frontend displays it
		// as-is.
		TotalRepos: len(personal) + totalOrgRepos,
	}

	return summary
}
