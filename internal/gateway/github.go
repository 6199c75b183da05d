// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/solana-repo-tracker/internal/domain"
)

const (
	// SearchLimit is the number of search results requested per query.
	SearchLimit = 15

	activityDateLayout = "Jan 02, 2006"
	defaultActivity    = "Active"
)

// Fetcher defines the behavior of a data source for repository metadata.
type Fetcher interface {
	// CheckQuota reports the remaining API quota.
	CheckQuota(ctx context.Context) (domain.Quota, error)
	// FetchStats returns a fresh stats snapshot for an "owner/name" repository.
	// It returns ErrRepoNotFound when the repository does not exist.
	FetchStats(ctx context.Context, fullName string) (*domain.Stats, error)
	// SearchRepositories returns up to limit repositories matching query,
	// most starred first.
	SearchRepositories(ctx context.Context, query string, limit int) ([]domain.SearchHit, error)
}

// Options configures a GitHubGateway.
type Options struct {
	Token string
	// BaseURL overrides the REST endpoint, e.g. for GitHub Enterprise.
	BaseURL string
	// GraphQLURL overrides the GraphQL endpoint.
	GraphQLURL string
	// UseGraphQL resolves last activity with a single GraphQL query
	// instead of the release and commit REST calls.
	UseGraphQL bool
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        zerolog.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger zerolog.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
		Timeout: 30 * time.Second,
	}

	restClient := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse API URL %q: %w", opts.BaseURL, err)
		}
		restClient.BaseURL = baseURL
	}

	g := &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}
	if opts.UseGraphQL {
		endpoint := opts.GraphQLURL
		if endpoint == "" {
			endpoint = restClient.BaseURL.String() + "graphql"
		}
		g.graphqlClient = githubv4.NewEnterpriseClient(endpoint, httpClient)
	}
	return g, nil
}

// CheckQuota queries the core REST quota.
func (g *GitHubGateway) CheckQuota(ctx context.Context) (domain.Quota, error) {
	limits, _, err := g.restClient.RateLimit.Get(ctx)
	if err != nil {
		return domain.Quota{}, wrapError(err, "failed to get rate limit")
	}
	core := limits.GetCore()
	if core == nil {
		return domain.Quota{}, errors.New("failed to get rate limit: response has no core quota")
	}
	return domain.Quota{
		Remaining: core.Remaining,
		Limit:     core.Limit,
		ResetAt:   core.Reset.Time,
		Known:     true,
	}, nil
}

// FetchStats fetches the repository, its contributor count and its last activity.
// Only the repository lookup itself can fail; the other steps degrade to
// defaults.
func (g *GitHubGateway) FetchStats(ctx context.Context, fullName string) (*domain.Stats, error) {
	owner, name, ok := domain.SplitRepo(fullName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRepo, fullName)
	}
	g.logger.Debug().Str("repo", fullName).Msg("Fetching repository")

	repo, _, err := g.restClient.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, wrapError(err, "failed to get repository "+fullName)
	}

	stats := &domain.Stats{
		Stars:        repo.GetStargazersCount(),
		Contributors: g.countContributors(ctx, owner, name),
		LastActivity: g.lastActivity(ctx, owner, name),
		Archived:     repo.GetArchived(),
		Language:     repo.GetLanguage(),
	}
	if updated := repo.GetUpdatedAt(); !updated.IsZero() {
		stats.UpdatedAt = updated.UTC().Format(time.RFC3339)
	}
	return stats, nil
}

// countContributors requests one contributor per page, so the last page
// number advertised by the Link header is the contributor count.
func (g *GitHubGateway) countContributors(ctx context.Context, owner, name string) int {
	opts := &github.ListContributorsOptions{ListOptions: github.ListOptions{PerPage: 1}}
	contributors, resp, err := g.restClient.Repositories.ListContributors(ctx, owner, name, opts)
	if err != nil {
		g.logger.Warn().Err(err).Str("repo", owner+"/"+name).Msg("Could not get contributors count")
		return 0
	}
	if resp != nil && resp.LastPage > 0 {
		return resp.LastPage
	}
	return len(contributors)
}

func (g *GitHubGateway) lastActivity(ctx context.Context, owner, name string) string {
	if g.graphqlClient != nil {
		activity, err := g.lastActivityGraphQL(ctx, owner, name)
		if err == nil {
			return activity
		}
		g.logger.Warn().Err(err).Str("repo", owner+"/"+name).Msg("GraphQL activity lookup failed, falling back to REST")
	}
	return g.lastActivityREST(ctx, owner, name)
}

func (g *GitHubGateway) lastActivityREST(ctx context.Context, owner, name string) string {
	release, _, err := g.restClient.Repositories.GetLatestRelease(ctx, owner, name)
	if err == nil {
		if activity, ok := releaseActivity(release.GetTagName(), release.GetPublishedAt().Time, release.GetCreatedAt().Time); ok {
			return activity
		}
	} else if !IsNotFound(err) {
		g.logger.Debug().Err(err).Str("repo", owner+"/"+name).Msg("Could not get latest release")
	}

	commits, _, err := g.restClient.Repositories.ListCommits(ctx, owner, name, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		g.logger.Debug().Err(err).Str("repo", owner+"/"+name).Msg("Could not get latest commit")
		return defaultActivity
	}
	if len(commits) > 0 {
		if activity, ok := commitActivity(commits[0].GetCommit().GetCommitter().GetDate().Time); ok {
			return activity
		}
	}
	return defaultActivity
}

func releaseActivity(tag string, published, created time.Time) (string, bool) {
	if tag == "" {
		return "", false
	}
	date := published
	if date.IsZero() {
		date = created
	}
	if date.IsZero() {
		return "", false
	}
	return fmt.Sprintf("%s (%s)", tag, date.Format(activityDateLayout)), true
}

func commitActivity(committed time.Time) (string, bool) {
	if committed.IsZero() {
		return "", false
	}
	return fmt.Sprintf("Last commit (%s)", committed.Format(activityDateLayout)), true
}

// SearchRepositories runs a repository search ordered by stars.
func (g *GitHubGateway) SearchRepositories(ctx context.Context, query string, limit int) ([]domain.SearchHit, error) {
	if limit <= 0 {
		limit = SearchLimit
	}
	opts := &github.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: limit},
	}
	result, _, err := g.restClient.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, wrapError(err, "failed to search repositories")
	}

	hits := make([]domain.SearchHit, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		hits = append(hits, domain.SearchHit{
			FullName:    r.GetFullName(),
			Name:        r.GetName(),
			Description: r.GetDescription(),
			Fork:        r.GetFork(),
			Stars:       r.GetStargazersCount(),
			Topics:      r.Topics,
		})
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}
