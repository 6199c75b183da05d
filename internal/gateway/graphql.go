package gateway

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
)

// activityQuery fetches the latest release and the default branch head in
// one round trip. Absent nodes decode as zero values.
type activityQuery struct {
	Repository struct {
		LatestRelease struct {
			TagName     string
			PublishedAt githubv4.DateTime
			CreatedAt   githubv4.DateTime
		}
		DefaultBranchRef struct {
			Target struct {
				Commit struct {
					CommittedDate githubv4.DateTime
				} `graphql:"... on Commit"`
			}
		}
	} `graphql:"repository(owner: $owner, name: $name)"`
}

func (g *GitHubGateway) lastActivityGraphQL(ctx context.Context, owner, name string) (string, error) {
	var q activityQuery
	variables := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return "", fmt.Errorf("failed to execute GraphQL query for activity: %w", err)
	}

	release := q.Repository.LatestRelease
	if activity, ok := releaseActivity(release.TagName, release.PublishedAt.Time, release.CreatedAt.Time); ok {
		return activity, nil
	}
	if activity, ok := commitActivity(q.Repository.DefaultBranchRef.Target.Commit.CommittedDate.Time); ok {
		return activity, nil
	}
	return defaultActivity, nil
}
