package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// FindDeployment locates the deployment matching a query.
//
// The project's deployments are narrowed by repository, branch, environment and
// commit, in that order, and the first one left in API order is returned.
func (c *Client) FindDeployment(ctx context.Context, q DeploymentQuery) (Deployment, error) {
	fields := map[string]any{
		"project_name": q.ProjectName,
		"repo":         q.Repo,
		"branch":       q.Branch,
	}
	if q.CommitHash != nil {
		fields["commit_hash"] = *q.CommitHash
	}
	tflog.Info(ctx, "finding deployment", fields)

	all, err := c.ListDeployments(ctx, q.AccountID, q.ProjectName)
	if err != nil {
		return Deployment{}, err
	}

	tflog.Debug(ctx, fmt.Sprintf("looking for matching deployments %s/%s", q.Repo, q.Branch))
	stages := []struct {
		name string
		pred deploymentPredicate
	}{
		{"source", matchRepo(q.Repo, q.SkipSourceCheck)},
		{"branch", matchBranch(q.Branch)},
		{"environment", matchEnvironment(q.Environment)},
		{"commit_hash", matchCommit(q.CommitHash)},
	}
	builds := all
	for _, s := range stages {
		builds = filterDeployments(builds, s.pred)
		tflog.Debug(ctx, fmt.Sprintf("%d after %s", len(builds), s.name), map[string]any{
			"stage": s.name,
			"count": len(builds),
		})
	}

	tflog.Info(ctx, fmt.Sprintf("found %d matching builds", len(builds)))
	if len(builds) == 0 {
		remaining, _ := json.Marshal(builds)
		tflog.Error(ctx, "no matching builds found", map[string]any{
			"builds": string(remaining),
		})
		return Deployment{}, NoMatchingDeploymentsError{
			Query:      q,
			Considered: len(all),
			Remaining:  builds,
		}
	}

	build := builds[0]
	tflog.Info(ctx, fmt.Sprintf("preview URL: %s (%s - %s)", build.URL, build.LatestStage.Name, build.LatestStage.Status), map[string]any{
		"id":  build.ID,
		"url": build.URL,
	})
	return build, nil
}
