package test

import (
	"context"
	"os"
	"testing"

	"github.com/pages-preview/terraform-provider-pages/client"
)

func TestFindDeploymentAPI(t *testing.T) {
	token := os.Getenv("CLOUDFLARE_API_TOKEN")
	if token == "" {
		t.Skip("CLOUDFLARE_API_TOKEN not set")
	}
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	projectName := os.Getenv("PAGES_TERRAFORM_TESTING_PROJECT")
	if accountID == "" || projectName == "" {
		t.Skip("CLOUDFLARE_ACCOUNT_ID or PAGES_TERRAFORM_TESTING_PROJECT not set")
	}

	c := client.New(token).WithAccountEmail(os.Getenv("CLOUDFLARE_EMAIL"))
	ctx := context.Background()

	deployments, err := c.ListDeployments(ctx, accountID, projectName)
	if err != nil {
		t.Fatalf("Failed to list deployments: %v", err)
	}
	t.Logf("Found %d deployments", len(deployments))

	latest := deployments[0]
	branch, ok := latest.Branch()
	if !ok {
		t.Skip("latest deployment has no trigger metadata")
	}
	commit, _ := latest.CommitHash()

	tests := []struct {
		name  string
		query client.DeploymentQuery
	}{
		{
			name: "latest deployment of the branch",
			query: client.DeploymentQuery{
				AccountID:       accountID,
				ProjectName:     projectName,
				Branch:          branch,
				SkipSourceCheck: true,
			},
		},
		{
			name: "deployment of the commit",
			query: client.DeploymentQuery{
				AccountID:       accountID,
				ProjectName:     projectName,
				Branch:          branch,
				Environment:     latest.Environment,
				CommitHash:      &commit,
				SkipSourceCheck: true,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d, err := c.FindDeployment(ctx, tc.query)
			if err != nil {
				t.Fatalf("Find failed: %v", err)
			}
			t.Logf("Found deployment: %s %s (%s - %s)", d.ID, d.URL, d.LatestStage.Name, d.LatestStage.Status)
			if d.ID != latest.ID {
				t.Errorf("expected deployment %s, got %s", latest.ID, d.ID)
			}
		})
	}
}
