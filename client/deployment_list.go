package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

type deploymentListResponse struct {
	Success bool         `json:"success"`
	Result  []Deployment `json:"result"`
}

// ListDeployments lists the deployments of a Pages project in the order the API returns them.
// Only the first page is read.
func (c *Client) ListDeployments(ctx context.Context, accountID, projectName string) ([]Deployment, error) {
	accountID = c.account(accountID)
	apiURL := fmt.Sprintf(
		"%s/accounts/%s/pages/projects/%s/deployments",
		c.baseURL,
		url.PathEscape(accountID),
		url.PathEscape(projectName),
	)

	tflog.Info(ctx, "listing deployments", map[string]any{
		"url": apiURL,
	})
	// A literal JSON null leaves the pointer nil.
	var r *deploymentListResponse
	raw, err := c.doRequest(clientRequest{
		ctx:    ctx,
		method: "GET",
		url:    apiURL,
		body:   "",
	}, &r)
	if err != nil {
		return nil, err
	}

	if r == nil || len(r.Result) == 0 {
		tflog.Error(ctx, "no deployments found", map[string]any{
			"response": string(raw),
		})
		return nil, NoDeploymentsError{
			AccountID:   accountID,
			ProjectName: projectName,
			RawResponse: raw,
		}
	}

	tflog.Info(ctx, fmt.Sprintf("found %d deployments", len(r.Result)), map[string]any{
		"count": len(r.Result),
	})
	return r.Result, nil
}
