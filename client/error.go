package client

import (
	"errors"
	"fmt"
)

// NotFound detects if an error returned by the Cloudflare API was the result of an entity not existing.
func NotFound(err error) bool {
	var apiErr APIError
	return err != nil && errors.As(err, &apiErr) && apiErr.StatusCode == 404
}

// NoDeploymentsError is returned when a project has no deployments at all.
type NoDeploymentsError struct {
	AccountID   string
	ProjectName string
	// RawResponse is the body the API returned.
	RawResponse []byte
}

func (e NoDeploymentsError) Error() string {
	return fmt.Sprintf("no deployments found for project %s in account %s", e.ProjectName, e.AccountID)
}

// NoDeployments detects if an error was caused by an empty deployment list.
func NoDeployments(err error) bool {
	var e NoDeploymentsError
	return err != nil && errors.As(err, &e)
}

// NoMatchingDeploymentsError is returned when deployments exist but none of
// them satisfy the query.
type NoMatchingDeploymentsError struct {
	Query DeploymentQuery
	// Considered is the number of deployments the API returned.
	Considered int
	// Remaining is what was left after filtering. It is always empty.
	Remaining []Deployment
}

func (e NoMatchingDeploymentsError) Error() string {
	msg := fmt.Sprintf("no matching builds found for %s/%s among %d deployments", e.Query.Repo, e.Query.Branch, e.Considered)
	if e.Query.Environment != "" {
		msg += fmt.Sprintf(", environment %s", e.Query.Environment)
	}
	if e.Query.CommitHash != nil {
		msg += fmt.Sprintf(", commit %s", *e.Query.CommitHash)
	}
	return msg
}

// NoMatchingDeployments detects if an error was caused by every deployment being filtered out.
func NoMatchingDeployments(err error) bool {
	var e NoMatchingDeploymentsError
	return err != nil && errors.As(err, &e)
}
