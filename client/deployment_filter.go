package client

// deploymentPredicate reports whether a deployment should be kept.
type deploymentPredicate func(Deployment) bool

func matchRepo(repo string, skipSourceCheck bool) deploymentPredicate {
	return func(d Deployment) bool {
		if skipSourceCheck {
			return true
		}
		name, ok := d.RepoName()
		return ok && name == repo
	}
}

func matchBranch(branch string) deploymentPredicate {
	return func(d Deployment) bool {
		b, ok := d.Branch()
		return ok && b == branch
	}
}

func matchEnvironment(environment string) deploymentPredicate {
	return func(d Deployment) bool {
		if environment == "" {
			return true
		}
		return d.Environment == environment
	}
}

func matchCommit(commitHash *string) deploymentPredicate {
	return func(d Deployment) bool {
		if commitHash == nil {
			return true
		}
		h, ok := d.CommitHash()
		return ok && h == *commitHash
	}
}

// filterDeployments keeps the deployments matching pred, preserving order.
func filterDeployments(ds []Deployment, pred deploymentPredicate) []Deployment {
	out := make([]Deployment, 0, len(ds))
	for _, d := range ds {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out
}
