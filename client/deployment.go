package client

// DeploymentStage describes one step of a Pages deployment, e.g. build or deploy.
type DeploymentStage struct {
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	StartedOn *string `json:"started_on"`
	EndedOn   *string `json:"ended_on"`
}

// TriggerMetadata identifies the branch and commit that caused a deployment.
type TriggerMetadata struct {
	Branch        string `json:"branch"`
	CommitHash    string `json:"commit_hash"`
	CommitMessage string `json:"commit_message"`
	CommitDirty   bool   `json:"commit_dirty"`
}

// DeploymentTrigger describes what started a deployment.
type DeploymentTrigger struct {
	Type     string           `json:"type"`
	Metadata *TriggerMetadata `json:"metadata"`
}

// SourceConfig is the git configuration of the project the deployment was built from.
type SourceConfig struct {
	Owner            string `json:"owner"`
	RepoName         string `json:"repo_name"`
	ProductionBranch string `json:"production_branch"`
}

// DeploymentSource is the git provider a deployment was built from.
type DeploymentSource struct {
	Type   string        `json:"type"`
	Config *SourceConfig `json:"config"`
}

// Deployment is a single Pages build/deploy attempt as returned by the Cloudflare API.
type Deployment struct {
	ID                string             `json:"id"`
	ShortID           string             `json:"short_id"`
	ProjectID         string             `json:"project_id"`
	ProjectName       string             `json:"project_name"`
	Environment       string             `json:"environment"`
	URL               string             `json:"url"`
	Aliases           []string           `json:"aliases"`
	CreatedOn         string             `json:"created_on"`
	ModifiedOn        string             `json:"modified_on"`
	IsSkipped         bool               `json:"is_skipped"`
	LatestStage       DeploymentStage    `json:"latest_stage"`
	DeploymentTrigger *DeploymentTrigger `json:"deployment_trigger"`
	Source            *DeploymentSource  `json:"source"`
}

// Branch returns the branch that triggered the deployment, if known.
func (d Deployment) Branch() (string, bool) {
	if d.DeploymentTrigger == nil || d.DeploymentTrigger.Metadata == nil {
		return "", false
	}
	return d.DeploymentTrigger.Metadata.Branch, true
}

// CommitHash returns the commit that triggered the deployment, if known.
func (d Deployment) CommitHash() (string, bool) {
	if d.DeploymentTrigger == nil || d.DeploymentTrigger.Metadata == nil {
		return "", false
	}
	return d.DeploymentTrigger.Metadata.CommitHash, true
}

// RepoName returns the source repository name, if known.
func (d Deployment) RepoName() (string, bool) {
	if d.Source == nil || d.Source.Config == nil {
		return "", false
	}
	return d.Source.Config.RepoName, true
}

// DeploymentQuery selects a single deployment from a project.
type DeploymentQuery struct {
	// AccountID defaults to the client's account when empty.
	AccountID   string
	ProjectName string
	Repo        string
	Branch      string
	// Environment is ignored when empty.
	Environment string
	// CommitHash is ignored when nil.
	CommitHash *string
	// SkipSourceCheck disables the repository name check.
	SkipSourceCheck bool
}
