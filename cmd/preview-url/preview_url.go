package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/hashicorp/terraform-plugin-log/tfsdklog"
	"github.com/pages-preview/terraform-provider-pages/client"
	"github.com/spf13/cobra"
)

type options struct {
	apiToken        string
	accountID       string
	accountEmail    string
	projectName     string
	repo            string
	branch          string
	environment     string
	commitHash      string
	skipSourceCheck bool
	baseURL         string
	logLevel        string
	outputFile      string
}

// input reads a step input the way the runner exposes it to the process.
func input(getenv func(string) string, name string) string {
	return strings.TrimSpace(getenv("INPUT_" + strings.ToUpper(name)))
}

// NewCmdPreviewURL creates the command. Flag defaults come from the step inputs
// found through getenv, so the binary works both as an action and by hand.
func NewCmdPreviewURL(getenv func(string) string) *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:           "preview-url",
		Short:         "Find the Cloudflare Pages deployment of a branch",
		Long:          "Looks up the deployment of a Cloudflare Pages project matching a repository, branch, and optionally an environment and commit, and writes its URL and status as step outputs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreviewURL(cmd.Context(), o, cmd.OutOrStdout())
		},
	}

	skip, _ := strconv.ParseBool(input(getenv, "skipSourceCheck"))
	logLevel := input(getenv, "logLevel")
	if logLevel == "" {
		logLevel = "info"
	}

	f := cmd.Flags()
	f.StringVar(&o.apiToken, "api-token", input(getenv, "apiToken"), "Cloudflare API token, or Global API Key when --account-email is set")
	f.StringVar(&o.accountID, "account-id", input(getenv, "accountId"), "Cloudflare account ID")
	f.StringVar(&o.accountEmail, "account-email", input(getenv, "accountEmail"), "Cloudflare account email, switches to key+email authentication")
	f.StringVar(&o.projectName, "project", input(getenv, "projectName"), "Pages project name")
	f.StringVar(&o.repo, "repo", input(getenv, "repo"), "Repository name the deployment was built from")
	f.StringVar(&o.branch, "branch", input(getenv, "branch"), "Branch that triggered the deployment")
	f.StringVar(&o.environment, "environment", input(getenv, "environment"), "Deployment environment, any when empty")
	f.StringVar(&o.commitHash, "commit-hash", input(getenv, "commitHash"), "Commit that triggered the deployment, any when empty")
	f.BoolVar(&o.skipSourceCheck, "skip-source-check", skip, "Match deployments from any repository")
	f.StringVar(&o.baseURL, "base-url", input(getenv, "baseUrl"), "Cloudflare API root")
	f.StringVar(&o.logLevel, "log-level", logLevel, "Log level (trace, debug, info, warn, error)")
	f.StringVar(&o.outputFile, "output-file", getenv("GITHUB_OUTPUT"), "File to append step outputs to, stdout when empty")
	_ = f.MarkHidden("base-url")

	return cmd
}

func (o *options) validate() error {
	var missing []string
	if o.apiToken == "" {
		missing = append(missing, "api-token")
	}
	if o.accountID == "" {
		missing = append(missing, "account-id")
	}
	if o.projectName == "" {
		missing = append(missing, "project")
	}
	if o.branch == "" {
		missing = append(missing, "branch")
	}
	if o.repo == "" && !o.skipSourceCheck {
		missing = append(missing, "repo (or --skip-source-check)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required inputs: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (o *options) query() client.DeploymentQuery {
	q := client.DeploymentQuery{
		AccountID:       o.accountID,
		ProjectName:     o.projectName,
		Repo:            o.repo,
		Branch:          o.branch,
		Environment:     o.environment,
		SkipSourceCheck: o.skipSourceCheck,
	}
	if o.commitHash != "" {
		h := o.commitHash
		q.CommitHash = &h
	}
	return q
}

func runPreviewURL(ctx context.Context, o *options, stdout io.Writer) error {
	if err := o.validate(); err != nil {
		return err
	}

	level := hclog.LevelFromString(o.logLevel)
	if level == hclog.NoLevel {
		return fmt.Errorf("invalid log level %q", o.logLevel)
	}
	ctx = tfsdklog.NewRootProviderLogger(ctx,
		tfsdklog.WithLogName("preview-url"),
		tfsdklog.WithLevel(level),
		tfsdklog.WithoutLocation(),
	)

	c := client.New(o.apiToken).
		WithAccountEmail(o.accountEmail).
		WithAccountID(o.accountID).
		WithBaseURL(o.baseURL)

	d, err := c.FindDeployment(ctx, o.query())
	switch {
	case client.NoDeployments(err):
		return fmt.Errorf("no deployments found for project %s", o.projectName)
	case client.NoMatchingDeployments(err):
		return fmt.Errorf("no matching builds found: %w", err)
	case err != nil:
		return fmt.Errorf("error finding deployment: %w", err)
	}

	tflog.Info(ctx, "found deployment", map[string]any{
		"id":     d.ID,
		"url":    d.URL,
		"status": d.LatestStage.Status,
	})

	return writeOutputs(o.outputFile, stdout, deploymentOutputs(d))
}

type output struct {
	name  string
	value string
}

func deploymentOutputs(d client.Deployment) []output {
	alias := d.URL
	if len(d.Aliases) > 0 {
		alias = d.Aliases[0]
	}
	return []output{
		{"id", d.ID},
		{"url", d.URL},
		{"environment", d.Environment},
		{"alias", alias},
		{"stage", d.LatestStage.Name},
		{"status", d.LatestStage.Status},
	}
}

// writeOutputs appends name=value lines to path, or writes them to stdout when path is empty.
func writeOutputs(path string, stdout io.Writer, outputs []output) (err error) {
	w := stdout
	if path != "" {
		f, openErr := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if openErr != nil {
			return fmt.Errorf("error opening output file: %w", openErr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	for _, out := range outputs {
		if strings.ContainsAny(out.value, "\r\n") {
			return fmt.Errorf("output %s contains a newline", out.name)
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", out.name, out.value); err != nil {
			return fmt.Errorf("error writing output %s: %w", out.name, err)
		}
	}
	return nil
}
