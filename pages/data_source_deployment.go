package pages

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/attr"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/pages-preview/terraform-provider-pages/client"
)

// Ensure the implementation satisfies the expected interfaces.
var (
	_ datasource.DataSource                   = &pagesDeploymentDataSource{}
	_ datasource.DataSourceWithConfigure      = &pagesDeploymentDataSource{}
	_ datasource.DataSourceWithValidateConfig = &pagesDeploymentDataSource{}
)

// Cloudflare records the full lowercase SHA-1 of the triggering commit.
var commitHashRe = regexp.MustCompile(`^[0-9a-f]{40}$`)

func newPagesDeploymentDataSource() datasource.DataSource {
	return &pagesDeploymentDataSource{}
}

type pagesDeploymentDataSource struct {
	client *client.Client
}

func (d *pagesDeploymentDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_deployment"
}

func (d *pagesDeploymentDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	// Prevent panic if the provider has not been configured.
	if req.ProviderData == nil {
		return
	}

	client, ok := req.ProviderData.(*client.Client)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Data Source Configure Type",
			fmt.Sprintf("Expected *client.Client, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}

	d.client = client
}

// Schema returns the schema information for a pages deployment data source
func (d *pagesDeploymentDataSource) Schema(_ context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: `
Finds a deployment of a Cloudflare Pages project.

The project's deployments are narrowed down by repository, branch, environment and commit,
and the first match in API order (newest first) is returned. This is typically used to discover the preview URL
of a branch after pushing it.
`,
		Attributes: map[string]schema.Attribute{
			"account_id": schema.StringAttribute{
				Description: "The Cloudflare account owning the project. Required if a default account has not been set in the provider.",
				Optional:    true,
				Computed:    true,
			},
			"project_name": schema.StringAttribute{
				Description: "The name of the Pages project.",
				Required:    true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"repo": schema.StringAttribute{
				Description: "The name of the git repository the deployment was built from. Required unless `skip_source_check` is true.",
				Optional:    true,
			},
			"branch": schema.StringAttribute{
				Description: "The branch that triggered the deployment. Compared exactly, including case.",
				Required:    true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"environment": schema.StringAttribute{
				Description: "The environment of the deployment, either `production` or `preview`. When not set, deployments of any environment match; the environment of the returned deployment is exported here. Other environment names are not accepted here, although the `preview-url` command compares any value exactly.",
				Optional:    true,
				Computed:    true,
				Validators: []validator.String{
					stringvalidator.OneOf("production", "preview"),
				},
			},
			"commit_hash": schema.StringAttribute{
				Description: "The full 40 character, lowercase commit SHA that triggered the deployment. It is compared exactly, so abbreviated hashes never match. When not set, the most recent deployment of the branch matches; its commit is exported here.",
				Optional:    true,
				Computed:    true,
				Validators: []validator.String{
					stringvalidator.RegexMatches(commitHashRe, "commit_hash must be a full commit SHA of 40 lowercase hexadecimal characters"),
				},
			},
			"skip_source_check": schema.BoolAttribute{
				Description: "Match deployments regardless of the repository they were built from.",
				Optional:    true,
			},
			"id": schema.StringAttribute{
				Description: "The ID of the deployment.",
				Computed:    true,
			},
			"short_id": schema.StringAttribute{
				Description: "The short ID of the deployment, as used in its preview URL.",
				Computed:    true,
			},
			"url": schema.StringAttribute{
				Description: "The preview URL of the deployment.",
				Computed:    true,
			},
			"aliases": schema.ListAttribute{
				Description: "Additional URLs serving the deployment, such as the branch alias.",
				Computed:    true,
				ElementType: types.StringType,
			},
			"stage_name": schema.StringAttribute{
				Description: "The name of the latest stage of the deployment, e.g. `build` or `deploy`.",
				Computed:    true,
			},
			"stage_status": schema.StringAttribute{
				Description: "The status of the latest stage of the deployment, e.g. `active`, `success` or `failure`.",
				Computed:    true,
			},
			"commit_message": schema.StringAttribute{
				Description: "The message of the commit that triggered the deployment.",
				Computed:    true,
			},
		},
	}
}

// PagesDeployment reflects the state terraform stores internally for a pages deployment.
type PagesDeployment struct {
	AccountID       types.String `tfsdk:"account_id"`
	ProjectName     types.String `tfsdk:"project_name"`
	Repo            types.String `tfsdk:"repo"`
	Branch          types.String `tfsdk:"branch"`
	Environment     types.String `tfsdk:"environment"`
	CommitHash      types.String `tfsdk:"commit_hash"`
	SkipSourceCheck types.Bool   `tfsdk:"skip_source_check"`
	ID              types.String `tfsdk:"id"`
	ShortID         types.String `tfsdk:"short_id"`
	URL             types.String `tfsdk:"url"`
	Aliases         types.List   `tfsdk:"aliases"`
	StageName       types.String `tfsdk:"stage_name"`
	StageStatus     types.String `tfsdk:"stage_status"`
	CommitMessage   types.String `tfsdk:"commit_message"`
}

func (d *pagesDeploymentDataSource) ValidateConfig(ctx context.Context, req datasource.ValidateConfigRequest, resp *datasource.ValidateConfigResponse) {
	var config PagesDeployment
	diags := req.Config.Get(ctx, &config)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	if config.Repo.IsUnknown() || config.SkipSourceCheck.IsUnknown() {
		return
	}

	if config.Repo.IsNull() && !config.SkipSourceCheck.ValueBool() {
		resp.Diagnostics.AddError(
			"Pages deployment invalid",
			"Pages deployment must specify a `repo`, or set `skip_source_check` to true",
		)
	}
}

// toQuery builds a locator query from the data source configuration. An unset
// or empty commit_hash disables the commit filter.
func (p PagesDeployment) toQuery() client.DeploymentQuery {
	q := client.DeploymentQuery{
		AccountID:       p.AccountID.ValueString(),
		ProjectName:     p.ProjectName.ValueString(),
		Repo:            p.Repo.ValueString(),
		Branch:          p.Branch.ValueString(),
		Environment:     p.Environment.ValueString(),
		SkipSourceCheck: p.SkipSourceCheck.ValueBool(),
	}
	if h := p.CommitHash.ValueString(); h != "" {
		q.CommitHash = &h
	}
	return q
}

func toAccountID(v string) types.String {
	if v == "" {
		return types.StringNull()
	}
	return types.StringValue(v)
}

func convertResponseToPagesDeployment(in client.Deployment, config PagesDeployment, accountID string) PagesDeployment {
	var aliases []attr.Value
	for _, a := range in.Aliases {
		aliases = append(aliases, types.StringValue(a))
	}

	commitHash := types.StringNull()
	commitMessage := types.StringNull()
	if in.DeploymentTrigger != nil && in.DeploymentTrigger.Metadata != nil {
		commitHash = types.StringValue(in.DeploymentTrigger.Metadata.CommitHash)
		commitMessage = types.StringValue(in.DeploymentTrigger.Metadata.CommitMessage)
	}
	if !config.CommitHash.IsNull() {
		commitHash = config.CommitHash
	}

	return PagesDeployment{
		AccountID:       toAccountID(accountID),
		ProjectName:     config.ProjectName,
		Repo:            config.Repo,
		Branch:          config.Branch,
		Environment:     types.StringValue(in.Environment),
		CommitHash:      commitHash,
		SkipSourceCheck: config.SkipSourceCheck,
		ID:              types.StringValue(in.ID),
		ShortID:         types.StringValue(in.ShortID),
		URL:             types.StringValue(in.URL),
		Aliases:         types.ListValueMust(types.StringType, aliases),
		StageName:       types.StringValue(in.LatestStage.Name),
		StageStatus:     types.StringValue(in.LatestStage.Status),
		CommitMessage:   commitMessage,
	}
}

// Read finds the deployment by requesting the project's deployments from the Cloudflare API, and will
// update terraform with this information.
func (d *pagesDeploymentDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var config PagesDeployment
	diags := req.Config.Get(ctx, &config)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	if d.client == nil {
		resp.Diagnostics.AddError(
			"Unconfigured client",
			"The provider has not been configured with an API token. Set api_token or the CLOUDFLARE_API_TOKEN environment variable.",
		)
		return
	}

	q := config.toQuery()
	accountID := q.AccountID
	if accountID == "" {
		accountID = d.client.AccountID()
	}
	if accountID == "" {
		resp.Diagnostics.AddError(
			"Error finding pages deployment",
			"No account_id was set on the data source and the provider has no default account. Set account_id or the CLOUDFLARE_ACCOUNT_ID environment variable.",
		)
		return
	}
	q.AccountID = accountID

	out, err := d.client.FindDeployment(ctx, q)
	if client.NoDeployments(err) || client.NoMatchingDeployments(err) {
		resp.Diagnostics.AddError(
			"Error finding pages deployment",
			fmt.Sprintf("Could not find a deployment of %s %s: %s", accountID, q.ProjectName, err),
		)
		return
	}
	if client.NotFound(err) {
		resp.Diagnostics.AddError(
			"Error finding pages deployment",
			fmt.Sprintf("Pages project %s %s does not exist: %s", accountID, q.ProjectName, err),
		)
		return
	}
	if err != nil {
		resp.Diagnostics.AddError(
			"Error finding pages deployment",
			fmt.Sprintf("Could not list deployments of %s %s, unexpected error: %s",
				accountID,
				q.ProjectName,
				err,
			),
		)
		return
	}

	result := convertResponseToPagesDeployment(out, config, accountID)
	tflog.Info(ctx, "read pages deployment", map[string]any{
		"account_id":    accountID,
		"project_name":  result.ProjectName.ValueString(),
		"deployment_id": result.ID.ValueString(),
	})

	diags = resp.State.Set(ctx, result)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}
}
