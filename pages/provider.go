package pages

import (
	"context"
	"os"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"
	"github.com/pages-preview/terraform-provider-pages/client"
)

type pagesProvider struct{}

// Ensure the implementation satisfies the expected interfaces.
var _ provider.Provider = &pagesProvider{}

// New instantiates a new instance of a Cloudflare Pages terraform provider.
func New() provider.Provider {
	return &pagesProvider{}
}

func (p *pagesProvider) Metadata(_ context.Context, _ provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "pages"
}

// Schema returns the schema information for the provider configuration itself.
func (p *pagesProvider) Schema(_ context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: `
The Pages provider looks up deployments of Cloudflare Pages projects.
The provider needs to be configured with the proper credentials before it can be used.
`,
		Attributes: map[string]schema.Attribute{
			"api_token": schema.StringAttribute{
				Optional:    true,
				Sensitive:   true,
				Description: "The Cloudflare API Token, or the Global API Key when `account_email` is set. This can also be specified with the `CLOUDFLARE_API_TOKEN` shell environment variable.",
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"account_email": schema.StringAttribute{
				Optional:    true,
				Description: "The email of the account owning the Global API Key. When set, requests authenticate with `X-Auth-Key` and `X-Auth-Email` instead of a Bearer token. This can also be specified with the `CLOUDFLARE_EMAIL` shell environment variable.",
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(3),
				},
			},
			"account_id": schema.StringAttribute{
				Optional:    true,
				Description: "The default Cloudflare account ID used when a data source does not set one. This can also be specified with the `CLOUDFLARE_ACCOUNT_ID` shell environment variable.",
			},
			"base_url": schema.StringAttribute{
				Optional:    true,
				Description: "Override the Cloudflare API root. Defaults to `" + client.DefaultBaseURL + "`. This can also be specified with the `CLOUDFLARE_API_BASE_URL` shell environment variable.",
			},
		},
	}
}

func (p *pagesProvider) Resources(_ context.Context) []func() resource.Resource {
	return []func() resource.Resource{}
}

func (p *pagesProvider) DataSources(_ context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		newPagesDeploymentDataSource,
	}
}

type providerData struct {
	APIToken     types.String `tfsdk:"api_token"`
	AccountEmail types.String `tfsdk:"account_email"`
	AccountID    types.String `tfsdk:"account_id"`
	BaseURL      types.String `tfsdk:"base_url"`
}

// valueOrEnv returns the configured value, falling back to an environment variable when it is null.
func valueOrEnv(v types.String, env string) string {
	if v.IsNull() {
		return os.Getenv(env)
	}
	return v.ValueString()
}

// Configure takes a provider and applies any configuration. In the context of Cloudflare
// this allows us to set up the API credentials and default account.
func (p *pagesProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var config providerData
	diags := req.Config.Get(ctx, &config)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	if config.APIToken.IsUnknown() || config.AccountEmail.IsUnknown() {
		resp.Diagnostics.AddWarning(
			"Unable to create client",
			"Cannot use unknown value as api_token or account_email",
		)
		return
	}

	apiToken := valueOrEnv(config.APIToken, "CLOUDFLARE_API_TOKEN")
	if apiToken == "" {
		resp.Diagnostics.AddError(
			"Unable to find api_token",
			"api_token cannot be an empty string. Set it in the provider block or with the CLOUDFLARE_API_TOKEN environment variable.",
		)
		return
	}

	c := client.New(apiToken).
		WithAccountEmail(valueOrEnv(config.AccountEmail, "CLOUDFLARE_EMAIL")).
		WithAccountID(valueOrEnv(config.AccountID, "CLOUDFLARE_ACCOUNT_ID")).
		WithBaseURL(valueOrEnv(config.BaseURL, "CLOUDFLARE_API_BASE_URL"))

	tflog.Debug(ctx, "configured pages client", map[string]any{
		"account_id":      c.AccountID(),
		"email_auth_used": valueOrEnv(config.AccountEmail, "CLOUDFLARE_EMAIL") != "",
	})

	resp.DataSourceData = c
	resp.ResourceData = c
}
