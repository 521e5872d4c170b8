package pages

import (
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/tfsdk"
	"github.com/hashicorp/terraform-plugin-go/tftypes"
	"github.com/pages-preview/terraform-provider-pages/client"
)

func configureProvider(t *testing.T, vals map[string]tftypes.Value) *provider.ConfigureResponse {
	t.Helper()
	p := New()

	schemaResp := &provider.SchemaResponse{}
	p.Schema(testCtx, provider.SchemaRequest{}, schemaResp)
	if schemaResp.Diagnostics.HasError() {
		t.Fatalf("unexpected schema diagnostics: %v", schemaResp.Diagnostics)
	}

	typ := schemaResp.Schema.Type().TerraformType(testCtx)
	resp := &provider.ConfigureResponse{}
	p.Configure(testCtx, provider.ConfigureRequest{
		Config: tfsdk.Config{
			Schema: schemaResp.Schema,
			Raw:    objectValue(t, typ, vals),
		},
	}, resp)
	return resp
}

func TestProviderMetadata(t *testing.T) {
	resp := &provider.MetadataResponse{}
	New().Metadata(testCtx, provider.MetadataRequest{}, resp)
	if resp.TypeName != "pages" {
		t.Errorf("unexpected type name %q", resp.TypeName)
	}
}

func TestProviderConfigure(t *testing.T) {
	t.Run("from configuration", func(t *testing.T) {
		t.Setenv("CLOUDFLARE_API_TOKEN", "")
		t.Setenv("CLOUDFLARE_ACCOUNT_ID", "env-account")
		resp := configureProvider(t, map[string]tftypes.Value{
			"api_token":  str("TOKEN"),
			"account_id": str("config-account"),
		})
		if resp.Diagnostics.HasError() {
			t.Fatalf("unexpected diagnostics: %v", resp.Diagnostics)
		}
		c, ok := resp.DataSourceData.(*client.Client)
		if !ok {
			t.Fatalf("expected *client.Client, got %T", resp.DataSourceData)
		}
		if c.AccountID() != "config-account" {
			t.Errorf("expected the configured account to win over the environment, got %q", c.AccountID())
		}
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("CLOUDFLARE_API_TOKEN", "ENV-TOKEN")
		t.Setenv("CLOUDFLARE_ACCOUNT_ID", "env-account")
		resp := configureProvider(t, nil)
		if resp.Diagnostics.HasError() {
			t.Fatalf("unexpected diagnostics: %v", resp.Diagnostics)
		}
		c, ok := resp.DataSourceData.(*client.Client)
		if !ok {
			t.Fatalf("expected *client.Client, got %T", resp.DataSourceData)
		}
		if c.AccountID() != "env-account" {
			t.Errorf("unexpected account %q", c.AccountID())
		}
	})

	t.Run("missing token", func(t *testing.T) {
		t.Setenv("CLOUDFLARE_API_TOKEN", "")
		resp := configureProvider(t, nil)
		if !resp.Diagnostics.HasError() {
			t.Fatal("expected an error when no token is available")
		}
		if resp.DataSourceData != nil {
			t.Errorf("no client should be handed to data sources")
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		resp := configureProvider(t, map[string]tftypes.Value{
			"api_token": tftypes.NewValue(tftypes.String, tftypes.UnknownValue),
		})
		if resp.Diagnostics.HasError() {
			t.Fatalf("unknown values should only warn, got %v", resp.Diagnostics)
		}
		if resp.Diagnostics.WarningsCount() != 1 {
			t.Errorf("expected a single warning, got %v", resp.Diagnostics)
		}
	})
}

func TestProviderDataSources(t *testing.T) {
	fns := New().DataSources(testCtx)
	if len(fns) != 1 {
		t.Fatalf("expected one data source, got %d", len(fns))
	}
}
