package pages_test

import (
	"os"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/providerserver"
	"github.com/hashicorp/terraform-plugin-go/tfprotov6"
	"github.com/pages-preview/terraform-provider-pages/pages"
)

var testAccProtoV6ProviderFactories = map[string]func() (tfprotov6.ProviderServer, error){
	"pages": providerserver.NewProtocol6WithError(pages.New()),
}

func mustHaveEnv(t *testing.T, name string) {
	if os.Getenv(name) == "" {
		t.Fatalf("%s environment variable must be set for acceptance tests", name)
	}
}

func testAccPreCheck(t *testing.T) {
	mustHaveEnv(t, "CLOUDFLARE_API_TOKEN")
	mustHaveEnv(t, "CLOUDFLARE_ACCOUNT_ID")
	mustHaveEnv(t, "PAGES_TERRAFORM_TESTING_PROJECT")
	mustHaveEnv(t, "PAGES_TERRAFORM_TESTING_REPO")
	mustHaveEnv(t, "PAGES_TERRAFORM_TESTING_BRANCH")
}

func testProject() string {
	return os.Getenv("PAGES_TERRAFORM_TESTING_PROJECT")
}

func testRepo() string {
	return os.Getenv("PAGES_TERRAFORM_TESTING_REPO")
}

func testBranch() string {
	return os.Getenv("PAGES_TERRAFORM_TESTING_BRANCH")
}
