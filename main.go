package main

import (
	"context"
	"flag"
	"log"

	"github.com/hashicorp/terraform-plugin-framework/providerserver"
	"github.com/pages-preview/terraform-provider-pages/pages"
)

func main() {
	var debug bool

	flag.BoolVar(&debug, "debug", false, "set to true to run the provider with support for debuggers like delve")
	flag.Parse()

	err := providerserver.Serve(context.Background(), pages.New, providerserver.ServeOpts{
		Address: "registry.terraform.io/pages-preview/pages",
		Debug:   debug,
	})
	if err != nil {
		log.Fatal(err.Error())
	}
}
