// Command preview-url finds the Cloudflare Pages deployment of a branch and
// exposes its URL as CI step outputs.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	cmd := NewCmdPreviewURL(os.Getenv)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "::error::%s\n", err)
		os.Exit(1)
	}
}
