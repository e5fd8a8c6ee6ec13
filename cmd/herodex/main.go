// Command herodex browses the Marvel character catalog.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/herodex/internal/cli"
	"github.com/rshade/herodex/pkg/version"
)

func run() error {
	root := cli.NewRootCmd(version.String())
	return root.ExecuteContext(context.Background())
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
