package main

import (
	"fmt"
	"os"

	"github.com/abl030/loki-mcp/cmd"
	"github.com/abl030/loki-mcp/internal/clierr"
)

var version = "dev"

func main() {
	cmd.SetVersion(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, clierr.Format(err, false))
		os.Exit(clierr.Code(err))
	}
}
