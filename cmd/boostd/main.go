// Package main is the single-binary entrypoint for boostd.
package main

import "github.com/perfkit/boostd/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
