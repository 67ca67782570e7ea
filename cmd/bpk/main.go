// Command bpk packages, inspects, and verifies BPK firmware
// containers.
package main

import (
	"os"

	"github.com/somfy-oss/bpk/cmd/bpk/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
