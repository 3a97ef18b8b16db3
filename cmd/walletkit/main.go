// Package main is the entry point for the walletkit CLI.
package main

import (
	"os"

	"github.com/Shulepov/wallet-kit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
