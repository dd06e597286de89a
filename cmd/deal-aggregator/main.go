// Package main is the entry point for the deal-aggregator server.
package main

import (
	"os"

	"github.com/donaldgifford/deal-aggregator/cmd/deal-aggregator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
