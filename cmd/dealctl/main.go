// Package main is the entry point for the dealctl CLI client.
package main

import (
	"github.com/donaldgifford/deal-aggregator/cmd/dealctl/cmd"
)

func main() {
	cmd.Execute()
}
