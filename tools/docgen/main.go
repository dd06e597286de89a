// Package main renders CLI reference docs for the deal-aggregator server and
// the dealctl client.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	dealctl "github.com/donaldgifford/deal-aggregator/cmd/dealctl/cmd"
	server "github.com/donaldgifford/deal-aggregator/cmd/deal-aggregator/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory")
	man := flag.Bool("man", false, "also write man pages under <output>/man")
	flag.Parse()

	roots := map[string]*cobra.Command{
		"deal-aggregator": server.Root(),
		"dealctl":         dealctl.Root(),
	}

	for name, root := range roots {
		if err := render(root, filepath.Join(*output, name), *man); err != nil {
			log.Fatalf("%s: %v", name, err)
		}
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}

func render(root *cobra.Command, dir string, man bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	root.DisableAutoGenTag = true

	if err := doc.GenMarkdownTree(root, dir); err != nil {
		return fmt.Errorf("markdown: %w", err)
	}
	if !man {
		return nil
	}

	manDir := filepath.Join(dir, "man")
	if err := os.MkdirAll(manDir, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", manDir, err)
	}
	header := &doc.GenManHeader{Title: root.Name(), Section: "1", Source: "deal-aggregator"}
	if err := doc.GenManTree(root, header, manDir); err != nil {
		return fmt.Errorf("man pages: %w", err)
	}
	return nil
}
