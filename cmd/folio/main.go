package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "build":
		os.Exit(runBuild(os.Args[2:], os.Stdout, os.Stderr))
	case "serve":
		os.Exit(runServe(os.Args[2:], os.Stderr))
	case "version":
		fmt.Printf("folio %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func printUsage() {
	fmt.Println(`folio - content collections from Markdown and front matter

Usage:
  folio <command> [flags]

Commands:
  build         Build every collection and print a summary
  serve         Serve the site, rebuilding on change
  version       Print the folio version
  help          Show this help message

Flags:
  -config path  YAML config file (default folio.yaml when present)
  -lenient      Skip invalid files instead of failing
  -log level    debug, info, warn, error or off (default info)

Examples:
  folio build -config folio.yaml -out collection.json
  folio serve -config folio.yaml`)
}
