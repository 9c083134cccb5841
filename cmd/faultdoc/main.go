// faultdoc renders the repository fault catalog as reference
// documentation: every kind with its HTTP status, transience and summary,
// in markdown, JSON or YAML.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/strata-repo/fault"
)

func main() {
	format := flag.String("format", "markdown", "output format: markdown, json or yaml")
	out := flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	doc, err := render(*format)
	if err != nil {
		logger.Error("failed to render catalog", "error", err, "format", *format)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(doc)
		return
	}

	if err := os.WriteFile(*out, doc, 0o644); err != nil {
		logger.Error("failed to write catalog", "error", err, "path", *out)
		os.Exit(1)
	}

	logger.Info("catalog written", "path", *out, "format", *format)
}

func render(format string) ([]byte, error) {
	switch format {
	case "markdown":
		return renderMarkdown(), nil
	case "json":
		return json.MarshalIndent(fault.Catalog(), "", "  ")
	case "yaml":
		return yaml.Marshal(fault.Catalog())
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func renderMarkdown() []byte {
	var buf bytes.Buffer

	buf.WriteString("# Repository fault kinds\n\n")
	buf.WriteString("| Kind | HTTP status | Transient | Summary |\n")
	buf.WriteString("|------|-------------|-----------|---------|\n")
	for _, info := range fault.Catalog() {
		fmt.Fprintf(&buf, "| `%s` | %d | %t | %s |\n", info.Kind, info.HTTPStatus, info.Transient, info.Summary)
	}

	return buf.Bytes()
}
