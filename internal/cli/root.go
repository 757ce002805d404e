// Package cli implements the docmodel command line: offline inspection and
// mutation of document trees (JSON or .docx) without running the server.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docmodel/internal/document"
	"github.com/dgallion1/docmodel/internal/element"
	"github.com/dgallion1/docmodel/internal/ingest"
)

var rootCmd = &cobra.Command{
	Use:           "docmodel",
	Short:         "Inspect and mutate document trees",
	Long:          "docmodel loads a document tree (JSON) or a .docx file and answers navigation queries or applies placeholder edits.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadDocument reads a .docx or document-tree JSON file into a queryable
// document.
func loadDocument(path string) (*document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return ingest.FromDocx(data, filepath.Base(path), element.DefaultClassifier())
	}

	doc, err := document.Decode(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}
	doc.Filename = filepath.Base(path)
	doc.AssignIDs(0)
	doc.BuildHierarchy()
	return doc, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func formatFlag(cmd *cobra.Command) element.RenderFormat {
	if f, _ := cmd.Flags().GetString("format"); f == "html" {
		return element.FormatHTML
	}
	return element.FormatText
}
