package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docmodel/internal/placeholder"
	"github.com/dgallion1/docmodel/internal/run"
)

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Apply a placeholder batch and print the mutated document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		phPath, _ := cmd.Flags().GetString("placeholders")
		if phPath == "" {
			return fmt.Errorf("--placeholders is required")
		}
		data, err := os.ReadFile(phPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", phPath, err)
		}
		var phs []placeholder.Placeholder
		if err := json.Unmarshal(data, &phs); err != nil {
			return fmt.Errorf("parse placeholders: %w", err)
		}

		if markdown, _ := cmd.Flags().GetBool("markdown"); markdown {
			for i := range phs {
				if phs[i].ReplacedText == "" {
					continue
				}
				html, err := run.MarkdownToHTML(phs[i].ReplacedText)
				if err != nil {
					return fmt.Errorf("convert markdown: %w", err)
				}
				phs[i].ReplacedText = html
			}
		}

		doc.ApplyPlaceholders(phs)

		out := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer f.Close()
			out = f
		}
		return doc.Encode(out)
	},
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file.docx>",
	Short: "Convert a .docx file to document-tree JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer f.Close()
			out = f
		}
		return doc.Encode(out)
	},
}

func init() {
	applyCmd.Flags().String("placeholders", "", "path to a placeholder batch JSON file")
	applyCmd.Flags().Bool("markdown", false, "treat replacement text as Markdown")
	applyCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	ingestCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(ingestCmd)
}
