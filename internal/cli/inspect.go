package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docmodel/internal/document"
)

var headingsCmd = &cobra.Command{
	Use:   "headings <file>",
	Short: "List the document's headings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		headings := doc.Headings(formatFlag(cmd))
		if headings == nil {
			headings = []document.HeadingRef{}
		}
		return writeJSON(cmd.OutOrStdout(), headings)
	},
}

var sectionCmd = &cobra.Command{
	Use:   "section <file> <heading-id>",
	Short: "Print the content under a heading",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}

		captions, _ := cmd.Flags().GetBool("captions")
		tables, _ := cmd.Flags().GetBool("tables")
		subheadings, _ := cmd.Flags().GetBool("subheadings")

		section := doc.HeadingContent(args[1], document.ContentOptions{
			IncludeCaptions:    captions,
			IncludeTables:      tables,
			IncludeSubheadings: subheadings,
			Format:             formatFlag(cmd),
		})
		if section == nil {
			return fmt.Errorf("heading not found: %s", args[1])
		}
		return writeJSON(cmd.OutOrStdout(), section)
	},
}

var detailsCmd = &cobra.Command{
	Use:   "details <file> <heading-id>",
	Short: "Show a heading's position, parent, siblings, and children",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		detail := doc.HeadingDetails(args[1], formatFlag(cmd))
		if detail == nil {
			return fmt.Errorf("heading not found: %s", args[1])
		}
		return writeJSON(cmd.OutOrStdout(), detail)
	},
}

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Print the document outline as an index tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), doc.BuildIndex(doc.Filename))
	},
}

func init() {
	for _, c := range []*cobra.Command{headingsCmd, sectionCmd, detailsCmd, outlineCmd} {
		c.Flags().String("format", "text", "render format (text|html)")
	}
	sectionCmd.Flags().Bool("captions", false, "include captions")
	sectionCmd.Flags().Bool("tables", false, "include tables")
	sectionCmd.Flags().Bool("subheadings", false, "include subheadings")

	rootCmd.AddCommand(headingsCmd)
	rootCmd.AddCommand(sectionCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(outlineCmd)
}
