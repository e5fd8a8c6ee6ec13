package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/herodex/internal/marvel"
)

// OutputFormat selects how query commands print characters.
type OutputFormat string

// Supported output formats.
const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
)

const (
	tabPadding       = 2
	descColumnWidth  = 60
	descColumnSuffix = "..."
)

// ParseOutputFormat validates a --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputTable, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table or json)", s)
	}
}

// printer formats counts for humans.
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}

// renderJSON writes v as indented JSON.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// renderCharacterTable writes one row per character.
func renderCharacterTable(w io.Writer, chars []marvel.Character) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCOMICS\tDESCRIPTION")
	fmt.Fprintln(tw, "--\t----\t------\t-----------")
	for _, c := range chars {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", c.ID, c.Name, len(c.Comics), clip(c.Description, descColumnWidth))
	}
	return tw.Flush()
}

// renderCharacterDetail writes every field of c, comics truncated as in the browser.
func renderCharacterDetail(w io.Writer, c marvel.Character) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", c.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", c.Name)
	fmt.Fprintf(tw, "Description:\t%s\n", c.Description)
	fmt.Fprintf(tw, "Thumbnail:\t%s\n", c.Thumbnail)
	if fit, ok := marvel.ResolveThumbnailStyle(c.Thumbnail, marvel.ObjectFitFill); ok {
		fmt.Fprintf(tw, "Thumbnail fit:\t%s\n", fit)
	}
	fmt.Fprintf(tw, "Homepage:\t%s\n", c.Homepage)
	fmt.Fprintf(tw, "Wiki:\t%s\n", c.Wiki)
	if err := tw.Flush(); err != nil {
		return err
	}

	comics := c.DisplayComics()
	if len(comics) == 0 {
		_, err := fmt.Fprintf(w, "Comics:\n  %s\n", marvel.NoComicsText)
		return err
	}
	p := printer()
	p.Fprintf(w, "Comics (%d of %d):\n", len(comics), len(c.Comics))
	for _, comic := range comics {
		fmt.Fprintf(w, "  - %s\n", comic.Name)
	}
	return nil
}

// clip shortens s to n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-len(descColumnSuffix)]) + descColumnSuffix
}
