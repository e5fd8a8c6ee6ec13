package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/herodex/internal/marvel"
	"github.com/rshade/herodex/internal/pagination"
	"github.com/rshade/herodex/internal/tui"
)

// maxConcurrentFetches bounds parallel requests for characters get.
const maxConcurrentFetches = 4

// NewCharactersListCmd creates the characters list command.
func NewCharactersListCmd() *cobra.Command {
	var (
		offset int
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of characters",
		Example: `  # First page shown by the browser
  herodex characters list

  # Page at offset 300 as JSON
  herodex characters list --offset 300 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := ParseOutputFormat(output)
			if err != nil {
				return err
			}
			params := pagination.NewParams(offset)
			if err = params.Validate(); err != nil {
				return err
			}
			client, _, err := newClient(cmd)
			if err != nil {
				return err
			}

			chars, err := client.GetAllCharacters(cmd.Context(), params.Offset)
			if err != nil {
				return fmt.Errorf("listing characters at offset %d: %w", params.Offset, err)
			}
			logger.Debug().Ctx(cmd.Context()).Int("offset", params.Offset).Int("count", len(chars)).
				Msg("character page fetched")

			return renderPage(cmd, format, params, chars)
		},
	}

	cmd.Flags().IntVar(&offset, "offset", pagination.DefaultOffset, "number of characters to skip")
	cmd.Flags().StringVarP(&output, "output", "o", string(OutputTable), "output format: table or json")

	return cmd
}

func renderPage(cmd *cobra.Command, format OutputFormat, params pagination.Params, chars []marvel.Character) error {
	w := cmd.OutOrStdout()
	if format == OutputJSON {
		if chars == nil {
			chars = []marvel.Character{}
		}
		return renderJSON(w, chars)
	}

	p := printer()
	if len(chars) == 0 {
		p.Fprintf(w, "No characters at offset %d.\n", params.Offset)
		return nil
	}
	if err := renderCharacterTable(w, chars); err != nil {
		return err
	}

	p.Fprintf(w, "\n%d characters from offset %d", len(chars), params.Offset)
	if params.IsLastPage(len(chars)) {
		p.Fprintf(w, " (end of catalog)\n")
	} else {
		p.Fprintf(w, " (next: --offset %d)\n", params.Next().Offset)
	}
	return nil
}

// NewCharactersGetCmd creates the characters get command.
func NewCharactersGetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get ID [ID...]",
		Short: "Show one or more characters by id",
		Args:  cobra.MinimumNArgs(1),
		Example: `  # Show one character
  herodex characters get 1011334

  # Fetch several characters concurrently as JSON
  herodex characters get 1011334 1009610 --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(output)
			if err != nil {
				return err
			}
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			client, _, err := newClient(cmd)
			if err != nil {
				return err
			}

			chars, err := fetchCharacters(cmd, client, ids)
			if err != nil {
				return err
			}
			return renderCharacters(cmd, format, chars)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(OutputTable), "output format: table or json")

	return cmd
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid character id %q: must be a positive integer", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// fetchCharacters fetches ids concurrently and returns them in argument order.
// The first failure cancels the remaining requests.
func fetchCharacters(cmd *cobra.Command, client *marvel.Client, ids []int) ([]marvel.Character, error) {
	chars := make([]marvel.Character, len(ids))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentFetches)
	for i, id := range ids {
		g.Go(func() error {
			c, err := client.GetCharacterByID(ctx, id)
			if err != nil {
				return fmt.Errorf("fetching character %d: %w", id, err)
			}
			chars[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chars, nil
}

func renderCharacters(cmd *cobra.Command, format OutputFormat, chars []marvel.Character) error {
	w := cmd.OutOrStdout()
	if format == OutputJSON {
		if len(chars) == 1 {
			return renderJSON(w, chars[0])
		}
		return renderJSON(w, chars)
	}

	for i, c := range chars {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := renderCharacterDetail(w, c); err != nil {
			return err
		}
	}
	return nil
}

// NewCharactersRandomCmd creates the characters random command.
func NewCharactersRandomCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a random character",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := ParseOutputFormat(output)
			if err != nil {
				return err
			}
			client, cfg, err := newClient(cmd)
			if err != nil {
				return err
			}

			id := tui.NewRangePicker(cfg.UI.RandomMinID, cfg.UI.RandomMaxID)()
			c, err := client.GetCharacterByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("fetching random character %d: %w", id, err)
			}
			return renderCharacters(cmd, format, []marvel.Character{c})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(OutputTable), "output format: table or json")

	return cmd
}
