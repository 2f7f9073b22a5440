package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dcode-github/hostel_listing_system/backend/filters"
)

func canonicalCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "canonical <query>",
		Short: "Validate listing query parameters and print the canonical URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printCanonical(cmd.OutOrStdout(), path, args[0])
		},
	}
	cmd.Flags().StringVar(&path, "path", "/", "Path the query belongs to")
	return cmd
}

func printCanonical(w io.Writer, path, query string) error {
	raw, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return fmt.Errorf("parse query: %w", err)
	}

	params, errs := filters.Validate(raw)
	out, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(out))

	if len(errs) == 0 {
		fmt.Fprintln(w, "valid:", filters.SyncURL(path, filters.FromSearchParams(params), params.Sort))
		return nil
	}

	fmt.Fprintln(w, errs.Error())
	redirect, _ := filters.RedirectURLIfInvalid(path, raw)
	fmt.Fprintln(w, "redirect:", redirect)
	return nil
}
