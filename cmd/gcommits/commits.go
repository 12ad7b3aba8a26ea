package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/alimgiray/gcommits/internal/export"
	"github.com/alimgiray/gcommits/internal/models"
	"github.com/alimgiray/gcommits/internal/services"
	"github.com/spf13/cobra"
)

type commitsOptions struct {
	username    string
	token       string
	email       string
	since       string
	until       string
	provider    string
	groupBy     string
	concurrency int
	xlsxPath    string
	copyRow     int
	copyField   string
	jsonOutput  bool
}

func newCommitsCmd(a *app) *cobra.Command {
	opts := &commitsOptions{}

	cmd := &cobra.Command{
		Use:   "commits",
		Short: "Fetch and group commits for a date range",
		Example: `  gcommits commits --since 2025-07-01 --until 2025-07-31
  gcommits commits --since 2025-07-01 --until 2025-07-31 --email me@example.com --copy 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommits(cmd, a, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.username, "username", "u", "", "platform username (default: stored)")
	flags.StringVarP(&opts.token, "token", "t", "", "personal access token (default: stored)")
	flags.StringVarP(&opts.email, "email", "e", "", "only commits authored by this email")
	flags.StringVar(&opts.since, "since", "", "first day, YYYY-MM-DD or RFC 3339")
	flags.StringVar(&opts.until, "until", "", "last day, YYYY-MM-DD or RFC 3339")
	flags.StringVar(&opts.provider, "provider", "", "gitlab or github (default: PROVIDER)")
	flags.StringVar(&opts.groupBy, "group-by", "", "name or id (default: GROUP_BY)")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "projects fetched in parallel (default: FETCH_CONCURRENCY)")
	flags.StringVar(&opts.xlsxPath, "xlsx", "", "also write rows to this xlsx file")
	flags.IntVar(&opts.copyRow, "copy", 0, "copy this row to the clipboard")
	flags.StringVar(&opts.copyField, "copy-field", export.FieldCommits, "field to copy: commits or project")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print rows as JSON")

	return cmd
}

func runCommits(cmd *cobra.Command, a *app, opts *commitsOptions) error {
	cfg := *a.cfg
	if opts.provider != "" {
		cfg.Remote.Provider = opts.provider
	}
	if opts.groupBy != "" {
		cfg.Display.GroupBy = opts.groupBy
	}
	if opts.concurrency > 0 {
		cfg.Remote.Concurrency = opts.concurrency
	}

	location := cfg.Display.Location()
	window, err := parseWindow(opts.since, opts.until, location)
	if err != nil {
		return err
	}

	creds, err := a.credentials.Merge(models.Credentials{Username: opts.username, Token: opts.token})
	if err != nil {
		return err
	}

	aggregationService, err := services.NewAggregationServiceFromConfig(&cfg)
	if err != nil {
		return err
	}

	rows, err := aggregationService.Aggregate(cmd.Context(), services.AggregationRequest{
		Credentials: creds,
		Window:      window,
		AuthorEmail: opts.email,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return err
		}
	} else {
		printRows(out, rows)
	}

	if opts.xlsxPath != "" {
		if err := writeXLSX(opts.xlsxPath, rows); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(rows), opts.xlsxPath)
	}

	if opts.copyRow > 0 {
		text, err := export.CopyRow(a.clipboard, rows, opts.copyRow, opts.copyField)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Copied: %s\n", text)
	}

	return nil
}

// parseWindow turns --since/--until into instants. Plain dates cover whole
// days in loc; empty values stay nil so validation can report them.
func parseWindow(since, until string, loc *time.Location) (models.DateWindow, error) {
	var window models.DateWindow

	if since != "" {
		start, err := parseBound(since, loc, false)
		if err != nil {
			return window, fmt.Errorf("invalid --since: %w", err)
		}
		window.Start = &start
	}
	if until != "" {
		end, err := parseBound(until, loc, true)
		if err != nil {
			return window, fmt.Errorf("invalid --until: %w", err)
		}
		window.End = &end
	}
	return window, nil
}

func parseBound(value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	day, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("want YYYY-MM-DD or RFC 3339, got %q", value)
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Millisecond), nil
	}
	return day, nil
}

func printRows(w io.Writer, rows []models.DisplayRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No commits found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATE\tTIME\tPROJECT\tCOMMITS")
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", row.ID, row.Date, row.Time, row.ProjectName, row.Commits)
	}
	tw.Flush()
}

func writeXLSX(path string, rows []models.DisplayRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteWorkbook(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
