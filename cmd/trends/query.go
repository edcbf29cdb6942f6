package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/couchcryptid/region-sentiment/internal/domain"
	"github.com/spf13/cobra"
)

const (
	defaultSentimentText = "Are you virtuous or verminous?"
	defaultMapTerm       = "my job"
)

func newSentimentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment [text...]",
		Short: "List the scored words of a text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := defaultSentimentText
			if len(args) > 0 {
				text = strings.Join(args, " ")
			}
			analyzer, err := a.analyzer(cmd.Context())
			if err != nil {
				return err
			}
			printWordScores(cmd.OutOrStdout(), analyzer.ScoredWords(text))
			return nil
		},
	}
}

// printWordScores right-aligns every word to the longest one and prints its
// signed score.
func printWordScores(w io.Writer, scores []domain.WordScore) {
	width := 0
	for _, s := range scores {
		width = max(width, len(s.Word))
	}
	for _, s := range scores {
		fmt.Fprintf(w, "%*s: %+g\n", width, s.Word, s.Score)
	}
}

func newNearestCmd(a *app) *cobra.Command {
	var (
		region string
		n      int
	)
	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "List the regions whose centers are closest to a region",
		RunE: func(cmd *cobra.Command, _ []string) error {
			centers, err := a.loadCenters(cmd.Context())
			if err != nil {
				return err
			}
			regions, err := domain.NearestRegions(region, centers, n)
			if err != nil {
				return err
			}
			printNearest(cmd.OutOrStdout(), regions)
			return nil
		},
	}
	cmd.Flags().StringVar(&region, "region", "TX", "center region id")
	cmd.Flags().IntVarP(&n, "count", "n", 10, "number of regions to list; negative lists all")
	return cmd
}

func printNearest(w io.Writer, regions []domain.RegionDistance) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "REGION\tLAT\tLON\tMILES\t")
	for _, r := range regions {
		fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.1f\t\n", r.Region, r.Center.Lat, r.Center.Lon, r.Meters/domain.MetersPerMile)
	}
	tw.Flush() //nolint:errcheck // writer errors surface on the underlying stream
}

func newMapCmd(a *app) *cobra.Command {
	var (
		term    string
		publish bool
	)
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Report per-region sentiment for records matching a term",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd.Context(), publish || a.cfg.PublishEnabled)
			if err != nil {
				return err
			}
			report, err := svc.Report(cmd.Context(), term)
			printReport(cmd.OutOrStdout(), report)
			return err
		},
	}
	cmd.Flags().StringVar(&term, "term", defaultMapTerm, "whole-word phrase the records must contain")
	cmd.Flags().BoolVar(&publish, "publish", false, "publish the report to Kafka regardless of PUBLISH_ENABLED")
	return cmd
}

func printReport(w io.Writer, r domain.Report) {
	if r.ID == "" {
		return
	}
	fmt.Fprintf(w, "report %s  term=%q  records=%d  unknown=%d\n\n", r.ID, r.Term, r.RecordCount, r.UnknownRecords())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "REGION\tRECORDS\tSENTIMENT")
	for _, row := range r.Regions {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", row.Region, row.RecordCount, formatSentiment(row.Sentiment))
	}
	tw.Flush() //nolint:errcheck // writer errors surface on the underlying stream
}

func formatSentiment(s domain.Sentiment) string {
	v, ok := s.Value()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%+.4f", v)
}
