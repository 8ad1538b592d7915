package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/batch"
)

func newBatchCmd() *cobra.Command {
	var inputPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Predict survival for multiple patients from a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, validator, err := loadPipeline()
			if err != nil {
				return err
			}

			runner := batch.NewRunner(pipeline, validator)
			summary, err := runner.Run(inputPath, outputPath)
			if err != nil {
				return err
			}

			fmt.Printf("Scored %d patients", len(summary.Results))
			if outputPath != "" {
				fmt.Printf(", predictions saved to '%s'", outputPath)
			}
			fmt.Println()

			if len(summary.Failures) > 0 {
				fmt.Printf("\nSkipped %d rows:\n", len(summary.Failures))
				ids := make([]int, 0, len(summary.Failures))
				for id := range summary.Failures {
					ids = append(ids, id)
				}
				sort.Ints(ids)
				for _, id := range ids {
					fmt.Printf("   patient %d: %s\n", id, summary.Failures[id])
				}
			}

			fmt.Println("\nResults Summary:")
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "Patient_ID\tPredicted_Days\tPredicted_Months\tRisk_Category")
			for _, result := range summary.Results {
				fmt.Fprintf(writer, "%d\t%.0f\t%.1f\t%s\n",
					result.PatientID, result.PredictedDays, result.PredictedMonths, result.RiskCategory)
			}
			writer.Flush()

			fmt.Println("\nRisk Distribution:")
			for _, line := range distributionLines(summary) {
				fmt.Println("   " + line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "CSV file of patient rows")
	cmd.Flags().StringVar(&outputPath, "output", "batch_predictions.csv", "CSV file for per-row results")
	cmd.MarkFlagRequired("input")

	return cmd
}

// distributionLines formats tier counts by descending frequency.
func distributionLines(summary batch.Summary) []string {
	type entry struct {
		category string
		count    int
	}
	entries := make([]entry, 0, len(summary.Distribution))
	for category, count := range summary.Distribution {
		entries = append(entries, entry{category: category, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].category < entries[j].category
	})

	total := len(summary.Results)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		pct := float64(e.count) / float64(total) * 100
		lines = append(lines, fmt.Sprintf("%s: %d patients (%.1f%%)", e.category, e.count, pct))
	}
	return lines
}
