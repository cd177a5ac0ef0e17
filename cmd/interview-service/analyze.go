package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/SAP-F-2025/interview-service/internal/analysis"
	"github.com/SAP-F-2025/interview-service/internal/models"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <results.json>",
	Short: "Print the aggregate analysis of a stored result sequence",
	Long: "Reads a JSON array of scored answers, or a JSON report containing a \"results\" array, " +
		"and prints the aggregate analysis as JSON.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return analyze(data, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func analyze(data []byte, w io.Writer) error {
	results, err := decodeResults(data)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(analysis.NewEngine().Analyze(results))
}

// decodeResults accepts a bare result array or a saved report.
func decodeResults(data []byte) ([]models.ResultRecord, error) {
	var results []models.ResultRecord
	if err := json.Unmarshal(data, &results); err == nil {
		return results, nil
	}

	var doc struct {
		Results *[]models.ResultRecord `json:"results"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	if doc.Results == nil {
		return nil, fmt.Errorf("decoding results: no results array found")
	}
	return *doc.Results, nil
}
