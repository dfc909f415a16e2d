package tools

import (
	"fmt"
	"strings"
)

// CSVParams describes a data analysis request over raw CSV content.
type CSVParams struct {
	CSVData  string
	Question string
}

const csvAnalystContract = `You are an expert data analyst.

When analyzing CSV data:
1. Examine the structure and columns of the data
2. Provide clear, actionable insights with specific numbers and patterns
3. Always cite the data when making claims
4. Calculate statistics accurately from the provided dataset`

// CSVPrompt renders the instruction text for analyzing CSV data.
func CSVPrompt(p CSVParams) string {
	var b strings.Builder
	b.WriteString(csvAnalystContract)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "CSV Data:\n%s\n\nQuestion: %s\n", p.CSVData, p.Question)
	return b.String()
}

// CSVSummary reports basic shape information about the submitted dataset.
type CSVSummary struct {
	TotalRows int      `json:"total_rows"`
	Columns   []string `json:"columns"`
}

// SummarizeCSV derives row count and column names from raw CSV content.
// The first non-empty line is treated as the header.
func SummarizeCSV(data string) CSVSummary {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return CSVSummary{Columns: []string{}}
	}

	columns := strings.Split(lines[0], ",")
	for i, c := range columns {
		columns[i] = strings.TrimSpace(c)
	}
	return CSVSummary{
		TotalRows: len(lines) - 1,
		Columns:   columns,
	}
}
