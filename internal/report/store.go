// internal/report/store.go
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spiralogic/halo/internal/harness"
)

// SaveRun writes the run's results as JSONL and its summary as indented JSON
// under dir, named by run ID. It returns both paths.
func SaveRun(dir string, output *harness.RunOutput) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("error creating results directory: %w", err)
	}

	resultsPath := filepath.Join(dir, output.Summary.RunID+".results.jsonl")
	file, err := os.OpenFile(resultsPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", "", fmt.Errorf("error opening results file: %w", err)
	}
	encoder := json.NewEncoder(file)
	for _, result := range output.Results {
		if err := encoder.Encode(result); err != nil {
			file.Close()
			return "", "", fmt.Errorf("error writing results: %w", err)
		}
	}
	if err := file.Close(); err != nil {
		return "", "", err
	}

	summaryPath := filepath.Join(dir, output.Summary.RunID+".summary.json")
	data, err := json.MarshalIndent(output.Summary, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("error encoding summary: %w", err)
	}
	if err := os.WriteFile(summaryPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("error writing summary: %w", err)
	}
	return resultsPath, summaryPath, nil
}

// LoadResults reads a results JSONL file back into memory, chiefly for
// replaying a stored run through grading and aggregation.
func LoadResults(path string) ([]harness.TestResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening results file: %w", err)
	}
	defer file.Close()

	var results []harness.TestResult
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var result harness.TestResult
		if err := json.Unmarshal(line, &result); err != nil {
			return nil, fmt.Errorf("error parsing results line: %w", err)
		}
		results = append(results, result)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading results file: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("results file %q contains no results", path)
	}
	return results, nil
}
