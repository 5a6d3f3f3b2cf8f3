package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a corpus file and validates every insight in it. Path "" returns
// the built-in dataset.
func Load(path string) ([]Insight, error) {
	if path == "" {
		return DefaultInsights(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	var insights []Insight
	if err := json.Unmarshal(data, &insights); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file %s: %w", path, err)
	}
	if len(insights) == 0 {
		return nil, fmt.Errorf("corpus file %s contains no insights", path)
	}
	for i := range insights {
		if err := insights[i].Validate(); err != nil {
			return nil, fmt.Errorf("corpus file %s: insight %d (%s): %w", path, i, insights[i].Title, err)
		}
	}
	return insights, nil
}
