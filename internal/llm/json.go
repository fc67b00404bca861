package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// extractJSON strips Markdown code fences from model output. Models wrap
// JSON in ```json blocks despite instructions not to.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// decodeJSON unmarshals model output into v, first as-is and then after a
// repair pass for truncated or mildly malformed JSON.
func decodeJSON(raw string, v any) error {
	cleaned := extractJSON(raw)

	parseErr := json.Unmarshal([]byte(cleaned), v)
	if parseErr == nil {
		return nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(cleaned)
	if repairErr != nil {
		return fmt.Errorf("parse model response: %w", parseErr)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("parse repaired model response: %w", err)
	}
	return nil
}
