package incidents

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ImpactLevel is the severity classification. It is stored as text so that
// numeric levels and refined sub-levels like "3b" share one column.
type ImpactLevel string

// impactOrder is the explicit ranking; a bare "3" ranks as "3a".
var impactOrder = []ImpactLevel{"1", "2", "3a", "3b", "4", "5"}

// HighImpactThreshold is the level from which a report counts as high severity.
const HighImpactThreshold ImpactLevel = "3b"

// UnmarshalJSON accepts both "3b" and 3.
func (l *ImpactLevel) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*l = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = ImpactLevel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("impact_level must be text or number: %w", err)
	}
	*l = ImpactLevel(n.String())
	return nil
}

func (l ImpactLevel) normalized() ImpactLevel {
	v := ImpactLevel(strings.ToLower(strings.TrimSpace(string(l))))
	if v == "3" {
		return "3a"
	}
	return v
}

// Rank is the position in the ordered vocabulary, or -1 for unknown levels.
func (l ImpactLevel) Rank() int {
	n := l.normalized()
	for i, v := range impactOrder {
		if v == n {
			return i
		}
	}
	return -1
}

// AtLeast reports whether l ranks at or above floor. Unknown levels never do.
func (l ImpactLevel) AtLeast(floor ImpactLevel) bool {
	r := l.Rank()
	return r >= 0 && r >= floor.Rank()
}
