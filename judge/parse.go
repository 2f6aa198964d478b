package judge

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/gokugml/membench/core"
)

// scorePatterns are tried in order against the raw judge response. Each must
// capture a whole integer; the [^0-9.] guards on both sides reject decimal
// scores so "9.5" and "9.5/10" are unparseable responses rather than
// truncated integers.
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)score\s*[:：]?\s*(\d{1,2})(?:[^0-9.]|$)`),
	regexp.MustCompile(`(?:^|[^0-9.])(\d{1,2})\s*/\s*10`),
	regexp.MustCompile(`^\s*(\d{1,2})(?:[^0-9.]|$)`),
}

// extractScore pulls the integer score out of a free-form judge response. A
// response that does not yield an integer in [0, core.ScoreScale] is an
// error, never clamped into range.
func extractScore(response string) (int, error) {
	for _, pattern := range scorePatterns {
		m := pattern.FindStringSubmatch(response)
		if m == nil {
			continue
		}
		score, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if score >= 0 && score <= core.ScoreScale {
			return score, nil
		}
	}
	return 0, fmt.Errorf("no integer score in [0,%d] found in judge response", core.ScoreScale)
}
