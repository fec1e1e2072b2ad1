package ocr

import (
	"github.com/joseph-ayodele/cardscan/internal/patterns"
)

// HeuristicConfidence scores how card-like decoded text looks, in [0,1].
// Each recognizable contact artifact adds to a 0.2 base.
func HeuristicConfidence(txt string) float32 {
	score := float32(0.2)
	if len(patterns.Email.FindAll(txt)) > 0 {
		score += 0.25
	}
	if len(patterns.Phone.FindAll(txt)) > 0 {
		score += 0.25
	}
	if len(patterns.URL.FindAll(txt)) > 0 {
		score += 0.1
	}
	if len(nonEmptyLines(txt)) >= 3 {
		score += 0.1
	}
	if len(txt) > 40 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
