// Package sentiment tags free text with a coarse polarity label.
// It wraps a lexicon-based analyzer; classification never fails.
package sentiment

import (
	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

// Label is the discrete sentiment attached to every chat turn.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Classify scores text with the VADER lexicon and maps the compound
// polarity to a label. Empty or sentiment-free text is neutral.
func Classify(text string) Label {
	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	score := sentitext.PolarityScore(parsed)
	return FromPolarity(score.Compound)
}

// FromPolarity maps a polarity score in [-1, 1] to a label by sign.
func FromPolarity(polarity float64) Label {
	switch {
	case polarity > 0:
		return Positive
	case polarity < 0:
		return Negative
	default:
		return Neutral
	}
}
