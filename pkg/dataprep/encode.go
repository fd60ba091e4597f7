package dataprep

import (
	"errors"
	"fmt"

	"github.com/G-Villarinho/previsao-tempo-arvore-decisao/pkg/data"
)

// Raw free-text spellings of the rain column.
const (
	RainText   = "rain"
	NoRainText = "no rain"
)

// Boolean spellings written by the normalization step.
const (
	TrueText  = "True"
	FalseText = "False"
)

// ErrUnknownLabel is returned for a label cell outside the accepted spellings.
var ErrUnknownLabel = errors.New("unrecognized label")

// labelEncoding maps every accepted spelling of the label column to its
// class. Matching is case-sensitive.
var labelEncoding = map[string]data.Label{
	TrueText:   data.Rain,
	FalseText:  data.NoRain,
	"true":     data.Rain,
	"false":    data.NoRain,
	"1":        data.Rain,
	"0":        data.NoRain,
	RainText:   data.Rain,
	NoRainText: data.NoRain,
}

// ParseLabel encodes a label cell as Rain (1) or NoRain (0).
func ParseLabel(s string) (data.Label, error) {
	l, ok := labelEncoding[s]
	if !ok {
		return data.NoRain, fmt.Errorf("%w %q", ErrUnknownLabel, s)
	}
	return l, nil
}

// NormalizeRainText rewrites the free-text spelling of the rain column
// into its boolean form. Values that are neither spelling are returned
// unchanged with ok == false.
func NormalizeRainText(s string) (out string, ok bool) {
	switch s {
	case RainText:
		return TrueText, true
	case NoRainText:
		return FalseText, true
	}
	return s, false
}

// BoolText is the inverse of ParseLabel for the normalized spelling.
func BoolText(l data.Label) string {
	if l.Bool() {
		return TrueText
	}
	return FalseText
}

// FreeText returns the raw free-text spelling of l.
func FreeText(l data.Label) string {
	if l.Bool() {
		return RainText
	}
	return NoRainText
}
