package element

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/docmodel/internal/fuzzy"
)

// StyleKind is the semantic role recovered from a paragraph style name.
type StyleKind string

const (
	KindHeading StyleKind = "heading"
	KindCaption StyleKind = "caption"
)

// Intent is the paragraph role recovered from run colors.
type Intent string

const (
	IntentInstruction Intent = "instruction"
	IntentExample     Intent = "example"
)

// Classifier matches style names against the heading/caption vocabulary.
// The scorer and cutoff are explicit so callers can tune or pin them.
type Classifier struct {
	Score  fuzzy.Scorer
	Cutoff float64
}

// DefaultClassifier returns the production classifier: difflib-style ratio
// with a 0.7 similarity cutoff.
func DefaultClassifier() Classifier {
	return Classifier{Score: fuzzy.Ratio, Cutoff: 0.7}
}

var headingLevelPattern = regexp.MustCompile(`(?i)heading\s*(\d+)`)

// ClassifyStyleName returns the kind matched by the style name and, for
// headings, the numeric level embedded in it (0 when absent). An empty kind
// means the name matched neither vocabulary entry.
func (c Classifier) ClassifyStyleName(name string) (StyleKind, int) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", 0
	}

	if fuzzy.Match(c.Score, name, []string{"caption"}, c.Cutoff) {
		return KindCaption, 0
	}

	if fuzzy.Match(c.Score, name, []string{"heading"}, c.Cutoff) {
		level := 0
		if m := headingLevelPattern.FindStringSubmatch(name); m != nil {
			level, _ = strconv.Atoi(m[1])
		}
		return KindHeading, level
	}

	return "", 0
}

// Intent reference colors and thresholds. A paragraph classifies as
// instruction or example only when all its runs agree on a color within
// consensusThreshold and that color sits within intentThreshold of a
// reference.
const (
	instructionGreen   = "00B050"
	exampleRed         = "C9211E"
	intentThreshold    = 60.0
	consensusThreshold = 10.0
)

type rgb struct{ r, g, b int }

func hexToRGB(hex string) (rgb, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return rgb{}, false
	}
	r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return rgb{}, false
	}
	return rgb{int(r), int(g), int(b)}, true
}

func colorDistance(a, b rgb) float64 {
	dr := float64(a.r - b.r)
	dg := float64(a.g - b.g)
	db := float64(a.b - b.b)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
