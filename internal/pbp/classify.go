package pbp

import (
	"regexp"
	"strings"
)

// ESPN play descriptions follow a small set of templates:
//
//	"Kyle Guy made Three Point Jumper. Assisted by Ty Jerome."
//	"De'Andre Hunter missed Layup."
//	"Jack Salt made Free Throw 1 of 2."
//
// The shooter is everything before the made/missed verb.
var shotPattern = regexp.MustCompile(`^([A-Za-z.'\- ]+?) (made|missed) (.+?)\.`)

// ClassifyShot inspects a play description and reports whether it is a shot
// attempt, whether it went in, and who took it. Non-shot plays (rebounds,
// turnovers, fouls, timeouts) return a zero Shot.
func ClassifyShot(description string) Shot {
	m := shotPattern.FindStringSubmatch(description)
	if m == nil {
		return Shot{}
	}

	shot := Shot{
		Made:    m[2] == "made",
		Shooter: strings.TrimSpace(m[1]),
	}

	kind := m[3]
	switch {
	case strings.Contains(kind, "Free Throw"):
		shot.FreeThrow = true
	default:
		shot.Attempt = true
		shot.ThreePt = strings.Contains(kind, "Three Point")
	}

	return shot
}

// Classify annotates every play in the slice with its shot classification.
func Classify(plays []Play) {
	for i := range plays {
		plays[i].Shot = ClassifyShot(plays[i].Description)
	}
}
