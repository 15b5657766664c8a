package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/relief-grid/api-go/models"
)

// reportGrammar matches the fixed report format, e.g.
// "REPORT: FIRE at CITY CENTER radius 3km severity MEDIUM".
var reportGrammar = regexp.MustCompile(
	`(?i)^REPORT:\s*(?P<type>[A-Za-z0-9_]+)\s+at\s+(?P<location>.+?)\s+radius\s+(?P<radius>\d+(?:\.\d+)?)(?P<unit>km|m)\s+severity\s+(?P<severity>LOW|MEDIUM|HIGH)\s*$`,
)

// HelpTextPlaceholder is stored when a HELP message carries no trailing text.
const HelpTextPlaceholder = "no text"

// ReportDetails is the parsed payload of a well-formed REPORT message.
type ReportDetails struct {
	Type         string
	LocationText string
	RadiusM      int
	Severity     models.Severity
}

// Intent is the classification of one inbound text. Report is non-nil
// only when Kind is InboundReport; HelpText is set only for InboundHelp.
type Intent struct {
	Kind     models.InboundKind
	Report   *ReportDetails
	HelpText string
}

// Classify parses raw inbound text into a typed intent. It never fails:
// a REPORT-prefixed message that does not match the grammar degrades to
// General, since the SMS channel is lossy and senders type by hand.
func Classify(text string) Intent {
	original := strings.TrimSpace(text)
	upper := strings.ToUpper(original)

	if strings.HasPrefix(upper, "REPORT:") {
		m := reportGrammar.FindStringSubmatch(original)
		if m == nil {
			return Intent{Kind: models.InboundGeneral}
		}
		radius, err := strconv.ParseFloat(m[reportGrammar.SubexpIndex("radius")], 64)
		if err != nil {
			return Intent{Kind: models.InboundGeneral}
		}
		meters := radius
		if strings.EqualFold(m[reportGrammar.SubexpIndex("unit")], "km") {
			meters = radius * 1000
		}
		// A radius past any plausible geofence would overflow the int
		// conversion and go negative; treat it as grammar junk.
		if meters > math.MaxInt32 {
			return Intent{Kind: models.InboundGeneral}
		}
		radiusM := int(meters)
		return Intent{
			Kind: models.InboundReport,
			Report: &ReportDetails{
				Type:         strings.ToUpper(m[reportGrammar.SubexpIndex("type")]),
				LocationText: strings.TrimSpace(m[reportGrammar.SubexpIndex("location")]),
				RadiusM:      radiusM,
				Severity:     models.Severity(strings.ToUpper(m[reportGrammar.SubexpIndex("severity")])),
			},
		}
	}

	if strings.HasPrefix(upper, "HELP") {
		rest := strings.TrimSpace(original[4:])
		if rest == "" {
			rest = HelpTextPlaceholder
		}
		return Intent{Kind: models.InboundHelp, HelpText: rest}
	}

	if strings.HasPrefix(upper, "SAFE") {
		return Intent{Kind: models.InboundSafe}
	}

	return Intent{Kind: models.InboundGeneral}
}
