package marketwatch

import (
	"fmt"
	"regexp"
	"strings"

	"marketview-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// the site tags every metric section with a class of the form
// "element element--table <metric> ...", extra tokens included, so the
// pattern is matched as a substring of the whole class attribute
var classPatterns = map[Metric]*regexp.Regexp{}

func init() {
	for _, metric := range []Metric{MetricPerformance, MetricGainers, MetricDecliners} {
		classPatterns[metric] = regexp.MustCompile(
			fmt.Sprintf(`element element--table (%s)`, regexp.QuoteMeta(string(metric))),
		)
	}
}

// locateMetric finds the unique container holding the given metric's data.
// Zero matches, multiple matches or an empty container all mean the site
// changed its layout out from under us.
func locateMetric(doc *goquery.Document, metric Metric) (*goquery.Selection, error) {
	sel := htmlutil.FindClassPattern(doc, "div", classPatterns[metric])

	switch sel.Length() {
	case 0:
		return nil, &StructureMismatchError{
			Metric: metric,
			Reason: "no element matched the expected class pattern",
		}
	case 1:
	default:
		return nil, &StructureMismatchError{
			Metric: metric,
			Reason: fmt.Sprintf("class pattern matched %d elements, want exactly 1", sel.Length()),
		}
	}

	if strings.TrimSpace(sel.Text()) == "" {
		return nil, &StructureMismatchError{
			Metric: metric,
			Reason: "matched element has no content",
		}
	}
	return sel, nil
}
