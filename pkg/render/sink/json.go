package sink

import (
	"github.com/sosatree/sosatree/pkg/chart"
)

// RenderJSON exports the chart as a pretty-printed JSON document.
// This is the primary data interchange format, enabling:
//
//   - Integration with external visualization tools
//   - Caching computed charts for fast re-rendering
//   - Round-trip rendering via [chart.Unmarshal]
//
// It returns an error only if JSON marshaling fails.
func RenderJSON(c chart.Chart) ([]byte, error) {
	return chart.Marshal(c)
}
