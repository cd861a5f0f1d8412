package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"framepick/ports"
)

// Text renders the scalar run report for terminal display. DMCS and scores
// are rounded to 3 decimal digits for display only; stored values keep full
// precision.
func Text(rec ports.ReportRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run:             %s\n", rec.RunID)
	fmt.Fprintf(&b, "Fingerprint:     %s\n", rec.Fingerprint)
	fmt.Fprintf(&b, "Series:          %s\n", strings.Join(rec.SeriesNames, ", "))
	fmt.Fprintf(&b, "Aligned frames:  %d\n", rec.FrameCount)
	fmt.Fprintf(&b, "Policy:          %s\n", rec.Policy)
	fmt.Fprintf(&b, "Best frame:      %d (composite %.3f)\n", rec.BestFrame, rec.BestScore)
	fmt.Fprintf(&b, "DMCS:            %.3f\n", rec.DMCS)

	if rec.ClusterID != nil {
		fmt.Fprintf(&b, "Cluster:         %d\n", *rec.ClusterID)
	} else {
		fmt.Fprintf(&b, "Cluster:         none\n")
	}
	if rec.DominantClusterID != nil {
		fmt.Fprintf(&b, "Dominant:        %d (population %d)\n", *rec.DominantClusterID, rec.DominantPopulation)
	}
	fmt.Fprintf(&b, "In dominant:     %t\n", rec.InDominantCluster)

	for _, w := range rec.Warnings {
		fmt.Fprintf(&b, "Warning:         %s\n", w)
	}

	return b.String()
}

// Markdown renders the run report as a Markdown document.
func Markdown(rec ports.ReportRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Frame selection report\n\n")
	fmt.Fprintf(&b, "- **Run**: `%s`\n", rec.RunID)
	fmt.Fprintf(&b, "- **Fingerprint**: `%s`\n", rec.Fingerprint)
	fmt.Fprintf(&b, "- **Series**: %s\n", strings.Join(rec.SeriesNames, ", "))
	fmt.Fprintf(&b, "- **Aligned frames**: %d\n", rec.FrameCount)
	fmt.Fprintf(&b, "- **Policy**: %s\n\n", rec.Policy)

	fmt.Fprintf(&b, "## Selection\n\n")
	fmt.Fprintf(&b, "| Best frame | Composite score | DMCS |\n")
	fmt.Fprintf(&b, "|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %.3f | %.3f |\n\n", rec.BestFrame, rec.BestScore, rec.DMCS)

	fmt.Fprintf(&b, "## Cluster reconciliation\n\n")
	if rec.ClusterID != nil {
		fmt.Fprintf(&b, "Best frame belongs to cluster **%d**.\n", *rec.ClusterID)
	} else {
		fmt.Fprintf(&b, "Best frame belongs to **no cluster**.\n")
	}
	if rec.DominantClusterID != nil {
		fmt.Fprintf(&b, "Dominant cluster is **%d**.\n", *rec.DominantClusterID)
	}
	fmt.Fprintf(&b, "Score-based and population-based selection **%s**.\n\n", agreement(rec.InDominantCluster))

	if len(rec.Profiles) > 0 {
		fmt.Fprintf(&b, "## Criterion profiles\n\n")
		fmt.Fprintf(&b, "| Series | N | Mean | StdDev | Min | Max | Median | Skewness |\n")
		fmt.Fprintf(&b, "|---|---|---|---|---|---|---|---|\n")
		for _, p := range rec.Profiles {
			fmt.Fprintf(&b, "| %s | %d | %.3f | %.3f | %.3f | %.3f | %.3f | %.3f |\n",
				p.Name, p.N, p.Mean, p.StdDev, p.Min, p.Max, p.Median, p.Skewness)
		}
		fmt.Fprintf(&b, "\n")
	}

	if len(rec.Warnings) > 0 {
		fmt.Fprintf(&b, "## Warnings\n\n")
		for _, w := range rec.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}

// HTML renders the Markdown report to HTML for the API surface.
func HTML(rec ports.ReportRecord) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(Markdown(rec)), p, renderer)
}

func agreement(inDominant bool) string {
	if inDominant {
		return "agree"
	}
	return "disagree"
}
