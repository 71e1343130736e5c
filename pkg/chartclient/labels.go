package chartclient

import (
	"time"
	"unicode/utf8"

	"go-hr-dashboard-backend/internal/domain"
)

// DefaultTitleLength is how many runes of a job title fit on a bar label.
const DefaultTitleLength = 20

// Point is one labelled value of a chart series.
type Point struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// MonthLabel turns a YYYY-MM key into its short month name. Keys that do not
// parse are returned unchanged.
func MonthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("Jan")
}

// TruncateLabel shortens title to n runes followed by "...".
func TruncateLabel(title string, n int) string {
	if n < 0 || utf8.RuneCountInString(title) <= n {
		return title
	}
	return string([]rune(title)[:n]) + "..."
}

func MonthlySeries(rows []domain.MonthlyCount) []Point {
	points := make([]Point, 0, len(rows))
	for _, r := range rows {
		points = append(points, Point{Label: MonthLabel(r.Month), Value: r.Count})
	}
	return points
}

func JobSeries(rows []domain.JobApplicationCount, titleLength int) []Point {
	points := make([]Point, 0, len(rows))
	for _, r := range rows {
		points = append(points, Point{Label: TruncateLabel(r.JobTitle, titleLength), Value: r.Count})
	}
	return points
}
