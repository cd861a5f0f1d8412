package trajectory

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// SeriesProfile captures descriptive statistics for one proximity criterion.
// Purely diagnostic: it never influences scoring, but it travels with the run
// report so drifting upstream measurements are visible at a glance.
type SeriesProfile struct {
	Name     string  `json:"name"`
	N        int     `json:"n"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Skewness float64 `json:"skewness"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
}

// ProfileSeries computes the descriptive profile of a series.
func ProfileSeries(s Series) SeriesProfile {
	values := s.Values()

	profile := SeriesProfile{
		Name: s.Name,
		N:    len(values),
	}
	if len(values) == 0 {
		return profile
	}

	profile.Mean = stat.Mean(values, nil)
	profile.Skewness = stat.Skew(values, nil)
	if len(values) > 1 {
		profile.StdDev = stat.StdDev(values, nil)
	}

	profile.Min, _ = stats.Min(values)
	profile.Max, _ = stats.Max(values)
	profile.Median, _ = stats.Median(values)

	return profile
}

// ProfileAll profiles every series in declared order.
func ProfileAll(series []Series) []SeriesProfile {
	profiles := make([]SeriesProfile, len(series))
	for i, s := range series {
		profiles[i] = ProfileSeries(s)
	}
	return profiles
}
