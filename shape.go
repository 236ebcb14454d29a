package adminctl

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Direction of a day-over-day change.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionNone Direction = "none"
)

// Change is the structured form of a server-provided delta string such as
// "8.50% Up from yesterday". Text keeps the original string for display.
type Change struct {
	Percentage float64
	Direction  Direction
	Text       string
}

var changePattern = regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?)%\s+(up|down|from)`)

// ParseChangeString parses the human-readable delta strings the dashboard
// summary endpoint produces. Anything that does not match degrades to a
// neutral zero-percent change carrying the original text; it never fails.
func ParseChangeString(s string) Change {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Change{Percentage: 0, Direction: DirectionNone, Text: "N/A"}
	}
	if m := changePattern.FindStringSubmatch(trimmed); m != nil {
		pct, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			direction := DirectionNone
			switch strings.ToLower(m[2]) {
			case "up":
				direction = DirectionUp
			case "down":
				direction = DirectionDown
			}
			return Change{Percentage: math.Abs(pct), Direction: direction, Text: s}
		}
	}
	if strings.HasPrefix(trimmed, "0.00%") {
		return Change{Percentage: 0, Direction: DirectionNone, Text: s}
	}
	log.WithField("value", s).Warn("could not parse change string")
	return Change{Percentage: 0, Direction: DirectionNone, Text: s}
}

// RawSummary is the dashboard summary payload as the API sends it, deltas
// still unparsed.
type RawSummary struct {
	ActiveUser       int     `json:"activeUser"`
	ActiveUserChange string  `json:"activeUserChange"`
	TotalBuyers      int     `json:"totalBuyers"`
	BuyersChange     string  `json:"buyersChange"`
	TotalSellers     int     `json:"totalSellers"`
	SellersChange    string  `json:"sellersChange"`
	TotalEarning     float64 `json:"totalEarning"`
	EarningChange    string  `json:"earningChange"`
}

// Summary is the display-ready dashboard summary with parsed deltas.
type Summary struct {
	ActiveUser       int
	ActiveUserChange Change
	TotalBuyers      int
	BuyersChange     Change
	TotalSellers     int
	SellersChange    Change
	TotalEarning     float64
	EarningChange    Change
}

// ShapeSummary parses every delta string of a raw summary.
func ShapeSummary(raw RawSummary) Summary {
	return Summary{
		ActiveUser:       raw.ActiveUser,
		ActiveUserChange: ParseChangeString(raw.ActiveUserChange),
		TotalBuyers:      raw.TotalBuyers,
		BuyersChange:     ParseChangeString(raw.BuyersChange),
		TotalSellers:     raw.TotalSellers,
		SellersChange:    ParseChangeString(raw.SellersChange),
		TotalEarning:     raw.TotalEarning,
		EarningChange:    ParseChangeString(raw.EarningChange),
	}
}

// RawDataset is one unshaped numeric series.
type RawDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// RawSeries is one unshaped labeled series collection.
type RawSeries struct {
	Labels   []string     `json:"labels"`
	Datasets []RawDataset `json:"datasets"`
}

// RawGraphPayload is the graph endpoint's payload: two independent series
// collections.
type RawGraphPayload struct {
	SalesDetails *RawSeries `json:"salesDetails"`
	Revenue      *RawSeries `json:"revenue"`
}

// Dataset is one render-ready series. Everything beyond Label and Data is a
// cosmetic render hint for the chart renderer and not behaviorally
// load-bearing.
type Dataset struct {
	Label                string    `json:"label"`
	Data                 []float64 `json:"data"`
	BorderColor          string    `json:"borderColor,omitempty"`
	BackgroundColor      string    `json:"backgroundColor,omitempty"`
	Fill                 any       `json:"fill,omitempty"`
	Tension              float64   `json:"tension,omitempty"`
	PointRadius          float64   `json:"pointRadius"`
	PointHoverRadius     float64   `json:"pointHoverRadius,omitempty"`
	PointBackgroundColor string    `json:"pointBackgroundColor,omitempty"`
	PointBorderColor     string    `json:"pointBorderColor,omitempty"`
}

// Series is one render-ready labeled series collection.
type Series struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// ChartData is what the chart renderer consumes. A nil series means the
// caller should render an empty state for that chart.
type ChartData struct {
	SalesDetails *Series
	Revenue      *Series
}

const (
	salesLineColor = "#4661F0"
	salesFillColor = "rgba(70, 97, 240, 0.1)"

	revenueSalesFill  = "rgba(149, 117, 205, 0.5)"
	revenueProfitFill = "rgba(255, 110, 64, 0.5)"
)

// shapeSalesSeries attaches the sales chart's line/point styling.
func shapeSalesSeries(raw *RawSeries) *Series {
	if raw == nil {
		return nil
	}
	shaped := &Series{Labels: raw.Labels}
	for _, ds := range raw.Datasets {
		shaped.Datasets = append(
			shaped.Datasets, Dataset{
				Label:                ds.Label,
				Data:                 ds.Data,
				BorderColor:          salesLineColor,
				BackgroundColor:      salesFillColor,
				Fill:                 true,
				Tension:              0.4,
				PointRadius:          3,
				PointHoverRadius:     5,
				PointBackgroundColor: salesLineColor,
				PointBorderColor:     "#fff",
			},
		)
	}
	return shaped
}

// shapeRevenueSeries attaches the stacked-area styling of the revenue
// chart; its two datasets (sales and profit) get distinct fills.
func shapeRevenueSeries(raw *RawSeries) *Series {
	if raw == nil {
		return nil
	}
	fills := []string{revenueSalesFill, revenueProfitFill}
	shaped := &Series{Labels: raw.Labels}
	for i, ds := range raw.Datasets {
		fill := fills[i%len(fills)]
		shaped.Datasets = append(
			shaped.Datasets, Dataset{
				Label:           ds.Label,
				Data:            ds.Data,
				BorderColor:     "transparent",
				BackgroundColor: fill,
				Fill:            "start",
				Tension:         0.4,
				PointRadius:     0,
			},
		)
	}
	return shaped
}

// ShapeGraphPayload maps the raw graph payload into render-ready chart
// data. Either series may be absent; the corresponding output is nil
// instead of an error.
func ShapeGraphPayload(raw *RawGraphPayload) ChartData {
	if raw == nil {
		return ChartData{}
	}
	return ChartData{
		SalesDetails: shapeSalesSeries(raw.SalesDetails),
		Revenue:      shapeRevenueSeries(raw.Revenue),
	}
}
