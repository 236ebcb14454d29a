package adminctl

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// fetchDashboardSummary returns the raw summary, or nil when the endpoint
// answered successfully but without data.
func (c *Client) fetchDashboardSummary(ctx context.Context) (*RawSummary, error) {
	env, err := c.get(ctx, pathDashboardSummary, nil)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, nil
	}
	var raw RawSummary
	if err = json.Unmarshal(env.Data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding dashboard summary")
	}
	return &raw, nil
}

// fetchGraphData returns the raw graph payload, or nil when the endpoint
// answered successfully but without data.
func (c *Client) fetchGraphData(ctx context.Context) (*RawGraphPayload, error) {
	env, err := c.get(ctx, pathDashboardGraphs, nil)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, nil
	}
	var raw RawGraphPayload
	if err = json.Unmarshal(env.Data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding graph data")
	}
	return &raw, nil
}

// DashboardState owns the metrics dashboard's client-side state: the
// summary cards and the two chart series. Summary and graphs are fetched
// independently and keep independent error slices.
type DashboardState struct {
	mu     sync.Mutex
	client *Client

	summaryPhase Phase
	summary      *Summary
	summaryErr   string

	graphPhase Phase
	charts     ChartData
	graphErr   string
}

// NewDashboardState creates a DashboardState.
func NewDashboardState(client *Client) *DashboardState {
	return &DashboardState{
		client:       client,
		summaryPhase: PhaseIdle,
		graphPhase:   PhaseIdle,
	}
}

// FetchSummary loads and shapes the summary cards. A missing token fails
// locally; a server-side failure or an empty payload falls back to the
// placeholder dataset, since the backend does not have the endpoint
// consistently wired.
func (d *DashboardState) FetchSummary(ctx context.Context) error {
	d.mu.Lock()
	d.summaryPhase = PhaseLoading
	d.summaryErr = ""
	d.mu.Unlock()

	raw, err := d.client.fetchDashboardSummary(ctx)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			d.mu.Lock()
			d.summaryPhase = PhaseFailed
			d.summary = nil
			d.summaryErr = ErrorMessage(err)
			d.mu.Unlock()
			return err
		}
		log.WithError(err).Debug("dashboard summary endpoint unavailable, using placeholder data")
		raw = nil
	}
	if raw == nil {
		placeholder := placeholderSummary
		raw = &placeholder
	}

	shaped := ShapeSummary(*raw)
	d.mu.Lock()
	d.summaryPhase = PhaseLoaded
	d.summary = &shaped
	d.mu.Unlock()
	return nil
}

// FetchGraphs loads and shapes the chart series, with the same placeholder
// fallback as FetchSummary. An absent series yields a nil chart rather than
// an error.
func (d *DashboardState) FetchGraphs(ctx context.Context) error {
	d.mu.Lock()
	d.graphPhase = PhaseLoading
	d.graphErr = ""
	d.mu.Unlock()

	raw, err := d.client.fetchGraphData(ctx)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			d.mu.Lock()
			d.graphPhase = PhaseFailed
			d.charts = ChartData{}
			d.graphErr = ErrorMessage(err)
			d.mu.Unlock()
			return err
		}
		log.WithError(err).Debug("graph data endpoint unavailable, using placeholder data")
		raw = nil
	}
	if raw == nil {
		placeholder := placeholderGraph
		raw = &placeholder
	}

	charts := ShapeGraphPayload(raw)
	d.mu.Lock()
	d.graphPhase = PhaseLoaded
	d.charts = charts
	d.mu.Unlock()
	return nil
}

// Summary returns the shaped summary, or nil when none is loaded.
func (d *DashboardState) Summary() *Summary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summary
}

// Charts returns the shaped chart data.
func (d *DashboardState) Charts() ChartData {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.charts
}

// SummaryPhase returns the summary fetch phase.
func (d *DashboardState) SummaryPhase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summaryPhase
}

// GraphPhase returns the graph fetch phase.
func (d *DashboardState) GraphPhase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.graphPhase
}

// SummaryErr returns the stored summary error message, if any.
func (d *DashboardState) SummaryErr() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.summaryErr
}

// GraphErr returns the stored graph error message, if any.
func (d *DashboardState) GraphErr() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.graphErr
}
