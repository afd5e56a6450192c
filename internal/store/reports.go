package store

import (
	"context"

	"github.com/tally-dev/tally/internal/api"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/validate"
)

// Reports holds the last server-generated report.
type Reports struct {
	document[model.ReportData]
	remote
}

// NewReports creates the store.
func NewReports(client *api.Client, onUnauthorized func()) *Reports {
	return &Reports{remote: remote{client: client, onUnauthorized: onUnauthorized}}
}

// Generate asks the server for a report over the given range and filters.
func (s *Reports) Generate(ctx context.Context, params model.ReportParams) (*model.ReportData, error) {
	if err := validate.Report(params); err != nil {
		s.setErr(err)
		return nil, err
	}

	s.begin()
	var data model.ReportData
	if err := s.client.Post(ctx, "/reports", params, &data); err != nil {
		return nil, failDocument(&s.document, &s.remote, err)
	}
	s.set(&data)
	s.finish(nil)
	return &data, nil
}

// Dashboard holds the server's pre-aggregated overview.
type Dashboard struct {
	document[model.DashboardData]
	remote
}

// NewDashboard creates the store.
func NewDashboard(client *api.Client, onUnauthorized func()) *Dashboard {
	return &Dashboard{remote: remote{client: client, onUnauthorized: onUnauthorized}}
}

// Fetch refreshes the dashboard payload.
func (s *Dashboard) Fetch(ctx context.Context) (*model.DashboardData, error) {
	s.begin()
	var data model.DashboardData
	if err := s.client.Get(ctx, "/reports/dashboard", nil, &data); err != nil {
		return nil, failDocument(&s.document, &s.remote, err)
	}
	s.set(&data)
	s.finish(nil)
	return &data, nil
}
