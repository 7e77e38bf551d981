package http

import (
	"context"

	"sgpulse/internal/services"
	"sgpulse/pkg/contracts/domain"
)

// JobsServiceInterface defines the analytics operations the jobs handler
// depends on.
type JobsServiceInterface interface {
	Reload(ctx context.Context) (*domain.Table, error)
	Summary(ctx context.Context, filter domain.Filter) (*services.SummaryResponse, error)
	Categories(ctx context.Context, filter domain.Filter) (*services.CategoriesResponse, error)
	Positions(ctx context.Context, filter domain.Filter) (*services.PositionsResponse, error)
	Experience(ctx context.Context, filter domain.Filter) (*services.ExperienceResponse, error)
	Insights(ctx context.Context, filter domain.Filter) (*services.InsightsResponse, error)
	Distribution(ctx context.Context, filter domain.Filter, bins int) (*services.DistributionResponse, error)
	FilterOptions(ctx context.Context) (*services.FilterOptionsResponse, error)
	Postings(ctx context.Context, filter domain.Filter) ([]domain.JobPosting, error)
}
