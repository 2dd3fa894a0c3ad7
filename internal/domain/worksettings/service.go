package worksettings

import "context"

type WorkSettingsService interface {
	// Get returns the stored settings or the defaults.
	Get(ctx context.Context) (WorkSettingsResponse, error)
	Update(ctx context.Context, req UpdateWorkSettingsRequest) (WorkSettingsResponse, error)
	// Load is the raw read used by calculations for an explicit company.
	Load(ctx context.Context, companyID string) (WorkSettings, error)
}
