package worksettings

import "context"

type WorkSettingsRepository interface {
	// GetByCompanyID returns ErrWorkSettingsNotFound when the company has no row.
	GetByCompanyID(ctx context.Context, companyID string) (WorkSettings, error)
	Upsert(ctx context.Context, settings WorkSettings) (WorkSettings, error)
}
