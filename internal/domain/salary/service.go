package salary

import "context"

type SalaryService interface {
	// Batch
	GenerateBatch(ctx context.Context, req GenerateBatchRequest) (GenerateBatchResponse, error)
	GenerateForCompany(ctx context.Context, companyID string, period Period, bypassDateCheck bool) (GenerateBatchResponse, error)
	ListByPeriod(ctx context.Context, req ListPeriodRequest) ([]MonthlySalaryResponse, error)

	// Individual
	GenerateIndividual(ctx context.Context, req GenerateIndividualRequest) (MonthlySalaryResponse, error)
	Get(ctx context.Context, id string) (MonthlySalaryResponse, error)

	// Lifecycle
	Approve(ctx context.Context, req ApproveRequest) (MonthlySalaryResponse, error)
	MarkPaid(ctx context.Context, req PayRequest) (MonthlySalaryResponse, error)

	// Profiles
	UpsertProfile(ctx context.Context, req UpsertProfileRequest) (ProfileResponse, error)
	GetProfile(ctx context.Context, employeeID string) (ProfileResponse, error)
}
