package reports

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) Usage(ctx context.Context, year int) ([]UsageRow, error) {
	return s.Store.UsageByType(ctx, year)
}

func (s *Service) Export(ctx context.Context, year int) ([]ExportRow, error) {
	return s.Store.ExportRows(ctx, year)
}

// Summary collects the dashboard counters.
func (s *Service) Summary(ctx context.Context) (map[string]any, error) {
	employees, err := s.Store.ActiveEmployeeCount(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.Store.DepartmentCount(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.Store.PendingLeaveCount(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"activeEmployees":      employees,
		"departments":          departments,
		"pendingLeaveRequests": pending,
	}, nil
}
