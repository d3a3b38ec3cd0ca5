package leave

import (
	"context"
	"time"

	"hrsys/internal/domain/apperr"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// Submit validates a new leave request and persists it in pending
// state. For annual leave the year's approved total is checked against
// the cap; the store re-validates under lock at insert time. Date order
// and overlap with existing requests are not checked.
func (s *Service) Submit(ctx context.Context, employeeID int64, leaveType string, start, end time.Time, reason string) (*Request, error) {
	exists, err := s.Store.EmployeeExists(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("employee", employeeID)
	}

	req := Request{
		EmployeeID: employeeID,
		Type:       leaveType,
		Status:     StatusPending,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  DaysInclusive(start, end),
		Reason:     reason,
	}

	if leaveType == TypeAnnual {
		used, err := s.Store.SumApprovedDays(ctx, employeeID, TypeAnnual, YearOf(start))
		if err != nil {
			return nil, err
		}
		if used+req.TotalDays > AnnualCapDays {
			return nil, apperr.LimitExceeded(used, AnnualCapDays)
		}
		return s.Store.InsertAnnualChecked(ctx, req, AnnualCapDays)
	}

	return s.Store.InsertRequest(ctx, req)
}

// EntitlementUsed reports the approved days an employee has consumed in
// a category within a calendar year. Pending, rejected and cancelled
// requests never count.
func (s *Service) EntitlementUsed(ctx context.Context, employeeID int64, leaveType string, year int) (int, error) {
	return s.Store.SumApprovedDays(ctx, employeeID, leaveType, year)
}

// Approve moves a pending request to approved and records the approver.
// Approved, rejected and cancelled are terminal for approval.
func (s *Service) Approve(ctx context.Context, leaveID, approverID int64) (*Request, error) {
	req, err := s.Store.GetRequest(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, apperr.InvalidTransition("leave request", leaveID, req.Status)
	}
	return s.Store.SetApproved(ctx, leaveID, approverID, time.Now().UTC())
}

// Reject marks a request rejected. Unlike Approve there is no
// current-state precondition; any request, including an approved one,
// can be rejected.
func (s *Service) Reject(ctx context.Context, leaveID int64) (*Request, error) {
	if _, err := s.Store.GetRequest(ctx, leaveID); err != nil {
		return nil, err
	}
	return s.Store.SetRejected(ctx, leaveID, time.Now().UTC())
}

// ListPending returns pending requests oldest first so the earliest
// submissions are reviewed first.
func (s *Service) ListPending(ctx context.Context) ([]Request, error) {
	return s.Store.ListPending(ctx)
}

// ListForEmployee returns all of one employee's requests newest first.
func (s *Service) ListForEmployee(ctx context.Context, employeeID int64) ([]Request, error) {
	return s.Store.ListForEmployee(ctx, employeeID)
}
