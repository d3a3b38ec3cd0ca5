package leave

import (
	"context"
	"sort"
	"testing"
	"time"

	"hrsys/internal/domain/apperr"
)

type fakeStore struct {
	employees map[int64]bool
	requests  map[int64]*Request
	nextID    int64
	clock     time.Time
}

func newFakeStore(employeeIDs ...int64) *fakeStore {
	f := &fakeStore{
		employees: map[int64]bool{},
		requests:  map[int64]*Request{},
		clock:     time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	for _, id := range employeeIDs {
		f.employees[id] = true
	}
	return f
}

func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeStore) EmployeeExists(_ context.Context, employeeID int64) (bool, error) {
	return f.employees[employeeID], nil
}

func (f *fakeStore) SumApprovedDays(_ context.Context, employeeID int64, leaveType string, year int) (int, error) {
	total := 0
	for _, req := range f.requests {
		if req.EmployeeID == employeeID && req.Type == leaveType && req.Status == StatusApproved && YearOf(req.StartDate) == year {
			total += req.TotalDays
		}
	}
	return total, nil
}

func (f *fakeStore) insert(req Request) *Request {
	f.nextID++
	req.ID = f.nextID
	req.CreatedAt = f.tick()
	req.UpdatedAt = req.CreatedAt
	f.requests[req.ID] = &req
	return &req
}

func (f *fakeStore) InsertRequest(_ context.Context, req Request) (*Request, error) {
	return f.insert(req), nil
}

func (f *fakeStore) InsertAnnualChecked(ctx context.Context, req Request, capDays int) (*Request, error) {
	used, _ := f.SumApprovedDays(ctx, req.EmployeeID, req.Type, YearOf(req.StartDate))
	if used+req.TotalDays > capDays {
		return nil, apperr.LimitExceeded(used, capDays)
	}
	return f.insert(req), nil
}

func (f *fakeStore) GetRequest(_ context.Context, id int64) (*Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperr.NotFound("leave request", id)
	}
	copied := *req
	return &copied, nil
}

func (f *fakeStore) SetApproved(_ context.Context, id, approverID int64, at time.Time) (*Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperr.NotFound("leave request", id)
	}
	req.Status = StatusApproved
	req.ApprovedBy = &approverID
	req.UpdatedAt = at
	copied := *req
	return &copied, nil
}

func (f *fakeStore) SetRejected(_ context.Context, id int64, at time.Time) (*Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, apperr.NotFound("leave request", id)
	}
	req.Status = StatusRejected
	req.UpdatedAt = at
	copied := *req
	return &copied, nil
}

func (f *fakeStore) ListPending(_ context.Context) ([]Request, error) {
	var out []Request
	for _, req := range f.requests {
		if req.Status == StatusPending {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStore) ListForEmployee(_ context.Context, employeeID int64) ([]Request, error) {
	var out []Request
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSubmitUnknownEmployee(t *testing.T) {
	service := NewService(newFakeStore())

	_, err := service.Submit(context.Background(), 42, TypeSick, day(2025, 7, 1), day(2025, 7, 2), "flu")
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestSubmitComputesInclusiveDays(t *testing.T) {
	store := newFakeStore(1)
	service := NewService(store)

	req, err := service.Submit(context.Background(), 1, TypeSick, day(2025, 7, 1), day(2025, 7, 1), "flu")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if req.TotalDays != 1 {
		t.Fatalf("expected 1 day for same-day request, got %d", req.TotalDays)
	}
	if req.Status != StatusPending {
		t.Fatalf("expected pending status, got %q", req.Status)
	}
}

func TestAnnualCapFreshYear(t *testing.T) {
	store := newFakeStore(1)
	service := NewService(store)

	// Exactly 30 days fits.
	if _, err := service.Submit(context.Background(), 1, TypeAnnual, day(2025, 7, 1), day(2025, 7, 30), "summer"); err != nil {
		t.Fatalf("30-day request should succeed: %v", err)
	}

	// 31 days in a fresh year does not.
	store = newFakeStore(1)
	service = NewService(store)
	_, err := service.Submit(context.Background(), 1, TypeAnnual, day(2025, 7, 1), day(2025, 7, 31), "summer")
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind != apperr.KindBusinessRule {
		t.Fatalf("expected BusinessRuleViolation, got %v", err)
	}
	if appErr.Used != 0 || appErr.Cap != AnnualCapDays {
		t.Fatalf("expected used=0 cap=%d, got used=%d cap=%d", AnnualCapDays, appErr.Used, appErr.Cap)
	}
}

func TestAnnualCapWithPriorApprovedDays(t *testing.T) {
	store := newFakeStore(1)
	service := NewService(store)

	prior, err := service.Submit(context.Background(), 1, TypeAnnual, day(2025, 2, 1), day(2025, 2, 25), "winter")
	if err != nil {
		t.Fatalf("prior submit failed: %v", err)
	}
	if _, err := service.Approve(context.Background(), prior.ID, 9); err != nil {
		t.Fatalf("prior approve failed: %v", err)
	}

	// 25 approved + 5 = 30, allowed.
	if _, err := service.Submit(context.Background(), 1, TypeAnnual, day(2025, 8, 1), day(2025, 8, 5), "break"); err != nil {
		t.Fatalf("expected 5 more days to fit: %v", err)
	}

	// 25 approved + 6 exceeds the cap.
	_, err = service.Submit(context.Background(), 1, TypeAnnual, day(2025, 9, 1), day(2025, 9, 6), "break")
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind != apperr.KindBusinessRule {
		t.Fatalf("expected BusinessRuleViolation, got %v", err)
	}
	if appErr.Used != 25 || appErr.Cap != AnnualCapDays {
		t.Fatalf("expected used=25 cap=%d, got used=%d cap=%d", AnnualCapDays, appErr.Used, appErr.Cap)
	}
}

func TestPendingRequestsDoNotConsumeEntitlement(t *testing.T) {
	store := newFakeStore(1)
	service := NewService(store)

	if _, err := service.Submit(context.Background(), 1, TypeAnnual, day(2025, 3, 1), day(2025, 3, 10), "pending"); err != nil {
		t.Fatalf("pending submit failed: %v", err)
	}

	used, err := service.EntitlementUsed(context.Background(), 1, TypeAnnual, 2025)
	if err != nil {
		t.Fatalf("entitlement lookup failed: %v", err)
	}
	if used != 0 {
		t.Fatalf("pending request must not count, got used=%d", used)
	}

	// The full cap remains available.
	if _, err := service.Submit(context.Background(), 1, TypeAnnual, day(2025, 5, 1), day(2025, 5, 30), "still fits"); err != nil {
		t.Fatalf("expected full cap available while request is pending: %v", err)
	}
}

func TestOtherCategoriesAreUncapped(t *testing.T) {
	store := newFakeStore(1)
	service := NewService(store)

	req, err := service.Submit(context.Background(), 1, TypeSick, day(2025, 1, 1), day(2025, 3, 31), "long illness")
	if err != nil {
		t.Fatalf("sick leave should not be capped: %v", err)
	}
	if req.TotalDays != 90 {
		t.Fatalf("expected 90 days, got %d", req.TotalDays)
	}
}

func TestApproveRequiresPending(t *testing.T) {
	store := newFakeStore(1)
	service := NewService(store)

	req, err := service.Submit(context.Background(), 1, TypeSick, day(2025, 7, 1), day(2025, 7, 2), "flu")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approved, err := service.Approve(context.Background(), req.ID, 9)
	if err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if approved.Status != StatusApproved || approved.ApprovedBy == nil || *approved.ApprovedBy != 9 {
		t.Fatalf("expected approved with approver 9, got %+v", approved)
	}

	_, err = service.Approve(context.Background(), req.ID, 9)
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind != apperr.KindInvalidTransition {
		t.Fatalf("expected InvalidTransition for approved request, got %v", err)
	}
	if appErr.State != StatusApproved {
		t.Fatalf("expected current state approved, got %q", appErr.State)
	}
}

func TestApproveRejectedRequestFails(t *testing.T) {
	store := newFakeStore(1)
	service := NewService(store)

	req, err := service.Submit(context.Background(), 1, TypeSick, day(2025, 7, 1), day(2025, 7, 2), "flu")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := service.Reject(context.Background(), req.ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	_, err = service.Approve(context.Background(), req.ID, 9)
	if apperr.KindOf(err) != apperr.KindInvalidTransition {
		t.Fatalf("expected InvalidTransition for rejected request, got %v", err)
	}
}

func TestRejectHasNoStatePrecondition(t *testing.T) {
	store := newFakeStore(1)
	service := NewService(store)

	req, err := service.Submit(context.Background(), 1, TypeSick, day(2025, 7, 1), day(2025, 7, 2), "flu")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := service.Approve(context.Background(), req.ID, 9); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	// An already-approved request can still be rejected.
	rejected, err := service.Reject(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("reject of approved request failed: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Fatalf("expected rejected status, got %q", rejected.Status)
	}
}

func TestRejectUnknownRequest(t *testing.T) {
	service := NewService(newFakeStore(1))

	_, err := service.Reject(context.Background(), 404)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestListOrdering(t *testing.T) {
	store := newFakeStore(1, 2)
	service := NewService(store)

	first, _ := service.Submit(context.Background(), 1, TypeSick, day(2025, 7, 1), day(2025, 7, 1), "first")
	second, _ := service.Submit(context.Background(), 2, TypeSick, day(2025, 7, 2), day(2025, 7, 2), "second")
	third, _ := service.Submit(context.Background(), 1, TypeSick, day(2025, 7, 3), day(2025, 7, 3), "third")

	pending, err := service.ListPending(context.Background())
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 3 || pending[0].ID != first.ID || pending[1].ID != second.ID || pending[2].ID != third.ID {
		t.Fatalf("expected oldest-first pending order, got %+v", pending)
	}

	mine, err := service.ListForEmployee(context.Background(), 1)
	if err != nil {
		t.Fatalf("list for employee failed: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != third.ID || mine[1].ID != first.ID {
		t.Fatalf("expected newest-first employee order, got %+v", mine)
	}
}
