package core

import (
	"context"
	"testing"

	"hrsys/internal/domain/apperr"
)

type fakeStore struct {
	employees   map[int64]*Employee
	departments map[int64]*Department
	positions   map[int64]*JobPosition
	contracts   map[int64]*Contract
	nextID      int64

	// conflictInserts makes the first N employee inserts fail with
	// Conflict while still consuming a key, mimicking a concurrent
	// admission winning the race.
	conflictInserts int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:   map[int64]*Employee{},
		departments: map[int64]*Department{},
		positions:   map[int64]*JobPosition{},
		contracts:   map[int64]*Contract{},
	}
}

func (f *fakeStore) addDepartment(name string) *Department {
	f.nextID++
	dept := &Department{ID: f.nextID, Name: name}
	f.departments[dept.ID] = dept
	return dept
}

func (f *fakeStore) GetEmployee(_ context.Context, id int64) (*Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, apperr.NotFound("employee", id)
	}
	return emp, nil
}

func (f *fakeStore) GetEmployeeByNumber(_ context.Context, number string) (*Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeNumber == number {
			return emp, nil
		}
	}
	return nil, apperr.NotFound("employee", 0)
}

func (f *fakeStore) ListEmployees(_ context.Context) ([]Employee, error) {
	var out []Employee
	for _, emp := range f.employees {
		out = append(out, *emp)
	}
	return out, nil
}

func (f *fakeStore) ListEmployeesByDepartment(_ context.Context, departmentID int64) ([]Employee, error) {
	var out []Employee
	for _, emp := range f.employees {
		if emp.DepartmentID == departmentID {
			out = append(out, *emp)
		}
	}
	return out, nil
}

func (f *fakeStore) ListEmployeesByManager(_ context.Context, managerID int64) ([]Employee, error) {
	var out []Employee
	for _, emp := range f.employees {
		if emp.ManagerID != nil && *emp.ManagerID == managerID {
			out = append(out, *emp)
		}
	}
	return out, nil
}

func (f *fakeStore) MaxEmployeeKey(_ context.Context) (int64, error) {
	return f.nextID, nil
}

func (f *fakeStore) InsertEmployee(_ context.Context, emp Employee) (*Employee, error) {
	f.nextID++
	if f.conflictInserts > 0 {
		f.conflictInserts--
		return nil, apperr.Conflict("employee number already taken")
	}
	for _, existing := range f.employees {
		if existing.EmployeeNumber == emp.EmployeeNumber {
			return nil, apperr.Conflict("employee number already taken")
		}
	}
	emp.ID = f.nextID
	f.employees[emp.ID] = &emp
	return &emp, nil
}

func (f *fakeStore) UpdateEmployee(_ context.Context, emp Employee) (*Employee, error) {
	if _, ok := f.employees[emp.ID]; !ok {
		return nil, apperr.NotFound("employee", emp.ID)
	}
	f.employees[emp.ID] = &emp
	return &emp, nil
}

func (f *fakeStore) DeleteEmployee(_ context.Context, id int64) error {
	if _, ok := f.employees[id]; !ok {
		return apperr.NotFound("employee", id)
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeStore) GetDepartment(_ context.Context, id int64) (*Department, error) {
	dept, ok := f.departments[id]
	if !ok {
		return nil, apperr.NotFound("department", id)
	}
	return dept, nil
}

func (f *fakeStore) ListDepartments(_ context.Context) ([]Department, error) {
	var out []Department
	for _, dept := range f.departments {
		out = append(out, *dept)
	}
	return out, nil
}

func (f *fakeStore) InsertDepartment(_ context.Context, dept Department) (*Department, error) {
	f.nextID++
	dept.ID = f.nextID
	f.departments[dept.ID] = &dept
	return &dept, nil
}

func (f *fakeStore) DepartmentHasEmployees(_ context.Context, id int64) (bool, error) {
	for _, emp := range f.employees {
		if emp.DepartmentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeleteDepartment(_ context.Context, id int64) error {
	if _, ok := f.departments[id]; !ok {
		return apperr.NotFound("department", id)
	}
	delete(f.departments, id)
	return nil
}

func (f *fakeStore) ListPositionsByDepartment(_ context.Context, departmentID int64) ([]JobPosition, error) {
	var out []JobPosition
	for _, p := range f.positions {
		if p.DepartmentID == departmentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertPosition(_ context.Context, position JobPosition) (*JobPosition, error) {
	f.nextID++
	position.ID = f.nextID
	f.positions[position.ID] = &position
	return &position, nil
}

func (f *fakeStore) ListContractsByEmployee(_ context.Context, employeeID int64) ([]Contract, error) {
	var out []Contract
	for _, c := range f.contracts {
		if c.EmployeeID == employeeID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeStore) InsertContract(_ context.Context, contract Contract) (*Contract, error) {
	f.nextID++
	contract.ID = f.nextID
	f.contracts[contract.ID] = &contract
	return &contract, nil
}

func TestAdmitRejectsUnknownDepartment(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)

	_, err := service.Admit(context.Background(), Employee{FirstName: "Jane", LastName: "Doe", DepartmentID: 99})
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind != apperr.KindInvalidReference {
		t.Fatalf("expected InvalidReference, got %v", err)
	}
	if appErr.Field != "departmentId" || appErr.ID != 99 {
		t.Fatalf("expected departmentId 99 named, got %q %d", appErr.Field, appErr.ID)
	}
}

func TestAdmitRejectsUnknownManager(t *testing.T) {
	store := newFakeStore()
	dept := store.addDepartment("Engineering")
	service := NewService(store)

	managerID := int64(77)
	_, err := service.Admit(context.Background(), Employee{
		FirstName:    "Jane",
		LastName:     "Doe",
		DepartmentID: dept.ID,
		ManagerID:    &managerID,
	})
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind != apperr.KindInvalidReference {
		t.Fatalf("expected InvalidReference, got %v", err)
	}
	if appErr.Field != "managerId" || appErr.ID != 77 {
		t.Fatalf("expected managerId 77 named, got %q %d", appErr.Field, appErr.ID)
	}
}

func TestAdmitAssignsSequentialNumbers(t *testing.T) {
	store := newFakeStore()
	dept := store.addDepartment("Engineering")
	service := NewService(store)

	first, err := service.Admit(context.Background(), Employee{FirstName: "Jane", LastName: "Doe", DepartmentID: dept.ID})
	if err != nil {
		t.Fatalf("first admit failed: %v", err)
	}
	second, err := service.Admit(context.Background(), Employee{FirstName: "John", LastName: "Roe", DepartmentID: dept.ID})
	if err != nil {
		t.Fatalf("second admit failed: %v", err)
	}

	if first.EmployeeNumber == second.EmployeeNumber {
		t.Fatalf("expected unique employee numbers, both got %q", first.EmployeeNumber)
	}
	if first.Status != StatusActive || second.Status != StatusActive {
		t.Fatalf("expected active status, got %q and %q", first.Status, second.Status)
	}
}

func TestAdmitRetriesOnNumberConflict(t *testing.T) {
	store := newFakeStore()
	dept := store.addDepartment("Engineering")
	store.conflictInserts = 1
	service := NewService(store)

	emp, err := service.Admit(context.Background(), Employee{FirstName: "Jane", LastName: "Doe", DepartmentID: dept.ID})
	if err != nil {
		t.Fatalf("admit should survive one conflict: %v", err)
	}
	if emp.EmployeeNumber == "" {
		t.Fatal("expected regenerated employee number")
	}
}

func TestAdmitSurfacesPersistentConflict(t *testing.T) {
	store := newFakeStore()
	dept := store.addDepartment("Engineering")
	store.conflictInserts = admitAttempts
	service := NewService(store)

	_, err := service.Admit(context.Background(), Employee{FirstName: "Jane", LastName: "Doe", DepartmentID: dept.ID})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected Conflict after exhausted retries, got %v", err)
	}
}

func TestDeleteDepartmentWithEmployees(t *testing.T) {
	store := newFakeStore()
	dept := store.addDepartment("Engineering")
	service := NewService(store)

	if _, err := service.Admit(context.Background(), Employee{FirstName: "Jane", LastName: "Doe", DepartmentID: dept.ID}); err != nil {
		t.Fatalf("admit failed: %v", err)
	}

	err := service.DeleteDepartment(context.Background(), dept.ID)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected Conflict deleting populated department, got %v", err)
	}

	empty := store.addDepartment("Archive")
	if err := service.DeleteDepartment(context.Background(), empty.ID); err != nil {
		t.Fatalf("expected empty department delete to succeed, got %v", err)
	}
}

func TestCreatePositionValidatesDepartment(t *testing.T) {
	store := newFakeStore()
	service := NewService(store)

	_, err := service.CreatePosition(context.Background(), JobPosition{Title: "Engineer", DepartmentID: 5})
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind != apperr.KindInvalidReference || appErr.Field != "departmentId" {
		t.Fatalf("expected InvalidReference naming departmentId, got %v", err)
	}
}
