package core

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrsys/internal/domain/apperr"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    e.id, e.employee_number, e.first_name, e.last_name,
    COALESCE(e.email, ''), COALESCE(e.phone, ''), e.date_of_birth,
    COALESCE(e.gender, ''), COALESCE(e.national_id, ''), COALESCE(e.address, ''),
    e.hire_date, e.department_id, e.job_position_id, e.manager_id,
    e.base_salary, e.status, e.created_at, e.updated_at,
    COALESCE(d.name, ''), COALESCE(jp.title, ''),
    COALESCE(m.first_name || ' ' || m.last_name, '')`

const employeeJoins = `
    FROM employees e
    LEFT JOIN departments d ON e.department_id = d.id
    LEFT JOIN job_positions jp ON e.job_position_id = jp.id
    LEFT JOIN employees m ON e.manager_id = m.id`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName,
		&emp.Email, &emp.Phone, &emp.DateOfBirth,
		&emp.Gender, &emp.NationalID, &emp.Address,
		&emp.HireDate, &emp.DepartmentID, &emp.JobPositionID, &emp.ManagerID,
		&emp.BaseSalary, &emp.Status, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.DepartmentName, &emp.JobTitle, &emp.ManagerName,
	)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, "SELECT"+employeeColumns+employeeJoins+" WHERE e.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("employee", id)
	}
	return emp, err
}

func (s *Store) GetEmployeeByNumber(ctx context.Context, number string) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, "SELECT"+employeeColumns+employeeJoins+" WHERE e.employee_number = $1", number))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("employee", 0)
	}
	return emp, err
}

func (s *Store) listEmployees(ctx context.Context, where string, args ...any) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+employeeColumns+employeeJoins+where+" ORDER BY e.last_name, e.first_name", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.listEmployees(ctx, "")
}

func (s *Store) ListEmployeesByDepartment(ctx context.Context, departmentID int64) ([]Employee, error) {
	return s.listEmployees(ctx, " WHERE e.department_id = $1", departmentID)
}

func (s *Store) ListEmployeesByManager(ctx context.Context, managerID int64) ([]Employee, error) {
	return s.listEmployees(ctx, " WHERE e.manager_id = $1", managerID)
}

func (s *Store) MaxEmployeeKey(ctx context.Context) (int64, error) {
	var maxKey int64
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(MAX(id), 0) FROM employees").Scan(&maxKey)
	return maxKey, err
}

func (s *Store) InsertEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_number, first_name, last_name, email, phone, date_of_birth,
      gender, national_id, address, hire_date, department_id, job_position_id, manager_id,
      base_salary, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
    RETURNING id
  `,
		emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.DateOfBirth,
		emp.Gender, emp.NationalID, emp.Address, emp.HireDate, emp.DepartmentID, emp.JobPositionID,
		emp.ManagerID, emp.BaseSalary, emp.Status,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("employee number already taken")
		}
		return nil, err
	}
	return s.GetEmployee(ctx, id)
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) (*Employee, error) {
	cmd, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET first_name = $1,
        last_name = $2,
        email = $3,
        phone = $4,
        date_of_birth = $5,
        gender = $6,
        national_id = $7,
        address = $8,
        hire_date = $9,
        department_id = $10,
        job_position_id = $11,
        manager_id = $12,
        base_salary = $13,
        status = $14,
        updated_at = now()
    WHERE id = $15
  `,
		emp.FirstName, emp.LastName, emp.Email, emp.Phone, emp.DateOfBirth, emp.Gender,
		emp.NationalID, emp.Address, emp.HireDate, emp.DepartmentID, emp.JobPositionID,
		emp.ManagerID, emp.BaseSalary, emp.Status, emp.ID,
	)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, apperr.NotFound("employee", emp.ID)
	}
	return s.GetEmployee(ctx, emp.ID)
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("employee", id)
	}
	return nil
}

const departmentColumns = `
    d.id, d.name, COALESCE(d.description, ''), d.manager_id,
    COALESCE(m.first_name || ' ' || m.last_name, ''),
    (SELECT COUNT(1) FROM employees e WHERE e.department_id = d.id),
    d.created_at, d.updated_at
    FROM departments d
    LEFT JOIN employees m ON d.manager_id = m.id`

func scanDepartment(row pgx.Row) (*Department, error) {
	var dept Department
	err := row.Scan(
		&dept.ID, &dept.Name, &dept.Description, &dept.ManagerID,
		&dept.ManagerName, &dept.EmployeeCount, &dept.CreatedAt, &dept.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (s *Store) GetDepartment(ctx context.Context, id int64) (*Department, error) {
	dept, err := scanDepartment(s.DB.QueryRow(ctx, "SELECT"+departmentColumns+" WHERE d.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("department", id)
	}
	return dept, err
}

func (s *Store) ListDepartments(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+departmentColumns+" ORDER BY d.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *dept)
	}
	return out, rows.Err()
}

func (s *Store) InsertDepartment(ctx context.Context, dept Department) (*Department, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, description, manager_id)
    VALUES ($1,$2,$3)
    RETURNING id
  `, dept.Name, dept.Description, dept.ManagerID).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("department name already taken")
		}
		return nil, err
	}
	return s.GetDepartment(ctx, id)
}

func (s *Store) DepartmentHasEmployees(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE department_id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("department", id)
	}
	return nil
}

func (s *Store) ListPositionsByDepartment(ctx context.Context, departmentID int64) ([]JobPosition, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title, COALESCE(description, ''), department_id, min_salary, max_salary, created_at
    FROM job_positions
    WHERE department_id = $1
    ORDER BY title
  `, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JobPosition
	for rows.Next() {
		var p JobPosition
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.DepartmentID, &p.MinSalary, &p.MaxSalary, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) InsertPosition(ctx context.Context, position JobPosition) (*JobPosition, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO job_positions (title, description, department_id, min_salary, max_salary)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id, created_at
  `, position.Title, position.Description, position.DepartmentID, position.MinSalary, position.MaxSalary).
		Scan(&position.ID, &position.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &position, nil
}

func (s *Store) ListContractsByEmployee(ctx context.Context, employeeID int64) ([]Contract, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, type, status, start_date, end_date, salary, COALESCE(notes, ''), created_at
    FROM contracts
    WHERE employee_id = $1
    ORDER BY start_date DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contract
	for rows.Next() {
		var c Contract
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.Type, &c.Status, &c.StartDate, &c.EndDate, &c.Salary, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) InsertContract(ctx context.Context, contract Contract) (*Contract, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO contracts (employee_id, type, status, start_date, end_date, salary, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id, created_at
  `, contract.EmployeeID, contract.Type, contract.Status, contract.StartDate, contract.EndDate, contract.Salary, contract.Notes).
		Scan(&contract.ID, &contract.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
