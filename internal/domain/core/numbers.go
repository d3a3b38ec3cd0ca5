package core

import "fmt"

const employeeNumberPrefix = "EMP-"

// NextEmployeeNumber formats the employee number that follows the
// current highest primary key. Keys are assigned by the store and never
// reused, so the sequence only moves forward. Generation reserves
// nothing; the unique constraint on employee_number is the arbiter
// under concurrent admissions.
func NextEmployeeNumber(maxKey int64) string {
	return fmt.Sprintf("%s%04d", employeeNumberPrefix, maxKey+1)
}
