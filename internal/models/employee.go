package models

import (
	"cmp"
	"strconv"
	"strings"
	"time"
)

// Employee is a graph node with exactly one IS, IN and WORKS_AT
// relationship to a job title, department and branch.
type Employee struct {
	ID         string
	Name       string
	Birth      time.Time
	Male       bool
	Job        string
	Department string
	Branch     string
}

// Relationship types linking an employee to its reference nodes.
const (
	RelIs      = "IS"
	RelIn      = "IN"
	RelWorksAt = "WORKS_AT"
)

// Labels of the graph reference nodes.
const (
	LabelEmployee   = "Employee"
	LabelJobTitle   = "JobTitle"
	LabelDepartment = "Department"
	LabelBranch     = "Branch"
)

// CompareEmployeeIDs orders employee ids by their numeric suffix, so EN2
// comes before EN10. Ids without a numeric suffix sort after numbered ones.
func CompareEmployeeIDs(a, b string) int {
	na, okA := employeeNumber(a)
	nb, okB := employeeNumber(b)
	switch {
	case okA && okB:
		if c := cmp.Compare(na, nb); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	return strings.Compare(a, b)
}

func employeeNumber(id string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(id, EmployeeIDPrefix))
	return n, err == nil
}
