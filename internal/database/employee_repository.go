package database

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/coffeehub/internal/models"
)

// Cypher used by EmployeeRepo. Every value is bound as a parameter.
const (
	cypherListEmployees = `MATCH (n:Employee)
OPTIONAL MATCH (n)-[:IS]->(j:JobTitle)
OPTIONAL MATCH (n)-[:IN]->(d:Department)
OPTIONAL MATCH (n)-[:WORKS_AT]->(b:Branch)
RETURN n.id AS id, n.name AS name, toString(n.birth) AS birth, n.male AS male,
       j.name AS job, d.name AS department, b.name AS branch
ORDER BY n.id`

	cypherListJobs        = `MATCH (x:JobTitle) RETURN x.name AS name ORDER BY name`
	cypherListDepartments = `MATCH (x:Department) RETURN x.name AS name ORDER BY name`
	cypherListBranches    = `MATCH (x:Branch) RETURN x.name AS name ORDER BY name`

	cypherCheckReferences = `OPTIONAL MATCH (j:JobTitle {name: $job})
OPTIONAL MATCH (d:Department {name: $department})
OPTIONAL MATCH (b:Branch {name: $branch})
RETURN j IS NOT NULL AS job, d IS NOT NULL AS department, b IS NOT NULL AS branch`

	cypherMergeEmployee = `MERGE (n:Employee {id: $id})
SET n.name = $name, n.birth = date($birth), n.male = $male`

	cypherDropEmployeeRelationships = `MATCH (n:Employee {id: $id})-[r:IS|IN|WORKS_AT]->()
DELETE r`

	cypherLinkEmployee = `MATCH (n:Employee {id: $id}), (j:JobTitle {name: $job}),
      (d:Department {name: $department}), (b:Branch {name: $branch})
CREATE (n)-[:IS]->(j), (n)-[:IN]->(d), (n)-[:WORKS_AT]->(b)`

	cypherDeleteEmployee = `MATCH (n:Employee {id: $id}) DETACH DELETE n`
)

// EmployeeRepo handles employee operations on the graph backend.
type EmployeeRepo struct {
	graph CypherRunner
}

// NewEmployeeRepo creates an EmployeeRepo over the given runner.
func NewEmployeeRepo(graph CypherRunner) *EmployeeRepo {
	return &EmployeeRepo{graph: graph}
}

// ListEmployees returns every employee with its reference names resolved.
// Employees missing a relationship are listed with an empty name for it.
// The list is ordered by the numeric part of the id.
func (r *EmployeeRepo) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.graph.Run(ctx, cypherListEmployees, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := make([]*models.Employee, 0, len(rows))
	for _, row := range rows {
		e := &models.Employee{
			ID:         asString(row["id"]),
			Name:       asString(row["name"]),
			Male:       asBool(row["male"]),
			Job:        asString(row["job"]),
			Department: asString(row["department"]),
			Branch:     asString(row["branch"]),
		}
		if birth := asString(row["birth"]); birth != "" {
			e.Birth, err = time.Parse(models.DateLayout, birth)
			if err != nil {
				return nil, fmt.Errorf("failed to parse birth of employee %s: %w", e.ID, err)
			}
		}
		employees = append(employees, e)
	}
	slices.SortFunc(employees, func(a, b *models.Employee) int {
		return models.CompareEmployeeIDs(a.ID, b.ID)
	})
	return employees, nil
}

// ListJobs returns the job title names.
func (r *EmployeeRepo) ListJobs(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, cypherListJobs, "job titles")
}

// ListDepartments returns the department names.
func (r *EmployeeRepo) ListDepartments(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, cypherListDepartments, "departments")
}

// ListBranches returns the branch names.
func (r *EmployeeRepo) ListBranches(ctx context.Context) ([]string, error) {
	return r.listNames(ctx, cypherListBranches, "branches")
}

func (r *EmployeeRepo) listNames(ctx context.Context, query, what string) ([]string, error) {
	rows, err := r.graph.Run(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", what, err)
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, asString(row["name"]))
	}
	return names, nil
}

// UpsertEmployee creates the employee or rewrites its scalars and its three
// relationships. All steps share one write transaction, so a missing
// reference node leaves the graph untouched.
func (r *EmployeeRepo) UpsertEmployee(ctx context.Context, e *models.Employee) error {
	refs := map[string]any{
		"job":        e.Job,
		"department": e.Department,
		"branch":     e.Branch,
	}

	return r.graph.Write(ctx, func(tx CypherTx) error {
		rows, err := tx.Run(ctx, cypherCheckReferences, refs)
		if err != nil {
			return fmt.Errorf("failed to check references of employee %s: %w", e.ID, err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("reference check for employee %s returned no rows", e.ID)
		}
		if err := missingReference(rows[0], e); err != nil {
			return err
		}

		if _, err := tx.Run(ctx, cypherMergeEmployee, map[string]any{
			"id":    e.ID,
			"name":  e.Name,
			"birth": e.Birth.Format(models.DateLayout),
			"male":  e.Male,
		}); err != nil {
			return fmt.Errorf("failed to write employee %s: %w", e.ID, err)
		}

		if _, err := tx.Run(ctx, cypherDropEmployeeRelationships, map[string]any{"id": e.ID}); err != nil {
			return fmt.Errorf("failed to drop relationships of employee %s: %w", e.ID, err)
		}

		link := map[string]any{"id": e.ID}
		for k, v := range refs {
			link[k] = v
		}
		if _, err := tx.Run(ctx, cypherLinkEmployee, link); err != nil {
			return fmt.Errorf("failed to link employee %s: %w", e.ID, err)
		}
		return nil
	})
}

func missingReference(row map[string]any, e *models.Employee) error {
	switch {
	case !asBool(row["job"]):
		return &models.NotFoundError{Entity: "job title", Key: e.Job}
	case !asBool(row["department"]):
		return &models.NotFoundError{Entity: "department", Key: e.Department}
	case !asBool(row["branch"]):
		return &models.NotFoundError{Entity: "branch", Key: e.Branch}
	}
	return nil
}

// DeleteEmployee removes the employee and its relationships. Unknown ids
// are a no-op.
func (r *EmployeeRepo) DeleteEmployee(ctx context.Context, id string) error {
	return r.graph.Write(ctx, func(tx CypherTx) error {
		if _, err := tx.Run(ctx, cypherDeleteEmployee, map[string]any{"id": id}); err != nil {
			return fmt.Errorf("failed to delete employee %s: %w", id, err)
		}
		return nil
	})
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

// asBool accepts native booleans and the "True"/"False" strings older
// sample data stored.
func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.EqualFold(b, "true")
	case int64:
		return b != 0
	default:
		return false
	}
}
