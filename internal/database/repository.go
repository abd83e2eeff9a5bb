package database

// Repository composes the per-backend repositories using struct embedding.
type Repository struct {
	*EmployeeRepo
	*ProductRepo
	*MemberRepo
	*SequenceRepo
}

var _ DataStore = (*Repository)(nil)

// NewRepository creates a Repository from the individual accessors.
func NewRepository(employees *EmployeeRepo, products *ProductRepo, members *MemberRepo, sequences *SequenceRepo) *Repository {
	return &Repository{
		EmployeeRepo: employees,
		ProductRepo:  products,
		MemberRepo:   members,
		SequenceRepo: sequences,
	}
}
