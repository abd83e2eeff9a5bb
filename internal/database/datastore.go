package database

// DataStore defines the unified interface for all data operations needed by
// the services. Consumers can depend on the smaller interfaces instead.
type DataStore interface {
	EmployeeRepository
	ProductRepository
	MemberRepository
	SequenceRepository
}
