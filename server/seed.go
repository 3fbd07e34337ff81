package server

import (
	"context"

	"github.com/gauravscripts/empdir/types"
)

// SampleEmployee is the record the directory can be preloaded with.
func SampleEmployee() types.Employee {
	return types.Employee{
		Name:        "Gaurav",
		Salary:      95000.0,
		Departments: []types.Department{{ID: 1, Name: "Engineering"}},
		AddressMap: map[string]string{
			"city":    "Bangalore",
			"country": "India",
		},
		IsActive: true,
	}
}

// Seed preloads the sample record through the regular add path, so it
// takes the generator's next ID instead of a hard-coded one.
func (s *Server) Seed(ctx context.Context) (types.Employee, error) {
	e, err := s.AddEmployee(ctx, SampleEmployee())
	if err != nil {
		return types.Employee{}, err
	}
	s.logger.Info().Int32("id", e.ID).Str("name", e.Name).Msg("directory seeded")
	return e, nil
}
