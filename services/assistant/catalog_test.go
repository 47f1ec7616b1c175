package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogDeclaresAllTools(t *testing.T) {
	svc := newTestService(&scriptedClient{}, &fakeBookingService{})

	specs := svc.ToolSpecs()
	names := make([]string, 0, len(specs))
	for _, s := range specs {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"get_doctors",
		"filter_doctors",
		"get_doctor_availability",
		"book_appointment",
		"recommend_alternatives",
	}, names)
}

func TestCatalogEverySpecHasHandler(t *testing.T) {
	svc := newTestService(&scriptedClient{}, &fakeBookingService{})

	for _, e := range svc.catalog {
		assert.NotNil(t, e.handle, "tool %s has no handler", e.spec.Name)
		assert.NotEmpty(t, e.spec.Description, "tool %s has no description", e.spec.Name)
		assert.Equal(t, "object", e.spec.Parameters.Type, "tool %s parameters", e.spec.Name)
	}
}

func TestCatalogRequiredFields(t *testing.T) {
	svc := newTestService(&scriptedClient{}, &fakeBookingService{})

	required := map[string][]string{}
	for _, e := range svc.catalog {
		required[e.spec.Name] = e.spec.Parameters.Required
	}

	assert.Empty(t, required["get_doctors"])
	assert.Equal(t, []string{"specialty"}, required["filter_doctors"])
	assert.Equal(t, []string{"doctor_name"}, required["get_doctor_availability"])
	assert.Equal(t,
		[]string{"doctor_name", "date", "time", "patient_name", "email", "phone"},
		required["book_appointment"])
	assert.Equal(t,
		[]string{"doctor_name", "date", "start_time", "end_time"},
		required["recommend_alternatives"])

	// Every required field is declared as a property.
	for _, e := range svc.catalog {
		for _, field := range e.spec.Parameters.Required {
			_, ok := e.spec.Parameters.Properties[field]
			require.True(t, ok, "tool %s requires undeclared field %s", e.spec.Name, field)
		}
	}
}
