package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeLifecycleTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{EmployeeOnboarding, EmployeeActive},
		{EmployeeOnboarding, EmployeeOffboarded},
		{EmployeeActive, EmployeeOnLeave},
		{EmployeeActive, EmployeeOffboarded},
		{EmployeeOnLeave, EmployeeActive},
		{EmployeeOnLeave, EmployeeOffboarded},
	}
	for _, tr := range allowed {
		assert.True(t, ValidStatusTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	denied := []struct{ from, to string }{
		{EmployeeOnboarding, EmployeeOnLeave},
		{EmployeeActive, EmployeeOnboarding},
		{EmployeeOffboarded, EmployeeActive},
		{EmployeeOffboarded, EmployeeOnboarding},
		{EmployeeActive, EmployeeActive},
		{"unknown", EmployeeActive},
	}
	for _, tr := range denied {
		assert.False(t, ValidStatusTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}
}
