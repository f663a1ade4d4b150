package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

const (
	EmployeeOnboarding = "onboarding"
	EmployeeActive     = "active"
	EmployeeOnLeave    = "on_leave"
	EmployeeOffboarded = "offboarded"
)

type Employee struct {
	gorm.Model
	Email         string `gorm:"unique;not null"`
	PasswordHash  string `gorm:"not null"`
	FirstName     string
	LastName      string
	Department    string
	Role          string `gorm:"default:employee"` // employee, manager, admin
	Status        string `gorm:"default:onboarding"`
	HireDate      time.Time
	LastActive    time.Time
	ImportBatchID string // set when the record came from a CSV import
}

// allowedStatusTransitions describes the employee lifecycle; offboarded is terminal.
var allowedStatusTransitions = map[string][]string{
	EmployeeOnboarding: {EmployeeActive, EmployeeOffboarded},
	EmployeeActive:     {EmployeeOnLeave, EmployeeOffboarded},
	EmployeeOnLeave:    {EmployeeActive, EmployeeOffboarded},
	EmployeeOffboarded: {},
}

func ValidStatusTransition(from, to string) bool {
	for _, s := range allowedStatusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type LoginHistory struct {
	gorm.Model
	EmployeeID uint
	LoginTime  time.Time
}
