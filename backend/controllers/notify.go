package controllers

import (
	"time"

	"gorm.io/gorm"

	"lms/backend/models"
	emailsvc "lms/backend/services/email"
)

// notify sends one email and records the outcome. Mail failures never fail
// the triggering request; the audit row keeps Delivered=false.
func notify(db *gorm.DB, mailer emailsvc.Service, employee models.Employee, kind, subject, body string) {
	err := mailer.Send(emailsvc.Message{
		ToName:   employee.FirstName + " " + employee.LastName,
		ToAddr:   employee.Email,
		Subject:  subject,
		TextBody: body,
	})

	db.Create(&models.Notification{
		EmployeeID: employee.ID,
		Kind:       kind,
		Subject:    subject,
		Body:       body,
		SentAt:     time.Now(),
		Delivered:  err == nil,
	})
}
