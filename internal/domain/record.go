package domain

import (
	"strings"
	"time"
)

// Applicant is an immutable copy of everything the applicant entered.
// Attachments are carried by file name only.
type Applicant struct {
	Name            string      `json:"name"`
	Surname         string      `json:"surname"`
	BirthDate       Date        `json:"birthDate"`
	Gender          Gender      `json:"gender"`
	PassportNumber  string      `json:"passportNumber"`
	PassportExpiry  Date        `json:"passportExpiry"`
	Nationality     Nationality `json:"nationality"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	VisaType        VisaType    `json:"visaType"`
	PassportFile    string      `json:"passportFile,omitempty"`
	PhotoFile       string      `json:"photoFile,omitempty"`
	AppointmentDate Date        `json:"appointmentDate"`
	AppointmentTime TimeOfDay   `json:"appointmentTime"`
}

func (a Applicant) FullName() string {
	return strings.TrimSpace(a.Name + " " + a.Surname)
}

// Record is a finalized booking. It is handed around by value and never
// modified once created.
type Record struct {
	Applicant     Applicant `json:"applicant"`
	ReferenceCode string    `json:"referenceCode"`
	CreatedAt     time.Time `json:"createdAt"`
}
