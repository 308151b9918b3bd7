package domain

import (
	"strings"

	"github.com/cockroachdb/errors"
)

type Step int

const (
	StepPersonal Step = iota + 1
	StepDocuments
	StepSchedule
	StepSummary
)

const (
	FirstStep = StepPersonal
	LastStep  = StepSummary
)

func (s Step) Title() string {
	switch s {
	case StepPersonal:
		return "Dados Pessoais"
	case StepDocuments:
		return "Documentos e Contato"
	case StepSchedule:
		return "Escolha Data e Horário"
	case StepSummary:
		return "Resumo e Pagamento"
	}
	return ""
}

// Field names accepted by Draft.SetField.
const (
	FieldName           = "name"
	FieldSurname        = "surname"
	FieldBirthDate      = "birthDate"
	FieldGender         = "gender"
	FieldPassportNumber = "passportNumber"
	FieldPassportExpiry = "passportExpiry"
	FieldNationality    = "nationality"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldVisaType       = "visaType"
	FieldSelectedDate   = "selectedDate"
	FieldSelectedSlot   = "selectedSlot"
	FieldPassportFile   = "passportAttachment"
	FieldPhotoFile      = "photoAttachment"
)

// Draft accumulates applicant input across the wizard steps. A draft belongs
// to exactly one wizard session and is not safe for concurrent use.
type Draft struct {
	fields   Applicant
	passport *Attachment
	photo    *Attachment
	slots    SlotChecker
}

func NewDraft(slots SlotChecker) *Draft {
	return &Draft{slots: slots}
}

// SetField stores a single form value. Values are parsed into their field
// type but never checked against other fields. An empty value clears the field.
func (d *Draft) SetField(name, value string) error {
	value = strings.TrimSpace(value)
	f := &d.fields
	switch name {
	case FieldName:
		f.Name = value
	case FieldSurname:
		f.Surname = value
	case FieldPassportNumber:
		f.PassportNumber = value
	case FieldEmail:
		f.Email = value
	case FieldPhone:
		f.Phone = value
	case FieldBirthDate:
		return setDate(&f.BirthDate, value)
	case FieldPassportExpiry:
		return setDate(&f.PassportExpiry, value)
	case FieldGender:
		if value == "" {
			f.Gender = ""
			return nil
		}
		g, err := ParseGender(value)
		if err != nil {
			return err
		}
		f.Gender = g
	case FieldNationality:
		if value == "" {
			f.Nationality = ""
			return nil
		}
		n, err := ParseNationality(value)
		if err != nil {
			return err
		}
		f.Nationality = n
	case FieldVisaType:
		if value == "" {
			f.VisaType = ""
			return nil
		}
		v, err := ParseVisaType(value)
		if err != nil {
			return err
		}
		f.VisaType = v
	case FieldSelectedDate:
		var date Date
		if err := setDate(&date, value); err != nil {
			return err
		}
		if date != f.AppointmentDate {
			f.AppointmentTime = ""
		}
		f.AppointmentDate = date
	case FieldSelectedSlot:
		if value == "" {
			f.AppointmentTime = ""
			return nil
		}
		if f.AppointmentDate.IsZero() || d.slots == nil || !d.slots.IsAvailable(f.AppointmentDate) {
			return errors.Wrapf(ErrTimeWithoutDate, "date %q", f.AppointmentDate.String())
		}
		t, err := ParseTimeOfDay(value)
		if err != nil {
			return err
		}
		f.AppointmentTime = t
	default:
		return errors.Wrapf(ErrUnknownField, "%q", name)
	}
	return nil
}

func setDate(dst *Date, value string) error {
	if value == "" {
		*dst = Date{}
		return nil
	}
	d, err := ParseDate(value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func (d *Draft) SetAttachment(kind AttachmentKind, a Attachment) error {
	if err := kind.validate(a); err != nil {
		return err
	}
	switch kind {
	case AttachmentPassport:
		d.passport = &a
	case AttachmentPhoto:
		d.photo = &a
	}
	return nil
}

func (d *Draft) SetPassportAttachment(a Attachment) error {
	return d.SetAttachment(AttachmentPassport, a)
}

func (d *Draft) SetPhotoAttachment(a Attachment) error {
	return d.SetAttachment(AttachmentPhoto, a)
}

func (d *Draft) ClearAttachment(kind AttachmentKind) {
	switch kind {
	case AttachmentPassport:
		d.passport = nil
	case AttachmentPhoto:
		d.photo = nil
	}
}

// Attachment returns a copy of the stored attachment for kind.
func (d *Draft) Attachment(kind AttachmentKind) (Attachment, bool) {
	var a *Attachment
	switch kind {
	case AttachmentPassport:
		a = d.passport
	case AttachmentPhoto:
		a = d.photo
	}
	if a == nil {
		return Attachment{}, false
	}
	return *a, true
}

// Select re-checks sel against the draft's slot checker and stores it.
// A rejected selection leaves the draft unchanged.
func (d *Draft) Select(sel Selection) error {
	if d.slots == nil {
		return errors.Wrapf(ErrTimeWithoutDate, "date %q", sel.Date.String())
	}
	checked, err := d.slots.TrySelect(sel.Date, sel.Time)
	if err != nil {
		return err
	}
	d.fields.AppointmentDate = checked.Date
	d.fields.AppointmentTime = checked.Time
	return nil
}

func (d *Draft) Selection() (Selection, bool) {
	if d.fields.AppointmentDate.IsZero() || d.fields.AppointmentTime == "" {
		return Selection{}, false
	}
	return Selection{Date: d.fields.AppointmentDate, Time: d.fields.AppointmentTime}, true
}

func (d *Draft) IsStepComplete(step Step) bool {
	if step < FirstStep || step > LastStep {
		return false
	}
	return len(d.MissingFields(step)) == 0
}

// CheckStep returns ErrIncompleteStep naming the missing fields, or nil.
func (d *Draft) CheckStep(step Step) error {
	missing := d.MissingFields(step)
	if len(missing) == 0 {
		return nil
	}
	return errors.Wrapf(ErrIncompleteStep, "step %d: missing %s", int(step), strings.Join(missing, ", "))
}

// MissingFields lists the fields that keep step from being complete.
// The summary step requires every earlier step.
func (d *Draft) MissingFields(step Step) []string {
	f := d.fields
	var missing []string
	need := func(ok bool, name string) {
		if !ok {
			missing = append(missing, name)
		}
	}

	switch step {
	case StepPersonal:
		need(f.Name != "", FieldName)
		need(f.Surname != "", FieldSurname)
		need(!f.BirthDate.IsZero(), FieldBirthDate)
		need(f.Gender != "", FieldGender)
		need(f.Nationality != "", FieldNationality)
	case StepDocuments:
		need(f.PassportNumber != "", FieldPassportNumber)
		need(!f.PassportExpiry.IsZero(), FieldPassportExpiry)
		need(ValidEmail(f.Email), FieldEmail)
		need(f.Phone != "", FieldPhone)
		need(f.VisaType != "", FieldVisaType)
		need(d.passport != nil, FieldPassportFile)
		need(d.photo != nil, FieldPhotoFile)
	case StepSchedule:
		need(!f.AppointmentDate.IsZero(), FieldSelectedDate)
		need(f.AppointmentTime != "", FieldSelectedSlot)
		if len(missing) == 0 {
			if d.slots == nil {
				missing = append(missing, FieldSelectedSlot)
			} else if _, err := d.slots.TrySelect(f.AppointmentDate, f.AppointmentTime); err != nil {
				missing = append(missing, FieldSelectedSlot)
			}
		}
	case StepSummary:
		for s := FirstStep; s < StepSummary; s++ {
			missing = append(missing, d.MissingFields(s)...)
		}
	}
	return missing
}

// Snapshot returns a copy of the draft detached from further edits.
func (d *Draft) Snapshot() Applicant {
	a := d.fields
	if d.passport != nil {
		a.PassportFile = d.passport.Name
	}
	if d.photo != nil {
		a.PhotoFile = d.photo.Name
	}
	return a
}

// ValidEmail requires a non-empty local part and a domain after "@".
func ValidEmail(s string) bool {
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return !strings.ContainsAny(s, " \t\r\n")
}
