package domain

import "github.com/cockroachdb/errors"

type Gender string

const (
	GenderMale   Gender = "masculino"
	GenderFemale Gender = "feminino"
	GenderOther  Gender = "outro"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

func ParseGender(s string) (Gender, error) {
	g := Gender(s)
	if _, err := g.label(); err != nil {
		return "", err
	}
	return g, nil
}

func (g Gender) Label() string {
	l, _ := g.label()
	return l
}

func (g Gender) label() (string, error) {
	switch g {
	case GenderMale:
		return "Masculino", nil
	case GenderFemale:
		return "Feminino", nil
	case GenderOther:
		return "Outro", nil
	}
	return "", errors.Wrapf(ErrUnknownCode, "gender %q", string(g))
}

type VisaType string

const (
	VisaTourism      VisaType = "turismo"
	VisaStudy        VisaType = "estudo"
	VisaWorkContract VisaType = "contrato-trabalho"
	VisaJobSearch    VisaType = "procura-trabalho"
)

var VisaTypes = []VisaType{VisaTourism, VisaStudy, VisaWorkContract, VisaJobSearch}

func ParseVisaType(s string) (VisaType, error) {
	v := VisaType(s)
	if _, err := v.label(); err != nil {
		return "", err
	}
	return v, nil
}

// Label returns the display label, or "" for a value outside the declared set.
func (v VisaType) Label() string {
	l, _ := v.label()
	return l
}

func (v VisaType) label() (string, error) {
	switch v {
	case VisaTourism:
		return "Turismo", nil
	case VisaStudy:
		return "Estudo", nil
	case VisaWorkContract:
		return "Contrato de Trabalho", nil
	case VisaJobSearch:
		return "Procura de Trabalho", nil
	}
	return "", errors.Wrapf(ErrUnknownCode, "visa type %q", string(v))
}
