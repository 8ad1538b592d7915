package survival

import (
	"errors"
	"fmt"
	"strings"
)

const (
	minAge     = 18
	maxAge     = 100
	minProtein = -5.0
	maxProtein = 5.0
)

var (
	errOutOfRange         = errors.New("out of range")
	errInvalidEnumeration = errors.New("invalid enumeration")
	errRequired           = errors.New("required")

	allowedGenders = []string{"MALE", "FEMALE"}
	allowedStages  = []string{"I", "II", "III"}
	allowedStatus  = []string{"Positive", "Negative"}
)

// Validator normalizes and constrains raw patient submissions. It is
// stateless; Validate is a pure function of its input.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate produces a normalized PatientRecord or a ValidationError naming
// the offending field and the violated constraint. No model computation
// happens before this passes.
func (v *Validator) Validate(in PatientInput) (PatientRecord, error) {
	var rec PatientRecord

	if in.Age < minAge || in.Age > maxAge {
		return rec, ValidationError{Field: ColAge, reason: fmt.Errorf("must be between %d and %d: %w", minAge, maxAge, errOutOfRange)}
	}

	gender, err := matchUpper(ColGender, in.Gender, allowedGenders)
	if err != nil {
		return rec, err
	}

	proteins := []struct {
		field string
		value float64
	}{
		{ColProtein1, in.Protein1},
		{ColProtein2, in.Protein2},
		{ColProtein3, in.Protein3},
		{ColProtein4, in.Protein4},
	}
	for _, p := range proteins {
		if p.value < minProtein || p.value > maxProtein {
			return rec, ValidationError{Field: p.field, reason: fmt.Errorf("must be between %.1f and %.1f: %w", minProtein, maxProtein, errOutOfRange)}
		}
	}

	stage, err := matchUpper(ColTumourStage, in.TumourStage, allowedStages)
	if err != nil {
		return rec, err
	}

	er, err := matchCapitalized(ColERStatus, in.ERStatus)
	if err != nil {
		return rec, err
	}
	pr, err := matchCapitalized(ColPRStatus, in.PRStatus)
	if err != nil {
		return rec, err
	}
	her2, err := matchCapitalized(ColHER2Status, in.HER2Status)
	if err != nil {
		return rec, err
	}

	histology := strings.TrimSpace(in.Histology)
	if histology == "" {
		return rec, ValidationError{Field: ColHistology, reason: errRequired}
	}
	surgery := strings.TrimSpace(in.SurgeryType)
	if surgery == "" {
		return rec, ValidationError{Field: ColSurgeryType, reason: errRequired}
	}

	rec = PatientRecord{
		Age:         in.Age,
		Gender:      gender,
		Protein1:    in.Protein1,
		Protein2:    in.Protein2,
		Protein3:    in.Protein3,
		Protein4:    in.Protein4,
		TumourStage: stage,
		Histology:   histology,
		ERStatus:    er,
		PRStatus:    pr,
		HER2Status:  her2,
		SurgeryType: surgery,
	}
	return rec, nil
}

// matchUpper matches value case-insensitively against allowed and returns
// the uppercase canonical form.
func matchUpper(field, value string, allowed []string) (string, error) {
	candidate := strings.ToUpper(strings.TrimSpace(value))
	for _, a := range allowed {
		if candidate == a {
			return a, nil
		}
	}
	return "", ValidationError{Field: field, reason: fmt.Errorf("must be one of %s: %w", strings.Join(allowed, ", "), errInvalidEnumeration)}
}

// matchCapitalized matches a hormone status case-insensitively and returns
// the capitalized canonical form ("Positive"/"Negative").
func matchCapitalized(field, value string) (string, error) {
	candidate := strings.TrimSpace(value)
	for _, a := range allowedStatus {
		if strings.EqualFold(candidate, a) {
			return a, nil
		}
	}
	return "", ValidationError{Field: field, reason: fmt.Errorf("must be one of %s: %w", strings.Join(allowedStatus, ", "), errInvalidEnumeration)}
}
