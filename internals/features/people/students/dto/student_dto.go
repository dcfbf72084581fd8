package dto

import (
	"strings"

	"copo_backend/internals/features/people/students/model"
	"copo_backend/internals/features/references"
	helper "copo_backend/internals/helpers"
)

type CreateStudentRequest struct {
	RegisterNo      string  `json:"register_no" validate:"required,max=40"`
	Name            string  `json:"name" validate:"required,max=150"`
	ProgrammeID     *uint   `json:"programme_id"`
	Programme       *string `json:"programme"`
	YearOfAdmission *int    `json:"year_of_admission" validate:"omitempty,gte=1900,lte=3000"`
	Phone           *string `json:"phone" validate:"omitempty,max=20"`
	Email           *string `json:"email" validate:"omitempty,max=254"`
}

func (r *CreateStudentRequest) Normalize() {
	r.RegisterNo = strings.TrimSpace(r.RegisterNo)
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = helper.TrimPtr(r.Phone)
	r.Email = helper.TrimPtr(r.Email)
}

func (r CreateStudentRequest) ProgrammeRef() references.Ref {
	return references.Ref{ID: r.ProgrammeID, Name: r.Programme}
}

// ToModel derives year_of_admission from the register number when it was not sent.
func (r CreateStudentRequest) ToModel(programmeID uint) (model.StudentModel, error) {
	m := model.StudentModel{
		RegisterNo:  r.RegisterNo,
		Name:        r.Name,
		ProgrammeID: programmeID,
		Phone:       r.Phone,
		Email:       r.Email,
	}
	if r.YearOfAdmission != nil {
		m.YearOfAdmission = *r.YearOfAdmission
		return m, nil
	}
	year, ok := model.AdmissionYear(r.RegisterNo)
	if !ok {
		return m, helper.NewFieldError("year_of_admission", "Could not be derived from the register number; send it explicitly.")
	}
	m.YearOfAdmission = year
	return m, nil
}

type UpdateStudentRequest struct {
	RegisterNo      helper.PatchField[string] `json:"register_no"`
	Name            helper.PatchField[string] `json:"name"`
	ProgrammeID     helper.PatchField[uint]   `json:"programme_id"`
	Programme       helper.PatchField[string] `json:"programme"`
	YearOfAdmission helper.PatchField[int]    `json:"year_of_admission"`
	Phone           helper.PatchField[string] `json:"phone"`
	Email           helper.PatchField[string] `json:"email"`
}

func (r UpdateStudentRequest) Apply(m *model.StudentModel) error {
	if r.RegisterNo.Present {
		if !r.RegisterNo.Set() || strings.TrimSpace(*r.RegisterNo.Value) == "" {
			return helper.NewFieldError("register_no", "This field may not be blank.")
		}
		m.RegisterNo = strings.TrimSpace(*r.RegisterNo.Value)
	}
	if r.Name.Present {
		if !r.Name.Set() || strings.TrimSpace(*r.Name.Value) == "" {
			return helper.NewFieldError("name", "This field may not be blank.")
		}
		m.Name = strings.TrimSpace(*r.Name.Value)
	}
	if r.YearOfAdmission.Set() {
		if y := *r.YearOfAdmission.Value; y < 1900 || y > 3000 {
			return helper.NewFieldError("year_of_admission", "Enter a valid year.")
		}
		m.YearOfAdmission = *r.YearOfAdmission.Value
	}
	if r.Phone.Present {
		m.Phone = helper.TrimPtr(r.Phone.Value)
	}
	if r.Email.Present {
		m.Email = helper.TrimPtr(r.Email.Value)
	}
	return nil
}

type StudentResponse struct {
	ID              uint    `json:"id"`
	RegisterNo      string  `json:"register_no"`
	Name            string  `json:"name"`
	ProgrammeID     uint    `json:"programme_id"`
	ProgrammeName   string  `json:"programme_name"`
	YearOfAdmission int     `json:"year_of_admission"`
	Phone           *string `json:"phone"`
	Email           *string `json:"email"`
}
