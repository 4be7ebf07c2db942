package validator

import "testing"

type sample struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Password  string `json:"password" validate:"omitempty,min=6"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	RoleID    int    `json:"role_id" validate:"omitempty,gt=0"`
	Hidden    string `json:"-" validate:"omitempty,max=1"`
}

func TestFormatValidationErrors(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sample{
		Email:     "nope",
		Password:  "abc",
		BirthDate: "2000/01/01",
		RoleID:    -1,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	got := v.FormatValidationErrors(err)
	want := map[string]string{
		"name":       "name is required",
		"email":      "email must be a valid email address",
		"password":   "password must be at least 6 characters",
		"birth_date": "birth_date must be a valid date (YYYY-MM-DD)",
		"role_id":    "role_id must be greater than 0",
	}

	if len(got) != len(want) {
		t.Errorf("got %d messages, want %d: %v", len(got), len(want), got)
	}
	for field, message := range want {
		if got[field] != message {
			t.Errorf("%s = %q, want %q", field, got[field], message)
		}
	}
}

func TestValidate_Passes(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&sample{Name: "x", Email: "a@b.test", BirthDate: "2000-01-01"}); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	if got := NewValidator().FormatValidationErrors(nil); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
