package formmode

import "testing"

func TestValidateField_EmptyValueRequired(t *testing.T) {
	res := ValidateField("first_name", "   ")
	if res.Success || len(res.Errors) != 1 || res.Errors[0] != "This field is required" {
		t.Errorf("res = %+v, want required error", res)
	}
}

func TestValidateField_EmailInvalid(t *testing.T) {
	res := ValidateField("email", "not-an-email")
	if res.Success || res.Errors[0] != "Please enter a valid email address" {
		t.Errorf("res = %+v, want email error", res)
	}
}

func TestValidateField_EmailValid(t *testing.T) {
	res := ValidateField("email", "user@example.com")
	if !res.Success {
		t.Errorf("res = %+v, want success", res)
	}
}

func TestValidateField_PhoneInvalid(t *testing.T) {
	res := ValidateField("phone", "call me maybe")
	if res.Success || res.Errors[0] != "Please enter a valid phone number" {
		t.Errorf("res = %+v, want phone error", res)
	}
}

func TestValidateField_AgeConfirmNo(t *testing.T) {
	res := ValidateField("age_confirm", "no")
	if res.Success || res.Errors[0] != "You must be at least 22 years old to volunteer" {
		t.Errorf("res = %+v, want age error", res)
	}
}

func TestValidateField_CommitmentConfirmNo(t *testing.T) {
	res := ValidateField("commitment_confirm", "no")
	if res.Success || res.Errors[0] != "A one year commitment is required for this program" {
		t.Errorf("res = %+v, want commitment error", res)
	}
}

func TestValidateField_IdempotentForSameInputs(t *testing.T) {
	r1 := ValidateField("email", "user@example.com")
	r2 := ValidateField("email", "user@example.com")
	if r1.Success != r2.Success || r1.Field != r2.Field || len(r1.Errors) != len(r2.Errors) {
		t.Errorf("validate_field not idempotent: %+v != %+v", r1, r2)
	}
}
