package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"123e4567-e89b-12d3-a456-426614174000",
		"123E4567-E89B-12D3-A456-426614174000",
	}
	invalid := []string{
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"urn:uuid:123e4567-e89b-12d3-a456-426614174000",
		"",
	}
	for _, id := range valid {
		if !IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidUUID(id) {
			t.Errorf("IsValidUUID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123Z"}
	invalid := []string{"2024-01-15", "2024-01-15 10:30:00", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"09:00", "00:00", "23:59"}
	invalid := []string{"9:00", "24:00", "09:60", "0900", ""}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "year", Message: "is required"},
	}
	got := errs.Error()
	want := "month: invalid; year: is required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "invalid"},
		{Field: "year", Message: "is required"},
	}
	got := errs.ToMap()
	want := map[string]string{"month": "invalid", "year": "is required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_Err(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Errorf("empty ValidationErrors.Err() = %v, want nil", errs.Err())
	}

	errs.Add("salaryId", "is required")
	if errs.Err() == nil {
		t.Errorf("ValidationErrors.Err() = nil, want error")
	}
}

type structSample struct {
	EmployeeID string `json:"employeeId" validate:"required,uuid"`
	Month      *int   `json:"month" validate:"required,gte=0,lte=11"`
	Status     string `json:"status" validate:"oneof=Approved Rejected"`
}

func TestStruct(t *testing.T) {
	month := 12
	errs := Struct(structSample{EmployeeID: "nope", Month: &month, Status: "Pending"})
	got := errs.ToMap()

	if got["employeeId"] != "must be a valid UUID" {
		t.Errorf("employeeId message = %q", got["employeeId"])
	}
	if got["month"] != "must be less than or equal to 11" {
		t.Errorf("month message = %q", got["month"])
	}
	if got["status"] != "must be one of: Approved, Rejected" {
		t.Errorf("status message = %q", got["status"])
	}

	zero := 0
	ok := Struct(structSample{EmployeeID: "123e4567-e89b-12d3-a456-426614174000", Month: &zero, Status: "Approved"})
	if len(ok) != 0 {
		t.Errorf("Struct(valid) = %v, want no errors", ok)
	}

	missing := Struct(structSample{Status: "Approved"}).ToMap()
	if missing["month"] != "is required" || missing["employeeId"] != "is required" {
		t.Errorf("missing fields = %v", missing)
	}
}
