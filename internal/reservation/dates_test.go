package reservation

import (
	"reflect"
	"testing"
)

func TestNormalizeDates(t *testing.T) {
	got := NormalizeDates([]string{"2025-03-30", "2025-03-29", "2025-03-30"})
	want := []string{"2025-03-29", "2025-03-30"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizeDates = %v, want %v", got, want)
	}
}

func TestValidDay(t *testing.T) {
	valid := []string{"2025-03-29", "2024-02-29", "1999-12-31"}
	for _, d := range valid {
		if !ValidDay(d) {
			t.Errorf("ValidDay(%s) = false, want true", d)
		}
	}
	invalid := []string{"", "2025-13-01", "2025-02-30", "03/29/2025", "2025-3-9"}
	for _, d := range invalid {
		if ValidDay(d) {
			t.Errorf("ValidDay(%s) = true, want false", d)
		}
	}
}

func TestDecodeDates_Malformed(t *testing.T) {
	if got := DecodeDates("not json"); got != nil {
		t.Fatalf("DecodeDates(bad) = %v, want nil", got)
	}
	if got := DecodeDates(`["2025-03-29"]`); len(got) != 1 || got[0] != "2025-03-29" {
		t.Fatalf("DecodeDates = %v", got)
	}
}
