package profile

import (
	"reflect"
	"testing"
)

func TestValuesToString(t *testing.T) {
	got := ValuesToString([]string{"flooding", "heat-waves", "custom"}, ClimateConcernOptions)
	want := "Flooding, Heat Waves, custom"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestStringToValues(t *testing.T) {
	got := StringToValues("Europe, global,  unknown place ,ASIA", GeographicFocusOptions)
	want := []string{"europe", "global", "asia"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStringToValuesEmpty(t *testing.T) {
	if got := StringToValues("", InterestCategoryOptions); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	values := []string{"energy", "policy", "circular-economy"}
	s := ValuesToString(values, InterestCategoryOptions)
	if got := StringToValues(s, InterestCategoryOptions); !reflect.DeepEqual(got, values) {
		t.Errorf("expected %v, got %v", values, got)
	}
}
