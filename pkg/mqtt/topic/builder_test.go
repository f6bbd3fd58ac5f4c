package topic

import "testing"

func TestBuilder(t *testing.T) {
	b := NewBuilder("afrs/v1")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"vehicle", b.Vehicle("v1"), "afrs/v1/vehicle/v1"},
		{"vehicle wildcard", b.VehicleWildcard(), "afrs/v1/vehicle/+"},
		{"alert", b.Alert("v1"), "afrs/v1/alert/v1"},
		{"alert wildcard", b.AlertWildcard(), "afrs/v1/alert/+"},
		{"action", b.Action("v1"), "afrs/v1/action/v1"},
		{"action wildcard", b.ActionWildcard(), "afrs/v1/action/+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
