package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayRuleName(t *testing.T) {
	tests := []struct {
		name  string
		alert Alert
		want  string
	}{
		{"explicit name wins", Alert{RuleID: RuleDropoutProxy, RuleName: "Telemetry Dropout"}, "Telemetry Dropout"},
		{"known id gets friendly name", Alert{RuleID: RuleSuddenDeceleration}, "Sudden Deceleration"},
		{"known id gets friendly name", Alert{RuleID: RulePerceptionInstability}, "Perception Instability"},
		{"known id gets friendly name", Alert{RuleID: RuleDropoutProxy}, "Dropout Proxy"},
		{"unknown id passes through", Alert{RuleID: "lidar_occlusion"}, "lidar_occlusion"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.alert.DisplayRuleName(), tt.name)
	}
}
