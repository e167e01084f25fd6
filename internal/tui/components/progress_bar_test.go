package components_test

import (
	"strings"
	"testing"

	"github.com/NamanBalaji/pulse/internal/status"
	"github.com/NamanBalaji/pulse/internal/tui/components"
)

func TestProgressBar(t *testing.T) {
	testCases := []struct {
		name           string
		width          int
		percent        float64
		status         status.Status
		expectedFilled int
		expectedEmpty  int
	}{
		{
			name:           "0 percent",
			width:          20,
			percent:        0.0,
			status:         status.Running,
			expectedFilled: 0,
			expectedEmpty:  20,
		},
		{
			name:           "50 percent",
			width:          20,
			percent:        0.5,
			status:         status.Running,
			expectedFilled: 10,
			expectedEmpty:  10,
		},
		{
			name:           "100 percent",
			width:          20,
			percent:        1.0,
			status:         status.Completed,
			expectedFilled: 20,
			expectedEmpty:  0,
		},
		{
			name:           "Negative percent (clamps to 0)",
			width:          10,
			percent:        -0.5,
			status:         status.Stopped,
			expectedFilled: 0,
			expectedEmpty:  10,
		},
		{
			name:           "Over 100 percent (clamps to 1.0)",
			width:          10,
			percent:        1.5,
			status:         status.Completed,
			expectedFilled: 10,
			expectedEmpty:  0,
		},
		{
			name:           "Zero width",
			width:          0,
			percent:        0.5,
			status:         status.Running,
			expectedFilled: 0,
			expectedEmpty:  0,
		},
		{
			name:           "Odd width, 33 percent",
			width:          15,
			percent:        0.33,
			status:         status.Running,
			expectedFilled: 4,
			expectedEmpty:  11,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := components.ProgressBar(tc.width, tc.percent, tc.status)

			filled := strings.Count(got, "█")
			empty := strings.Count(got, "░")

			if filled != tc.expectedFilled {
				t.Errorf("filled cells = %d, want %d", filled, tc.expectedFilled)
			}
			if empty != tc.expectedEmpty {
				t.Errorf("empty cells = %d, want %d", empty, tc.expectedEmpty)
			}
		})
	}
}
