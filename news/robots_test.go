package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRobots verifies accepted spellings of the tri-state
func TestParseRobots(t *testing.T) {
	tests := []struct {
		input     string
		expected  Robots
		expectErr bool
	}{
		{"", RobotsUnset, false},
		{"auto", RobotsUnset, false},
		{"Inherit", RobotsUnset, false},
		{"true", RobotsAllow, false},
		{"ALLOW", RobotsAllow, false},
		{"false", RobotsDeny, false},
		{" deny ", RobotsDeny, false},
		{"maybe", RobotsUnset, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := ParseRobots(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)
		})
	}
}

// TestRobots_Allowed verifies inheritance from the hosting page
func TestRobots_Allowed(t *testing.T) {
	assert.True(t, RobotsUnset.Allowed(true))
	assert.False(t, RobotsUnset.Allowed(false))
	assert.True(t, RobotsAllow.Allowed(false))
	assert.False(t, RobotsDeny.Allowed(true))
}

// TestRobots_TextRoundTrip verifies the text codec used by config and JSON
func TestRobots_TextRoundTrip(t *testing.T) {
	for _, r := range []Robots{RobotsUnset, RobotsAllow, RobotsDeny} {
		text, err := r.MarshalText()
		require.NoError(t, err)

		var decoded Robots
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, r, decoded)
	}

	var r Robots
	assert.Error(t, r.UnmarshalText([]byte("sometimes")))
}
