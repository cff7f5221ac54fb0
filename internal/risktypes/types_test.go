package risktypes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivity(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Activity
		wantErr bool
	}{
		{name: "light", input: "Light", want: ActivityLight},
		{name: "moderate lower case", input: "moderate", want: ActivityModerate},
		{name: "heavy with spaces", input: "  HEAVY ", want: ActivityHeavy},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown label", input: "Extreme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseActivity(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownActivity)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, FieldActivity, verr.Field)
				assert.Equal(t, ActivityUnknown, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestActivity_TextRoundTrip(t *testing.T) {
	for _, a := range Activities {
		text, err := a.MarshalText()
		require.NoError(t, err)

		var parsed Activity
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, a, parsed)
	}

	_, err := ActivityUnknown.MarshalText()
	assert.ErrorIs(t, err, ErrUnknownActivity)
}

func TestParseLevel(t *testing.T) {
	for _, l := range Levels {
		got, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	_, err := ParseLevel("critical")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestLevel_Ordering(t *testing.T) {
	assert.Less(t, LevelLow, LevelModerate)
	assert.Less(t, LevelModerate, LevelHigh)
	assert.Equal(t, "Unknown", LevelUnknown.String())
}

func TestBreakdown_Total(t *testing.T) {
	b := Breakdown{Temperature: 3, Humidity: 2, Duration: 2, Activity: 3}
	assert.Equal(t, 10, b.Total())
	assert.Equal(t, 0, Breakdown{}.Total())
}

func TestInput_Validate(t *testing.T) {
	valid := Input{Temperature: 35, Humidity: 60, Duration: 4, Activity: ActivityModerate}
	require.NoError(t, valid.Validate())

	bounds := []Input{
		{Temperature: MinTemperature, Humidity: MinHumidity, Duration: MinDuration, Activity: ActivityLight},
		{Temperature: MaxTemperature, Humidity: MaxHumidity, Duration: MaxDuration, Activity: ActivityHeavy},
	}
	for _, in := range bounds {
		assert.NoError(t, in.Validate(), "input %+v", in)
	}

	in := valid
	in.Humidity = 95
	err := in.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, "humidity: 95 is out of range [30, 90]", err.Error())
}
