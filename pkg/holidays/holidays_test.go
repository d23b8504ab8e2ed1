package holidays

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jalaali-calendar-bot/pkg/jalaali"
)

func TestParseFile(t *testing.T) {
	days, err := ParseFile(filepath.Join("testdata", "holidays_1403.json"))
	require.NoError(t, err)
	require.Len(t, days, 13)

	first := days[0]
	assert.Equal(t, jalaali.Date{Year: 1403, Month: 1, Day: 1}, first.Jalaali)
	assert.Equal(t, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "عید نوروز", first.Title)

	last := days[len(days)-1]
	assert.Equal(t, jalaali.Date{Year: 1403, Month: 12, Day: 30}, last.Jalaali)
	assert.Equal(t, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), last.Date)
	assert.Empty(t, last.Title)

	for i := 1; i < len(days); i++ {
		assert.True(t, days[i-1].Date.Before(days[i].Date), "holidays must be sorted")
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "nope.json"))
	assert.Error(t, err)
}

func TestParseFile_RejectsDayMissingFromMonth(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "invalid_day.json"))
	assert.ErrorIs(t, err, jalaali.ErrInvalidDate)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"malformed json", `{"year": `},
		{"year zero", `{"year": 0, "months": []}`},
		{"bad day token", `{"year": 1403, "months": [{"month": 1, "days": "1,x"}]}`},
		{"bad month", `{"year": 1403, "months": [{"month": 13, "days": "1"}]}`},
		{"duplicate day", `{"year": 1403, "months": [{"month": 1, "days": "1,1"}]}`},
		{"bad title key", `{"year": 1403, "months": [], "titles": {"1-1": "x"}}`},
		{"title for missing day", `{"year": 1403, "months": [], "titles": {"7/31": "x"}}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.input))
			assert.Error(t, err)
		})
	}
}

func TestParse_PersianDigitsAndMarkers(t *testing.T) {
	days, err := Parse([]byte(`{"year": 1403, "months": [{"month": 2, "days": " ۵ , 6+ ,,"}], "titles": {"۲/۵": " x "}}`))
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 5, days[0].Jalaali.Day)
	assert.Equal(t, "x", days[0].Title)
	assert.Equal(t, 6, days[1].Jalaali.Day)
}
