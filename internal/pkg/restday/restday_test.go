package restday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PHT", 8*60*60)

func date(s string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, manila)
	return t
}

func restDates(m map[string]bool) []string {
	var out []string
	for d := date("2024-06-01"); !d.After(date("2024-06-30")); d = d.AddDate(0, 0, 1) {
		if m[d.Format("2006-01-02")] {
			out = append(out, d.Format("2006-01-02"))
		}
	}
	return out
}

func TestParse(t *testing.T) {
	valid := []string{
		"every sunday",
		"Every Saturday and Sunday",
		"every wednesday, sunday",
		"weekends",
		"FREQ=WEEKLY;BYDAY=MO",
		"RRULE:FREQ=WEEKLY;BYDAY=SA,SU",
		"",
	}
	for _, rule := range valid {
		_, err := Parse(rule)
		assert.NoError(t, err, rule)
	}

	invalid := []string{"every funday", "sometimes", "every", "FREQ=NOPE"}
	for _, rule := range invalid {
		_, err := Parse(rule)
		assert.Error(t, err, rule)
	}

	r, err := Parse("none")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestExpand(t *testing.T) {
	t.Run("default sunday rule", func(t *testing.T) {
		got, err := Expand(DefaultRule, nil, date("2024-06-01"), date("2024-06-30"), manila)
		require.NoError(t, err)
		assert.Len(t, got, 30)
		assert.Equal(t, []string{"2024-06-02", "2024-06-09", "2024-06-16", "2024-06-23", "2024-06-30"}, restDates(got))
	})

	t.Run("two rest days per week", func(t *testing.T) {
		got, err := Expand("every wednesday and thursday", nil, date("2024-06-01"), date("2024-06-14"), manila)
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-06-05", "2024-06-06", "2024-06-12", "2024-06-13"}, restDates(got))
	})

	t.Run("overrides replace rule", func(t *testing.T) {
		overrides := map[string]bool{
			"2024-06-09": false,
			"2024-06-10": true,
			"2024-07-15": true, // outside range, ignored
		}
		got, err := Expand("every sunday", overrides, date("2024-06-08"), date("2024-06-11"), manila)
		require.NoError(t, err)
		assert.Equal(t, map[string]bool{
			"2024-06-08": false,
			"2024-06-09": false,
			"2024-06-10": true,
			"2024-06-11": false,
		}, got)
	})

	t.Run("none rule keeps only overrides", func(t *testing.T) {
		got, err := Expand("none", map[string]bool{"2024-06-03": true}, date("2024-06-01"), date("2024-06-07"), manila)
		require.NoError(t, err)
		assert.Equal(t, []string{"2024-06-03"}, restDates(got))
	})

	t.Run("invalid rule", func(t *testing.T) {
		_, err := Expand("every blursday", nil, date("2024-06-01"), date("2024-06-07"), manila)
		assert.Error(t, err)
	})
}
