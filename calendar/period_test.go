package calendar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeriodBoundaries_Yearly(t *testing.T) {
	// Two noleap years.
	axis := mustAxis(t, Date{2000, 1, 1}, NoLeap, 730)

	periods, err := axis.PeriodBoundaries("YS")
	require.NoError(t, err)

	require.Len(t, periods, 2)
	require.Equal(t, Period{Start: 0, End: 365, Label: Date{2000, 1, 1}}, periods[0])
	require.Equal(t, Period{Start: 365, End: 730, Label: Date{2001, 1, 1}}, periods[1])
}

func TestPeriodBoundaries_Yearly_TruncatedEnds(t *testing.T) {
	// Dec 30 2000 .. Jan 2 2002 under the standard calendar.
	axis := mustAxis(t, Date{2000, 12, 30}, Standard, 2+365+2)

	periods, err := axis.PeriodBoundaries("YS")
	require.NoError(t, err)

	require.Len(t, periods, 3)
	require.Equal(t, 2, periods[0].Len())
	require.Equal(t, 365, periods[1].Len())
	require.Equal(t, 2, periods[2].Len())
	require.Equal(t, Date{2001, 1, 1}, periods[1].Label)
	require.Equal(t, Date{2002, 1, 1}, periods[2].Label)
}

func TestPeriodBoundaries_YearlyAnchored(t *testing.T) {
	// A July-anchored year splits a calendar year in two.
	axis := mustAxis(t, Date{2000, 1, 1}, NoLeap, 365)

	periods, err := axis.PeriodBoundaries("YS-JUL")
	require.NoError(t, err)

	require.Len(t, periods, 2)
	require.Equal(t, Date{2000, 1, 1}, periods[0].Label)
	require.Equal(t, Date{2000, 7, 1}, periods[1].Label)
	// Jan..Jun of a noleap year is 181 days.
	require.Equal(t, 181, periods[0].Len())
	require.Equal(t, 184, periods[1].Len())
}

func TestPeriodBoundaries_Monthly(t *testing.T) {
	axis := mustAxis(t, Date{2000, 1, 15}, Day360, 60)

	periods, err := axis.PeriodBoundaries("MS")
	require.NoError(t, err)

	require.Len(t, periods, 3)
	require.Equal(t, 16, periods[0].Len()) // Jan 15..30
	require.Equal(t, 30, periods[1].Len())
	require.Equal(t, 14, periods[2].Len())
	require.Equal(t, Date{2000, 2, 1}, periods[1].Label)
}

func TestPeriodBoundaries_QuarterlyAnchored(t *testing.T) {
	// QS-DEC quarters are DJF, MAM, JJA, SON.
	axis := mustAxis(t, Date{2000, 1, 1}, NoLeap, 365)

	periods, err := axis.PeriodBoundaries("QS-DEC")
	require.NoError(t, err)

	require.Len(t, periods, 5)
	require.Equal(t, Date{2000, 1, 1}, periods[0].Label)  // truncated DJF
	require.Equal(t, Date{2000, 3, 1}, periods[1].Label)  // MAM
	require.Equal(t, Date{2000, 6, 1}, periods[2].Label)  // JJA
	require.Equal(t, Date{2000, 9, 1}, periods[3].Label)  // SON
	require.Equal(t, Date{2000, 12, 1}, periods[4].Label) // next DJF, truncated
	require.Equal(t, 59, periods[0].Len())
	require.Equal(t, 92, periods[1].Len())
	require.Equal(t, 31, periods[4].Len())
}

func TestPeriodBoundaries_Weekly(t *testing.T) {
	axis := mustAxis(t, Date{2000, 1, 1}, Standard, 16)

	periods, err := axis.PeriodBoundaries("W")
	require.NoError(t, err)

	require.Len(t, periods, 3)
	require.Equal(t, 7, periods[0].Len())
	require.Equal(t, 7, periods[1].Len())
	require.Equal(t, 2, periods[2].Len())
}

func TestPeriodBoundaries_Daily(t *testing.T) {
	axis := mustAxis(t, Date{2000, 1, 1}, Standard, 3)

	periods, err := axis.PeriodBoundaries("D")
	require.NoError(t, err)

	require.Len(t, periods, 3)
	for i, p := range periods {
		require.Equal(t, 1, p.Len())
		require.Equal(t, i, p.Start)
	}
}

func TestPeriodBoundaries_CoverAxisExactly(t *testing.T) {
	axis := mustAxis(t, Date{2000, 3, 17}, AllLeap, 500)

	for _, freq := range []string{"D", "W", "MS", "QS", "QS-DEC", "YS", "YS-JUL"} {
		periods, err := axis.PeriodBoundaries(freq)
		require.NoError(t, err)
		require.NotEmpty(t, periods, freq)

		next := 0
		for _, p := range periods {
			require.Equal(t, next, p.Start, "%s: gap or overlap", freq)
			require.Greater(t, p.End, p.Start, "%s: empty period", freq)
			next = p.End
		}
		require.Equal(t, axis.N, next, "%s: periods must cover the axis", freq)
	}
}

func TestPeriodBoundaries_EmptyAxis(t *testing.T) {
	axis := mustAxis(t, Date{2000, 1, 1}, Standard, 0)

	periods, err := axis.PeriodBoundaries("YS")
	require.NoError(t, err)
	require.Empty(t, periods)
}

func TestPeriodBoundaries_UnsupportedFrequency(t *testing.T) {
	axis := mustAxis(t, Date{2000, 1, 1}, Standard, 10)

	for _, freq := range []string{"", "H", "M", "Y", "2D", "YS-XXX", "W-MON", "D-JAN"} {
		_, err := axis.PeriodBoundaries(freq)
		require.ErrorIs(t, err, ErrUnsupportedFrequency, "freq %q", freq)
	}
}
