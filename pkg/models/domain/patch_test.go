package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyReportPatch_UnmarshalTracksPresence(t *testing.T) {
	var patch WeeklyReportPatch
	err := json.Unmarshal([]byte(`{
		"selectedYear": 2023,
		"selectedMonth": null,
		"weekStartDate": "2023-01-30",
		"exchangeRatesData": {"usd": 89.1},
		"unknownKey": true
	}`), &patch)
	require.NoError(t, err)

	assert.True(t, patch.SelectedYear.Set)
	assert.Equal(t, 2023, *patch.SelectedYear.Value)
	assert.True(t, patch.SelectedMonth.Set)
	assert.Nil(t, patch.SelectedMonth.Value)
	assert.False(t, patch.WeekNumber.Set)
	assert.True(t, patch.WeekStartDate.Set)
	assert.Equal(t, "2023-01-30", patch.WeekStartDate.Value.String())
	assert.Equal(t, []string{"selectedYear", "selectedMonth", "weekStartDate", "exchangeRatesData"}, patch.Keys())
}

func TestWeeklyReportPatch_RejectsWrongTypes(t *testing.T) {
	var patch WeeklyReportPatch
	err := json.Unmarshal([]byte(`{"weekNumber": "five"}`), &patch)
	assert.Error(t, err)
}

func TestWeeklyReportPatch_Apply(t *testing.T) {
	report := EmptyWeeklyReport()
	year := 2021
	report.SelectedYear = &year
	report.ExchangeRates = json.RawMessage(`{"usd":1}`)

	var patch WeeklyReportPatch
	require.NoError(t, json.Unmarshal([]byte(`{
		"exchangeRatesData": null,
		"allProducts": [{"id": 1}, {"id": 2}],
		"trendsData": {"up": 3}
	}`), &patch))
	patch.Apply(&report)

	assert.Equal(t, 2021, *report.SelectedYear)
	assert.Nil(t, report.ExchangeRates)
	assert.Len(t, report.AllProducts, 2)
	assert.JSONEq(t, `{"id": 2}`, string(report.AllProducts[1]))
	assert.JSONEq(t, `{"up": 3}`, string(report.Trends))
	assert.JSONEq(t, `[]`, string(report.MarketPrices))
	assert.Nil(t, report.CachedAt)
}

func TestWeeklyReportPatch_MarshalOnlySetKeys(t *testing.T) {
	patch := WeeklyReportPatch{
		WeekNumber:    Some[*int](nil),
		MarketPrices:  Some(json.RawMessage(`[1,2]`)),
		ExchangeRates: Some[json.RawMessage](nil),
	}

	data, err := json.Marshal(patch)
	require.NoError(t, err)
	assert.JSONEq(t, `{"weekNumber": null, "marketPricesData": [1,2], "exchangeRatesData": null}`, string(data))
}

func TestTimestamp_KeepsValueAsReceived(t *testing.T) {
	tests := []struct {
		name  string
		input string
		text  string
	}{
		{name: "bare date", input: `"2024-02-29"`, text: "2024-02-29"},
		{name: "time of day with offset", input: `"2024-01-22T18:30:00+06:00"`, text: "2024-01-22T18:30:00+06:00"},
		{name: "space separated", input: `"2024-01-22 00:00:00"`, text: "2024-01-22 00:00:00"},
		{name: "no offset", input: `"2024-01-22T00:00:00"`, text: "2024-01-22T00:00:00"},
		{name: "free text", input: `"week 9"`, text: "week 9"},
		{name: "unix millis", input: `1705946400000`, text: "1705946400000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var patch WeeklyReportPatch
			require.NoError(t, json.Unmarshal([]byte(`{"weekStartDate": `+tc.input+`, "weekNumber": 4}`), &patch))

			report := EmptyWeeklyReport()
			patch.Apply(&report)

			require.NotNil(t, report.WeekStartDate)
			assert.Equal(t, tc.text, report.WeekStartDate.String())
			assert.Equal(t, tc.input, string(report.WeekStartDate.Raw()))
			assert.Equal(t, 4, *report.WeekNumber)

			out, err := json.Marshal(report.WeekStartDate)
			require.NoError(t, err)
			assert.Equal(t, tc.input, string(out))
		})
	}
}

func TestTimestamp_NullClears(t *testing.T) {
	report := EmptyWeeklyReport()
	end := NewTimestamp("2024-01-28")
	report.WeekEndDate = &end

	var patch WeeklyReportPatch
	require.NoError(t, json.Unmarshal([]byte(`{"weekEndDate": null}`), &patch))
	patch.Apply(&report)

	assert.True(t, patch.WeekEndDate.Set)
	assert.Nil(t, report.WeekEndDate)
}

func TestState_Clone(t *testing.T) {
	st := NewState()
	st.CountryID = "kg"
	week := 4
	st.WeeklyReport.WeekNumber = &week
	start := NewTimestamp("2024-01-22T00:00:00+06:00")
	st.WeeklyReport.WeekStartDate = &start

	c := st.Clone()
	*c.WeeklyReport.WeekNumber = 5
	*c.WeeklyReport.WeekStartDate = NewTimestamp("2024-01-29")

	assert.Equal(t, 4, *st.WeeklyReport.WeekNumber)
	assert.Equal(t, "2024-01-22T00:00:00+06:00", st.WeeklyReport.WeekStartDate.String())
	assert.Equal(t, "kg", c.CountryID)
}
