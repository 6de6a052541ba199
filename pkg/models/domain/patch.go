package domain

import (
	"encoding/json"
)

// WeeklyReportPatch is a partial WeeklyReport. Only keys that are Set overwrite
// the current value on merge; cachedAt is owned by the store and never patched.
type WeeklyReportPatch struct {
	SelectedYear     Field[*int]              `json:"selectedYear"`
	SelectedMonth    Field[*int]              `json:"selectedMonth"`
	WeekNumber       Field[*int]              `json:"weekNumber"`
	SelectedProducts Field[[]json.RawMessage] `json:"selectedProductsObjects"`

	AvailableYears  Field[[]json.RawMessage] `json:"availableYears"`
	AvailableMonths Field[[]json.RawMessage] `json:"availableMonths"`
	AvailableWeeks  Field[[]json.RawMessage] `json:"availableWeeks"`
	AllProducts     Field[[]json.RawMessage] `json:"allProducts"`
	AllMarkets      Field[[]json.RawMessage] `json:"allMarkets"`

	WeekStartDate Field[*Timestamp] `json:"weekStartDate"`
	WeekEndDate   Field[*Timestamp] `json:"weekEndDate"`

	MarketPrices        Field[json.RawMessage] `json:"marketPricesData"`
	NationalSummary     Field[json.RawMessage] `json:"nationalSummaryData"`
	Trends              Field[json.RawMessage] `json:"trendsData"`
	RegionalWage        Field[json.RawMessage] `json:"regionalWageData"`
	NationalPriceTrends Field[json.RawMessage] `json:"nationalPriceTrendsData"`
	EnergyPrices        Field[json.RawMessage] `json:"energyPricesData"`
	ExchangeRates       Field[json.RawMessage] `json:"exchangeRatesData"`
	HistoricalTrends    Field[json.RawMessage] `json:"historicalTrendsData"`
}

// Apply overwrites every Set key of p in r. Values are copied so the patch can
// be reused by the caller.
func (p WeeklyReportPatch) Apply(r *WeeklyReport) {
	if p.SelectedYear.Set {
		r.SelectedYear = cloneInt(p.SelectedYear.Value)
	}
	if p.SelectedMonth.Set {
		r.SelectedMonth = cloneInt(p.SelectedMonth.Value)
	}
	if p.WeekNumber.Set {
		r.WeekNumber = cloneInt(p.WeekNumber.Value)
	}
	applyList(p.SelectedProducts, &r.SelectedProducts)
	applyList(p.AvailableYears, &r.AvailableYears)
	applyList(p.AvailableMonths, &r.AvailableMonths)
	applyList(p.AvailableWeeks, &r.AvailableWeeks)
	applyList(p.AllProducts, &r.AllProducts)
	applyList(p.AllMarkets, &r.AllMarkets)
	applyTimestamp(p.WeekStartDate, &r.WeekStartDate)
	applyTimestamp(p.WeekEndDate, &r.WeekEndDate)
	applyRaw(p.MarketPrices, &r.MarketPrices)
	applyRaw(p.NationalSummary, &r.NationalSummary)
	applyRaw(p.Trends, &r.Trends)
	applyRaw(p.RegionalWage, &r.RegionalWage)
	applyRaw(p.NationalPriceTrends, &r.NationalPriceTrends)
	applyRaw(p.EnergyPrices, &r.EnergyPrices)
	applyRaw(p.ExchangeRates, &r.ExchangeRates)
	applyRaw(p.HistoricalTrends, &r.HistoricalTrends)
}

// Keys lists the JSON keys present in the patch, in declaration order.
func (p WeeklyReportPatch) Keys() []string {
	var keys []string
	for _, e := range p.entries() {
		keys = append(keys, e.key)
	}
	return keys
}

// MarshalJSON emits only the keys that are Set.
func (p WeeklyReportPatch) MarshalJSON() ([]byte, error) {
	out := make(map[string]any)
	for _, e := range p.entries() {
		out[e.key] = e.value
	}
	return json.Marshal(out)
}

type patchEntry struct {
	key   string
	value any
}

func (p WeeklyReportPatch) entries() []patchEntry {
	var out []patchEntry
	add := func(key string, set bool, value any) {
		if set {
			out = append(out, patchEntry{key: key, value: value})
		}
	}
	add("selectedYear", p.SelectedYear.Set, p.SelectedYear.Value)
	add("selectedMonth", p.SelectedMonth.Set, p.SelectedMonth.Value)
	add("weekNumber", p.WeekNumber.Set, p.WeekNumber.Value)
	add("selectedProductsObjects", p.SelectedProducts.Set, p.SelectedProducts.Value)
	add("availableYears", p.AvailableYears.Set, p.AvailableYears.Value)
	add("availableMonths", p.AvailableMonths.Set, p.AvailableMonths.Value)
	add("availableWeeks", p.AvailableWeeks.Set, p.AvailableWeeks.Value)
	add("allProducts", p.AllProducts.Set, p.AllProducts.Value)
	add("allMarkets", p.AllMarkets.Set, p.AllMarkets.Value)
	add("weekStartDate", p.WeekStartDate.Set, p.WeekStartDate.Value)
	add("weekEndDate", p.WeekEndDate.Set, p.WeekEndDate.Value)
	add("marketPricesData", p.MarketPrices.Set, rawValue(p.MarketPrices.Value))
	add("nationalSummaryData", p.NationalSummary.Set, rawValue(p.NationalSummary.Value))
	add("trendsData", p.Trends.Set, rawValue(p.Trends.Value))
	add("regionalWageData", p.RegionalWage.Set, rawValue(p.RegionalWage.Value))
	add("nationalPriceTrendsData", p.NationalPriceTrends.Set, rawValue(p.NationalPriceTrends.Value))
	add("energyPricesData", p.EnergyPrices.Set, rawValue(p.EnergyPrices.Value))
	add("exchangeRatesData", p.ExchangeRates.Set, rawValue(p.ExchangeRates.Value))
	add("historicalTrendsData", p.HistoricalTrends.Set, rawValue(p.HistoricalTrends.Value))
	return out
}

func rawValue(m json.RawMessage) any {
	if m == nil {
		return nil
	}
	return m
}

func applyList(f Field[[]json.RawMessage], dst *[]json.RawMessage) {
	if f.Set {
		*dst = cloneRawList(f.Value)
	}
}

func applyTimestamp(f Field[*Timestamp], dst **Timestamp) {
	if f.Set {
		*dst = cloneTimestamp(f.Value)
	}
}

func applyRaw(f Field[json.RawMessage], dst *json.RawMessage) {
	if f.Set {
		*dst = normalizeRaw(f.Value)
	}
}
