package api

import "encoding/json"

type WeeklyReport struct {
	SelectedYear            *int              `json:"selectedYear"`
	SelectedMonth           *int              `json:"selectedMonth"`
	WeekNumber              *int              `json:"weekNumber"`
	SelectedProductsObjects []json.RawMessage `json:"selectedProductsObjects"`

	AvailableYears  []json.RawMessage `json:"availableYears"`
	AvailableMonths []json.RawMessage `json:"availableMonths"`
	AvailableWeeks  []json.RawMessage `json:"availableWeeks"`
	AllProducts     []json.RawMessage `json:"allProducts"`
	AllMarkets      []json.RawMessage `json:"allMarkets"`

	// Week boundaries are passed through exactly as the backend sent them.
	WeekStartDate json.RawMessage `json:"weekStartDate"`
	WeekEndDate   json.RawMessage `json:"weekEndDate"`

	MarketPricesData        json.RawMessage `json:"marketPricesData"`
	NationalSummaryData     json.RawMessage `json:"nationalSummaryData"`
	TrendsData              json.RawMessage `json:"trendsData"`
	RegionalWageData        json.RawMessage `json:"regionalWageData"`
	NationalPriceTrendsData json.RawMessage `json:"nationalPriceTrendsData"`
	EnergyPricesData        json.RawMessage `json:"energyPricesData"`
	ExchangeRatesData       json.RawMessage `json:"exchangeRatesData"`
	HistoricalTrendsData    json.RawMessage `json:"historicalTrendsData"`

	// CachedAt is unix milliseconds.
	CachedAt *int64 `json:"cachedAt"`
	Stale    bool   `json:"stale"`
}

type State struct {
	CountryID    string       `json:"countryId"`
	Loading      bool         `json:"loading"`
	WeeklyReport WeeklyReport `json:"weeklyReport"`
}

type StringValue struct {
	Value string `json:"value"`
}

type BoolValue struct {
	Value bool `json:"value"`
}
