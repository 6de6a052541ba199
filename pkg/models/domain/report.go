package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

// WeeklyReport is the cached filter selection and fetched data of the weekly
// market report. Option sets and payloads are opaque backend documents.
type WeeklyReport struct {
	// Filter state
	SelectedYear     *int
	SelectedMonth    *int
	WeekNumber       *int
	SelectedProducts []json.RawMessage

	// Available options, in display order
	AvailableYears  []json.RawMessage
	AvailableMonths []json.RawMessage
	AvailableWeeks  []json.RawMessage
	AllProducts     []json.RawMessage
	AllMarkets      []json.RawMessage

	WeekStartDate *Timestamp
	WeekEndDate   *Timestamp

	// Backend payloads
	MarketPrices        json.RawMessage
	NationalSummary     json.RawMessage
	Trends              json.RawMessage
	RegionalWage        json.RawMessage
	NationalPriceTrends json.RawMessage
	EnergyPrices        json.RawMessage
	ExchangeRates       json.RawMessage
	HistoricalTrends    json.RawMessage

	// CachedAt is nil until the first merge and after every reset.
	CachedAt *time.Time
}

var emptyList = json.RawMessage(`[]`)

// EmptyWeeklyReport returns the record every reset restores.
func EmptyWeeklyReport() WeeklyReport {
	return WeeklyReport{
		SelectedProducts:    []json.RawMessage{},
		AvailableYears:      []json.RawMessage{},
		AvailableMonths:     []json.RawMessage{},
		AvailableWeeks:      []json.RawMessage{},
		AllProducts:         []json.RawMessage{},
		AllMarkets:          []json.RawMessage{},
		MarketPrices:        cloneRaw(emptyList),
		NationalSummary:     cloneRaw(emptyList),
		Trends:              cloneRaw(emptyList),
		RegionalWage:        cloneRaw(emptyList),
		NationalPriceTrends: cloneRaw(emptyList),
		EnergyPrices:        cloneRaw(emptyList),
	}
}

// Clone returns a copy that shares no mutable memory with r.
func (r WeeklyReport) Clone() WeeklyReport {
	c := r
	c.SelectedYear = cloneInt(r.SelectedYear)
	c.SelectedMonth = cloneInt(r.SelectedMonth)
	c.WeekNumber = cloneInt(r.WeekNumber)
	c.SelectedProducts = cloneRawList(r.SelectedProducts)
	c.AvailableYears = cloneRawList(r.AvailableYears)
	c.AvailableMonths = cloneRawList(r.AvailableMonths)
	c.AvailableWeeks = cloneRawList(r.AvailableWeeks)
	c.AllProducts = cloneRawList(r.AllProducts)
	c.AllMarkets = cloneRawList(r.AllMarkets)
	c.WeekStartDate = cloneTimestamp(r.WeekStartDate)
	c.WeekEndDate = cloneTimestamp(r.WeekEndDate)
	c.MarketPrices = cloneRaw(r.MarketPrices)
	c.NationalSummary = cloneRaw(r.NationalSummary)
	c.Trends = cloneRaw(r.Trends)
	c.RegionalWage = cloneRaw(r.RegionalWage)
	c.NationalPriceTrends = cloneRaw(r.NationalPriceTrends)
	c.EnergyPrices = cloneRaw(r.EnergyPrices)
	c.ExchangeRates = cloneRaw(r.ExchangeRates)
	c.HistoricalTrends = cloneRaw(r.HistoricalTrends)
	if r.CachedAt != nil {
		t := *r.CachedAt
		c.CachedAt = &t
	}
	return c
}

// IsStale reports whether the cached data is missing or older than maxAge.
func (r WeeklyReport) IsStale(now time.Time, maxAge time.Duration) bool {
	if r.CachedAt == nil {
		return true
	}
	return now.Sub(*r.CachedAt) > maxAge
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneRaw(m json.RawMessage) json.RawMessage {
	if m == nil {
		return nil
	}
	return append(json.RawMessage(nil), m...)
}

func cloneRawList(list []json.RawMessage) []json.RawMessage {
	if list == nil {
		return nil
	}
	out := make([]json.RawMessage, len(list))
	for i, m := range list {
		out[i] = cloneRaw(m)
	}
	return out
}

// normalizeRaw folds a JSON null into a nil message.
func normalizeRaw(m json.RawMessage) json.RawMessage {
	if m == nil || bytes.Equal(bytes.TrimSpace(m), []byte("null")) {
		return nil
	}
	return cloneRaw(m)
}
