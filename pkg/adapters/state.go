package adapters

import (
	"encoding/json"

	"github.com/agroinform/prices-web/pkg/models/api"
	"github.com/agroinform/prices-web/pkg/models/domain"
)

func MapWeeklyReportDomainToApi(r domain.WeeklyReport, stale bool) api.WeeklyReport {
	res := api.WeeklyReport{
		SelectedYear:            r.SelectedYear,
		SelectedMonth:           r.SelectedMonth,
		WeekNumber:              r.WeekNumber,
		SelectedProductsObjects: r.SelectedProducts,
		AvailableYears:          r.AvailableYears,
		AvailableMonths:         r.AvailableMonths,
		AvailableWeeks:          r.AvailableWeeks,
		AllProducts:             r.AllProducts,
		AllMarkets:              r.AllMarkets,
		WeekStartDate:           mapTimestamp(r.WeekStartDate),
		WeekEndDate:             mapTimestamp(r.WeekEndDate),
		MarketPricesData:        r.MarketPrices,
		NationalSummaryData:     r.NationalSummary,
		TrendsData:              r.Trends,
		RegionalWageData:        r.RegionalWage,
		NationalPriceTrendsData: r.NationalPriceTrends,
		EnergyPricesData:        r.EnergyPrices,
		ExchangeRatesData:       r.ExchangeRates,
		HistoricalTrendsData:    r.HistoricalTrends,
		Stale:                   stale,
	}
	if r.CachedAt != nil {
		ms := r.CachedAt.UnixMilli()
		res.CachedAt = &ms
	}
	return res
}

func MapStateDomainToApi(s domain.State, stale bool) api.State {
	return api.State{
		CountryID:    s.CountryID,
		Loading:      s.Loading,
		WeeklyReport: MapWeeklyReportDomainToApi(s.WeeklyReport, stale),
	}
}

func mapTimestamp(t *domain.Timestamp) json.RawMessage {
	if t == nil {
		return nil
	}
	return t.Raw()
}
