package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/agroinform/prices-web/pkg/models/api"
)

type TableConfig struct {
	NameWidth  int
	ValueWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:  28,
		ValueWidth: 48,
	}
}

type Row struct {
	Name  string
	Value string
}

type Section struct {
	Title string
	Rows  []Row
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const sectionsTemplate = `{{range .}}
=== {{.Title}} ===
{{separator}}
{{formatRow "Name" "Value"}}
{{separator}}
{{range .Rows}}{{formatRow .Name .Value}}
{{end}}{{separator}}
{{end}}`

func (c *Reporter) render(sections []Section) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, value string) string {
			return fmt.Sprintf("| %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
	}

	t, err := template.New("report").Funcs(funcMap).Parse(sectionsTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, sections)
}

// HandleState prints the global flags and a summary of the weekly report cache.
func (c *Reporter) HandleState(st *api.State) error {
	wr := st.WeeklyReport
	return c.render([]Section{
		{
			Title: "Application",
			Rows: []Row{
				{Name: "countryId", Value: quoted(st.CountryID)},
				{Name: "loading", Value: fmt.Sprintf("%t", st.Loading)},
			},
		},
		{
			Title: "Weekly Report",
			Rows: []Row{
				{Name: "selectedYear", Value: optionalInt(wr.SelectedYear)},
				{Name: "selectedMonth", Value: optionalInt(wr.SelectedMonth)},
				{Name: "weekNumber", Value: optionalInt(wr.WeekNumber)},
				{Name: "weekStartDate", Value: describeValue(wr.WeekStartDate)},
				{Name: "weekEndDate", Value: describeValue(wr.WeekEndDate)},
				{Name: "selectedProductsObjects", Value: countItems(wr.SelectedProductsObjects)},
				{Name: "availableYears", Value: countItems(wr.AvailableYears)},
				{Name: "availableMonths", Value: countItems(wr.AvailableMonths)},
				{Name: "availableWeeks", Value: countItems(wr.AvailableWeeks)},
				{Name: "allProducts", Value: countItems(wr.AllProducts)},
				{Name: "allMarkets", Value: countItems(wr.AllMarkets)},
				{Name: "marketPricesData", Value: describePayload(wr.MarketPricesData)},
				{Name: "nationalSummaryData", Value: describePayload(wr.NationalSummaryData)},
				{Name: "trendsData", Value: describePayload(wr.TrendsData)},
				{Name: "regionalWageData", Value: describePayload(wr.RegionalWageData)},
				{Name: "nationalPriceTrendsData", Value: describePayload(wr.NationalPriceTrendsData)},
				{Name: "energyPricesData", Value: describePayload(wr.EnergyPricesData)},
				{Name: "exchangeRatesData", Value: describePayload(wr.ExchangeRatesData)},
				{Name: "historicalTrendsData", Value: describePayload(wr.HistoricalTrendsData)},
				{Name: "cachedAt", Value: cachedAt(wr.CachedAt)},
				{Name: "stale", Value: fmt.Sprintf("%t", wr.Stale)},
			},
		},
	})
}

func (c *Reporter) HandleConfig(cfg *api.RuntimeConfig) error {
	locales := make([]Row, 0, len(cfg.Locales))
	for _, l := range cfg.Locales {
		locales = append(locales, Row{Name: l.Code, Value: fmt.Sprintf("%s (%s, %s)", l.ISO, l.File, l.Dir)})
	}

	return c.render([]Section{
		{
			Title: "Runtime",
			Rows: []Row{
				{Name: "environment", Value: cfg.Environment},
				{Name: "baseURL", Value: cfg.BaseURL},
				{Name: "pdfServiceURL", Value: cfg.PDFServiceURL},
				{Name: "trackingId", Value: cfg.TrackingID},
				{Name: "defaultLocale", Value: cfg.DefaultLocale},
				{Name: "fallbackLocale", Value: cfg.FallbackLocale},
			},
		},
		{
			Title: "Locales",
			Rows:  locales,
		},
	})
}

func quoted(s string) string {
	return fmt.Sprintf("%q", s)
}

func optionalInt(v *int) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%d", *v)
}

// describeValue prints a string value without quotes and anything else as raw JSON.
func describeValue(m json.RawMessage) string {
	trimmed := strings.TrimSpace(string(m))
	if trimmed == "" {
		return "null"
	}
	var s string
	if err := json.Unmarshal(m, &s); err == nil {
		return s
	}
	return trimmed
}

func countItems(items []json.RawMessage) string {
	if items == nil {
		return "null"
	}
	return fmt.Sprintf("%d items", len(items))
}

func describePayload(m json.RawMessage) string {
	trimmed := strings.TrimSpace(string(m))
	if trimmed == "" || trimmed == "null" {
		return "null"
	}
	var list []json.RawMessage
	if err := json.Unmarshal(m, &list); err == nil {
		return fmt.Sprintf("%d items", len(list))
	}
	return fmt.Sprintf("object (%d bytes)", len(trimmed))
}

func cachedAt(ms *int64) string {
	if ms == nil {
		return "null"
	}
	return time.UnixMilli(*ms).UTC().Format(time.RFC3339)
}
