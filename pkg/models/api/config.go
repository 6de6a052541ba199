package api

type Locale struct {
	Code string `json:"code"`
	ISO  string `json:"iso"`
	File string `json:"file"`
	Dir  string `json:"dir"`
}

type RuntimeConfig struct {
	Environment    string   `json:"environment"`
	BaseURL        string   `json:"baseURL"`
	PDFServiceURL  string   `json:"pdfServiceURL"`
	TrackingID     string   `json:"trackingId"`
	DefaultLocale  string   `json:"defaultLocale"`
	FallbackLocale string   `json:"fallbackLocale"`
	Locales        []Locale `json:"locales"`
}
