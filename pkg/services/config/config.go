package config

// Config is the static application record. It is built once by Load and never
// re-read; environment dependent values are already resolved.
type Config struct {
	Environment   Environment   `mapstructure:"-"`
	SSR           bool          `mapstructure:"ssr"`
	Head          Head          `mapstructure:"head"`
	CSS           []string      `mapstructure:"css"`
	Plugins       []string      `mapstructure:"plugins"`
	Components    bool          `mapstructure:"components"`
	BuildModules  []string      `mapstructure:"buildModules"`
	Modules       []string      `mapstructure:"modules"`
	Gtag          Gtag          `mapstructure:"gtag"`
	I18n          I18n          `mapstructure:"i18n"`
	HTTP          HTTP          `mapstructure:"http"`
	Theme         Theme         `mapstructure:"theme"`
	Loading       Loading       `mapstructure:"loading"`
	PublicRuntime PublicRuntime `mapstructure:"publicRuntime"`
}

type Head struct {
	TitleTemplate string    `mapstructure:"titleTemplate"`
	Title         string    `mapstructure:"title"`
	HTMLAttrs     HTMLAttrs `mapstructure:"htmlAttrs"`
	Meta          []Meta    `mapstructure:"meta"`
	Link          []Link    `mapstructure:"link"`
}

type HTMLAttrs struct {
	Lang string `mapstructure:"lang"`
}

type Meta struct {
	Charset string `mapstructure:"charset"`
	HID     string `mapstructure:"hid"`
	Name    string `mapstructure:"name"`
	Content string `mapstructure:"content"`
}

type Link struct {
	Rel  string `mapstructure:"rel"`
	Type string `mapstructure:"type"`
	Href string `mapstructure:"href"`
}

type Gtag struct {
	ID string `mapstructure:"id"`
}

// HTTP holds the defaults of the client used to reach the prices backend.
type HTTP struct {
	BaseURL string `mapstructure:"baseURL"`
}

type Theme struct {
	CustomVariables []string       `mapstructure:"customVariables"`
	Theme           map[string]any `mapstructure:"theme"`
}

// Loading is the page loading bar.
type Loading struct {
	Color  string `mapstructure:"color"`
	Height string `mapstructure:"height"`
}

// PublicRuntime is exposed verbatim to the client application.
type PublicRuntime struct {
	BaseURL       string `mapstructure:"baseURL"`
	PDFServiceURL string `mapstructure:"pdfServiceURL"`
}
