package contract

// Offer is a single marketplace listing extracted from a search results page.
// Title is optional; the extraction provider omits it when the page does not
// expose a product name.
type Offer struct {
	Price  float64 `json:"price"`
	Seller string  `json:"seller"`
	URL    string  `json:"url"`
	Title  string  `json:"title,omitempty"`
}

// PriceRecord is the reference price read from the system of record.
type PriceRecord struct {
	ProductCode string  `json:"product_code"`
	Price       float64 `json:"price"`
	UpdatedAt   string  `json:"updated_at"`
}

// AlertMessage carries everything the notifier needs to render one alert.
// It lives for a single workflow run and is never persisted.
type AlertMessage struct {
	ProductName  string  `json:"product_name"`
	DBPrice      float64 `json:"db_price"`
	CurrentPrice float64 `json:"current_price"`
	PriceDiff    float64 `json:"price_diff"`
	DiscountRate float64 `json:"discount_rate"`
	Seller       string  `json:"seller"`
	URL          string  `json:"url"`
}

// AlertResult is the outcome of a single delivery attempt.
type AlertResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WorkflowResult is the summary returned by one monitoring run. On failure
// only Success, Step, and Message are populated.
type WorkflowResult struct {
	Success bool   `json:"success"`
	Step    string `json:"step,omitempty"`
	Message string `json:"message,omitempty"`

	DBPrice      float64      `json:"db_price,omitempty"`
	CurrentPrice float64      `json:"current_price,omitempty"`
	PriceDiff    float64      `json:"price_diff,omitempty"`
	DiscountRate float64      `json:"discount_rate,omitempty"`
	Seller       string       `json:"seller,omitempty"`
	URL          string       `json:"url,omitempty"`
	ProductName  string       `json:"product_name,omitempty"`
	AlertSent    bool         `json:"slack_alert_sent"`
	AlertResult  *AlertResult `json:"slack_alert_result,omitempty"`
}
