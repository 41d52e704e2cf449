package dto

// RawValue is Yahoo's number wrapper ({"raw": 123.45, "fmt": "123.45"}).
type RawValue struct {
	Raw *float64 `json:"raw"`
}

// RawIntValue is the integer variant of RawValue.
type RawIntValue struct {
	Raw *int64 `json:"raw"`
}

// QuoteSummaryResponse represents the JSON response from the
// v10/finance/quoteSummary endpoint with the price and financialData modules.
type QuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				ShortName                  string      `json:"shortName"`
				LongName                   string      `json:"longName"`
				QuoteType                  string      `json:"quoteType"`
				MarketState                string      `json:"marketState"`
				RegularMarketPrice         RawValue    `json:"regularMarketPrice"`
				RegularMarketPreviousClose RawValue    `json:"regularMarketPreviousClose"`
				PreMarketPrice             RawValue    `json:"preMarketPrice"`
				MarketCap                  RawValue    `json:"marketCap"`
				RegularMarketVolume        RawIntValue `json:"regularMarketVolume"`
			} `json:"price"`
			FinancialData *struct {
				CurrentPrice RawValue `json:"currentPrice"`
			} `json:"financialData"`
		} `json:"result"`
		Error *APIError `json:"error"`
	} `json:"quoteSummary"`
}
