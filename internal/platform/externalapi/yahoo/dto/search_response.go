package dto

// SearchResponse represents the JSON response from the v1/finance/search
// endpoint. Only the news portion is consumed.
type SearchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Link                string `json:"link"`
		Publisher           string `json:"publisher"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}
