package dto

// PhotoResponse has the canonical photo shape application details store,
// so clients can attach it to a submission unchanged.
type PhotoResponse struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Type   string `json:"type"`
}
