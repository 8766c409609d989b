package archive

// ListRawOutputsRequest selects one UTC day of archived outputs
type ListRawOutputsRequest struct {
	Day string `query:"day" validate:"omitempty,datetime=2006-01-02"`
}

// RawOutput is one archived model output with a short-lived download link
type RawOutput struct {
	Key string `json:"key"`
	URL string `json:"url,omitempty"`
}

// ListRawOutputsResponse lists the outputs archived on Day
type ListRawOutputsResponse struct {
	Day     string      `json:"day"`
	Outputs []RawOutput `json:"outputs"`
}

// RedecodeRequest names an archived output to run through the decoder again
type RedecodeRequest struct {
	Key string `json:"key" validate:"required"`
}
