package cloud

// Wire types for the provider's REST API.

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type submitRequest struct {
	AudioURL     string `json:"audio_url"`
	LanguageCode string `json:"language_code,omitempty"`
}

type submitResponse struct {
	ID string `json:"id"`
}

type pollResponse struct {
	Status string     `json:"status"`
	Text   string     `json:"text,omitempty"`
	Words  []wordJSON `json:"words,omitempty"`
	Error  string     `json:"error,omitempty"`
}

type wordJSON struct {
	Text       string  `json:"text"`
	StartMs    int64   `json:"start_ms"`
	EndMs      int64   `json:"end_ms"`
	Confidence float64 `json:"confidence"`
}
