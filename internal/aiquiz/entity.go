package aiquiz

// SourceDocument is one file from the source directory, either plain text or
// raw bytes the model reads itself (PDF).
type SourceDocument struct {
	Name     string
	MIMEType string
	Data     []byte
}

func (d SourceDocument) IsText() bool {
	return d.MIMEType == mimeText
}

type GenerationRequest struct {
	System      string
	Sources     []SourceDocument
	Count       int
	Corrections []string
}

type GenerateRequest struct {
	Count int `json:"count"`
}

type GenerateResponse struct {
	Path    string         `json:"path"`
	Count   int            `json:"count"`
	ByKind  map[string]int `json:"by_kind"`
	Sources []string       `json:"sources"`
}
