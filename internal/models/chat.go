package models

// ContentKind classifies an uploaded file for prompt inclusion.
type ContentKind string

const (
	KindImage       ContentKind = "image"
	KindPDF         ContentKind = "pdf"
	KindText        ContentKind = "text"
	KindUnsupported ContentKind = "unsupported"
)

// UploadedFile is a file saved to the transient upload store for the
// duration of one request. It must be released when handling ends.
type UploadedFile struct {
	OriginalName  string
	MimeType      string
	SizeBytes     int64
	TemporaryPath string
}

// ChatRequest is one user turn: a message, uploaded files, or both.
type ChatRequest struct {
	Message string
	Files   []UploadedFile
}

// IsEmpty reports whether the request carries neither a message nor files.
func (r ChatRequest) IsEmpty() bool {
	return r.Message == "" && len(r.Files) == 0
}

// ExtractedContent is the prompt-ready representation of one uploaded file.
// EncodedPayload is only populated for images on the vision path.
type ExtractedContent struct {
	SourceFile     UploadedFile
	Kind           ContentKind
	RenderedText   string
	EncodedPayload string
}

// AssembledPrompt is the final payload for one inference call.
type AssembledPrompt struct {
	SystemPreamble string
	UserContent    string
}

// HealthStatus is the result of one backend probe. It is recomputed on
// every chat request, never cached.
type HealthStatus struct {
	BackendReachable bool
	ModelAvailable   bool
	ModelName        string
}

// ChatResult is the terminal value returned to the caller. Success implies
// Data is set and Error empty, and vice versa. Warning may accompany a
// success when the model was missing from the backend's list.
type ChatResult struct {
	Success bool
	Data    string
	Error   string
	Warning string
}

// ChatMessage is one message in the conversation sent to the backend.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the JSON body of a successful POST /api/chat.
type ChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Warning string `json:"warning,omitempty"`
}

// HealthResponse is the JSON body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Model   string `json:"model"`
	Message string `json:"message,omitempty"`
}
