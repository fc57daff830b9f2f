package models

// AnalyzeImageResponse is the JSON body returned by POST /api/doctor/analyze.
type AnalyzeImageResponse struct {
	Analysis string `json:"analysis"`
}

// TranscribeResponse is the JSON body returned by POST /api/doctor/transcribe.
type TranscribeResponse struct {
	Text string `json:"text"`
}

// SpeakRequest is the JSON body accepted by POST /api/doctor/speak.
type SpeakRequest struct {
	Text string `json:"text"`
}

// SpeakResponse points at the stored audio artifact for a spoken reply.
type SpeakResponse struct {
	AudioKey string `json:"audio_key"`
}
