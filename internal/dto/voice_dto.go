package dto

type VoiceChatResponse struct {
	Transcript string      `json:"transcript"`
	Reply      string      `json:"reply"`
	Sources    []SourceDTO `json:"sources,omitempty"`
}

type SynthesizeRequest struct {
	Text string `json:"text" validate:"required"`
}
