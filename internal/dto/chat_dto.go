package dto

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
	Stream  bool   `json:"stream,omitempty"`
}

type SendChatResponse struct {
	Reply    string       `json:"reply"`
	Sources  []SourceDTO  `json:"sources,omitempty"`
	Grading  *GradingDTO  `json:"grading,omitempty"`
	Feedback *FeedbackDTO `json:"feedback,omitempty"`
}

// SourceDTO identifies a document that contributed to the reply. Excerpt is
// truncated so responses stay small.
type SourceDTO struct {
	Source  string `json:"source"`
	Excerpt string `json:"excerpt"`
}

type GradingDTO struct {
	FactualRelevance float64 `json:"factual_relevance"`
	AnswerCoverage   float64 `json:"answer_coverage"`
	RefinedQuery     string  `json:"refined_query,omitempty"`
}

type FeedbackDTO struct {
	SessionScore    float64 `json:"session_score"`
	CumulativeScore float64 `json:"cumulative_score"`
}

type SubmitFeedbackResponse struct {
	SessionScore float64 `json:"session_score"`
}
