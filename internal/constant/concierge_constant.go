package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Default task booked through the scheduling command
	ScheduledTaskTitle       = "AI Demo"
	ScheduledTaskDescription = "Scheduled AI technology demonstration"

	// Canned replies for non-generative turns
	FeedbackThanksReply = "Thanks for the feedback! I'll adjust my future answers."
	NoTasksReply        = "You have nothing scheduled."

	// Retrieval tuning
	SourceExcerptLimit = 100
)
