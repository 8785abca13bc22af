package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"ai-concierge-be/internal/constant"
	"ai-concierge-be/internal/dto"
	"ai-concierge-be/pkg/events"
	"ai-concierge-be/pkg/grading"
	"ai-concierge-be/pkg/llm"
	"ai-concierge-be/pkg/prompt"
	"ai-concierge-be/pkg/reflection"
	"ai-concierge-be/pkg/retrieval"
	"ai-concierge-be/pkg/router"
	"ai-concierge-be/pkg/session"
	"ai-concierge-be/pkg/tasks"
)

// IConciergeService defines the concierge service interface
type IConciergeService interface {
	SendChat(ctx context.Context, userID string, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	StreamChat(ctx context.Context, userID, message string) (<-chan string, error)
	SubmitFeedback(ctx context.Context, userID string, positive bool) (*dto.SubmitFeedbackResponse, error)
}

// conciergeService coordinates the retrieval, grading, and feedback
// components for one chat turn
type conciergeService struct {
	retriever retrieval.Retriever
	grader    grading.Grader
	refiner   *grading.Refiner
	provider  llm.LLMProvider
	sessions  *session.Store
	taskStore *tasks.Store
	ledger    *reflection.Ledger
	publisher IPublisherService

	msgRouter    *router.Router
	engineLogger *log.Logger

	topK               int
	relevanceThreshold float64
}

// NewConciergeService creates the concierge service with all domain components
func NewConciergeService(
	retriever retrieval.Retriever,
	grader grading.Grader,
	refiner *grading.Refiner,
	provider llm.LLMProvider,
	sessions *session.Store,
	taskStore *tasks.Store,
	ledger *reflection.Ledger,
	publisher IPublisherService,
	topK int,
	relevanceThreshold float64,
) IConciergeService {
	engineLogger := initEngineLogger()

	s := &conciergeService{
		retriever:          retriever,
		grader:             grader,
		refiner:            refiner,
		provider:           provider,
		sessions:           sessions,
		taskStore:          taskStore,
		ledger:             ledger,
		publisher:          publisher,
		engineLogger:       engineLogger,
		topK:               topK,
		relevanceThreshold: relevanceThreshold,
	}

	msgRouter := router.NewRouter(engineLogger)
	msgRouter.Handle(router.ModeFeedback, s.handleFeedback)
	msgRouter.Handle(router.ModeSchedule, s.handleSchedule)
	msgRouter.Handle(router.ModeListTasks, s.handleListTasks)
	msgRouter.Handle(router.ModeRAG, s.handleQuestion)
	s.msgRouter = msgRouter

	return s
}

func initEngineLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "engine.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[ENGINE] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (s *conciergeService) SendChat(ctx context.Context, userID string, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	s.sessions.GetOrCreate(userID)

	outcome, err := s.msgRouter.Dispatch(ctx, userID, req.Message)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(userID, outcome), nil
}

func (s *conciergeService) buildResponse(userID string, outcome *router.Outcome) *dto.SendChatResponse {
	resp := &dto.SendChatResponse{Reply: outcome.Reply}

	for _, doc := range outcome.Docs {
		resp.Sources = append(resp.Sources, dto.SourceDTO{
			Source:  doc.Source,
			Excerpt: truncate(doc.Content, constant.SourceExcerptLimit),
		})
	}

	if outcome.Grade != nil {
		resp.Grading = &dto.GradingDTO{
			FactualRelevance: outcome.Grade.FactualRelevance,
			AnswerCoverage:   outcome.Grade.AnswerCoverage,
			RefinedQuery:     outcome.Grade.RefinedQuery,
		}
	}

	if sess, ok := s.sessions.Get(userID); ok {
		resp.Feedback = &dto.FeedbackDTO{
			SessionScore:    sess.FeedbackScore,
			CumulativeScore: s.ledger.CumulativeScore(),
		}
	}

	return resp
}

// StreamChat runs the same turn as SendChat but yields the reply in
// fragments. Command turns produce a single fragment; only the generative
// path actually streams from the model.
func (s *conciergeService) StreamChat(ctx context.Context, userID, message string) (<-chan string, error) {
	s.sessions.GetOrCreate(userID)

	parsed := router.Parse(message)
	if parsed.Mode != router.ModeRAG {
		outcome, err := s.msgRouter.Dispatch(ctx, userID, message)
		if err != nil {
			return nil, err
		}
		out := make(chan string, 1)
		out <- outcome.Reply
		close(out)
		return out, nil
	}

	docs, _, history, err := s.ragContext(ctx, userID, message)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		out := make(chan string, 1)
		out <- s.apologize(userID, message)
		close(out)
		return out, nil
	}

	stream, err := s.provider.ChatStream(ctx, history)
	if err != nil {
		return nil, dto.NewUpstreamError("llm", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		var full strings.Builder
		for fragment := range stream {
			full.WriteString(fragment)
			out <- fragment
		}
		// History keeps the complete reply even though it left in pieces
		s.sessions.RecordTurn(userID, message, full.String())
	}()

	return out, nil
}

func (s *conciergeService) SubmitFeedback(ctx context.Context, userID string, positive bool) (*dto.SubmitFeedbackResponse, error) {
	delta := 1.0
	if !positive {
		delta = -1.0
	}

	score, err := s.sessions.AdjustFeedback(userID, delta)
	if err != nil {
		return nil, err
	}

	s.ledger.AddFeedback(positive)
	if err := s.publisher.Publish(ctx, events.NewFeedbackRecorded(userID, positive, s.ledger.CumulativeScore())); err != nil {
		s.engineLogger.Printf("[ERROR] Failed to publish feedback event: %v", err)
	}

	return &dto.SubmitFeedbackResponse{SessionScore: score}, nil
}

// handleFeedback records an inline /good_answer or /bad_answer command.
// Unlike the feedback endpoint it never fails on a fresh session, since the
// chat turn itself just created one.
func (s *conciergeService) handleFeedback(ctx context.Context, userID string, msg *router.ParsedMessage) (*router.Outcome, error) {
	delta := 1.0
	if !msg.Positive {
		delta = -1.0
	}
	if _, err := s.sessions.AdjustFeedback(userID, delta); err != nil {
		return nil, err
	}

	s.ledger.AddFeedback(msg.Positive)
	if err := s.publisher.Publish(ctx, events.NewFeedbackRecorded(userID, msg.Positive, s.ledger.CumulativeScore())); err != nil {
		s.engineLogger.Printf("[ERROR] Failed to publish feedback event: %v", err)
	}

	s.sessions.RecordTurn(userID, msg.Original, constant.FeedbackThanksReply)
	return &router.Outcome{Reply: constant.FeedbackThanksReply}, nil
}

func (s *conciergeService) handleSchedule(ctx context.Context, userID string, msg *router.ParsedMessage) (*router.Outcome, error) {
	task := s.taskStore.Add(userID, constant.ScheduledTaskTitle, msg.When, constant.ScheduledTaskDescription)

	if err := s.publisher.Publish(ctx, events.NewTaskScheduled(userID, task.Title, task.When)); err != nil {
		s.engineLogger.Printf("[ERROR] Failed to publish task event: %v", err)
	}

	reply := fmt.Sprintf("Scheduled \"%s\" for %s.", task.Title, task.When)
	s.sessions.RecordTurn(userID, msg.Original, reply)
	return &router.Outcome{Reply: reply}, nil
}

func (s *conciergeService) handleListTasks(ctx context.Context, userID string, msg *router.ParsedMessage) (*router.Outcome, error) {
	list := s.taskStore.List(userID)
	if len(list) == 0 {
		s.sessions.RecordTurn(userID, msg.Original, constant.NoTasksReply)
		return &router.Outcome{Reply: constant.NoTasksReply}, nil
	}

	var b strings.Builder
	b.WriteString("Here is what you have scheduled:\n")
	for i, task := range list {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, task.Title, task.When)
	}

	reply := strings.TrimRight(b.String(), "\n")
	s.sessions.RecordTurn(userID, msg.Original, reply)
	return &router.Outcome{Reply: reply}, nil
}

func (s *conciergeService) handleQuestion(ctx context.Context, userID string, msg *router.ParsedMessage) (*router.Outcome, error) {
	docs, grade, history, err := s.ragContext(ctx, userID, msg.Original)
	if err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return &router.Outcome{Reply: s.apologize(userID, msg.Original), Grade: grade}, nil
	}

	reply, err := s.provider.Chat(ctx, history)
	if err != nil {
		return nil, dto.NewUpstreamError("llm", err)
	}

	s.sessions.RecordTurn(userID, msg.Original, reply)
	return &router.Outcome{Reply: reply, Docs: docs, Grade: grade}, nil
}

// ragContext retrieves and grades context for the question, refining the
// query once when relevance falls below the threshold, and assembles the
// chat history the model will see.
func (s *conciergeService) ragContext(ctx context.Context, userID, question string) ([]retrieval.Document, *grading.Result, []llm.Message, error) {
	result, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return nil, nil, nil, dto.NewUpstreamError("retrieval", err)
	}

	grade, err := s.grader.Grade(ctx, question, result)
	if err != nil {
		return nil, nil, nil, err
	}
	s.engineLogger.Printf("[INFO] Grading for user %s: relevance=%.2f coverage=%.2f", userID, grade.FactualRelevance, grade.AnswerCoverage)

	if grade.FactualRelevance < s.relevanceThreshold && s.refiner != nil {
		result, grade = s.refineOnce(ctx, question, result, grade)
	}

	sysPrompt := prompt.NewBuilder(s.ledger.PromptModifier(), result.Docs).Build()

	history := []llm.Message{{Role: constant.ChatMessageRoleSystem, Content: sysPrompt}}
	if sess, ok := s.sessions.Get(userID); ok {
		for _, turn := range sess.History {
			history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
		}
	}
	history = append(history, llm.Message{Role: constant.ChatMessageRoleUser, Content: question})

	return result.Docs, grade, history, nil
}

// refineOnce rewrites the query and re-retrieves, keeping whichever round
// graded higher. Refinement failures fall back to the original result.
func (s *conciergeService) refineOnce(ctx context.Context, question string, result *retrieval.RetrievalResult, grade *grading.Result) (*retrieval.RetrievalResult, *grading.Result) {
	refined, err := s.refiner.Refine(ctx, question)
	if err != nil {
		if !errors.Is(err, grading.ErrNoImprovement) {
			s.engineLogger.Printf("[DEBUG] Query refinement failed: %v", err)
		}
		return result, grade
	}

	s.engineLogger.Printf("[INFO] Refined query: '%s' -> '%s'", question, refined)

	refinedResult, err := s.retriever.Retrieve(ctx, refined, s.topK)
	if err != nil {
		return result, grade
	}
	refinedGrade, err := s.grader.Grade(ctx, question, refinedResult)
	if err != nil {
		return result, grade
	}

	if refinedGrade.FactualRelevance > grade.FactualRelevance {
		refinedGrade.RefinedQuery = refined
		return refinedResult, refinedGrade
	}
	return result, grade
}

func (s *conciergeService) apologize(userID, question string) string {
	reply := "I'm sorry, my knowledge base doesn't cover that topic yet. Could you ask about our AI scheduling platform?"
	s.sessions.RecordTurn(userID, question, reply)
	return reply
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
