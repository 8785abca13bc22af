package service

import (
	"context"
	"io"

	"ai-concierge-be/internal/dto"
	"ai-concierge-be/pkg/speech"
)

type IVoiceService interface {
	// VoiceChat transcribes the audio, runs a normal chat turn, and returns
	// the reply both as text and as synthesized WAV audio.
	VoiceChat(ctx context.Context, userID string, audio io.Reader, filename string) (*dto.VoiceChatResponse, []byte, error)
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type voiceService struct {
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
	concierge   IConciergeService
}

func NewVoiceService(transcriber speech.Transcriber, synthesizer speech.Synthesizer, concierge IConciergeService) IVoiceService {
	return &voiceService{
		transcriber: transcriber,
		synthesizer: synthesizer,
		concierge:   concierge,
	}
}

func (s *voiceService) VoiceChat(ctx context.Context, userID string, audio io.Reader, filename string) (*dto.VoiceChatResponse, []byte, error) {
	transcript, err := s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return nil, nil, dto.NewUpstreamError("transcription", err)
	}

	chatResp, err := s.concierge.SendChat(ctx, userID, &dto.SendChatRequest{Message: transcript})
	if err != nil {
		return nil, nil, err
	}

	wav, err := s.synthesizer.Synthesize(ctx, chatResp.Reply)
	if err != nil {
		return nil, nil, dto.NewUpstreamError("speech synthesis", err)
	}

	return &dto.VoiceChatResponse{
		Transcript: transcript,
		Reply:      chatResp.Reply,
		Sources:    chatResp.Sources,
	}, wav, nil
}

func (s *voiceService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	wav, err := s.synthesizer.Synthesize(ctx, text)
	if err != nil {
		return nil, dto.NewUpstreamError("speech synthesis", err)
	}
	return wav, nil
}
