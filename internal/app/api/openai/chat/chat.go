package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	apperrors "meeting-minutes/internal/app/errors"
	"meeting-minutes/internal/app/logging"
)

// SummaryRequest carries everything the report prompt is built from.
type SummaryRequest struct {
	Transcript  string
	Instruction string
	ContextText string
	// GeneralInfo is the JSON encoded meeting metadata from the upload form.
	GeneralInfo string
}

// GeneralInfo is the meeting metadata entered alongside an upload.
type GeneralInfo struct {
	MeetingDate     string `json:"meetingDate"`
	MeetingLocation string `json:"meetingLocation"`
	Participants    string `json:"participants"`
	Absentees       string `json:"absentees"`
	MeetingPurpose  string `json:"meetingPurpose"`
	Confidentiality string `json:"confidentiality"`
}

// Summarizer turns a finished transcript into an HTML meeting report.
type Summarizer struct {
	client       *openai.Client
	model        string
	systemPrompt string
	logger       *zap.Logger
}

// NewSummarizer reads the system prompt once; a missing prompt is fatal.
func NewSummarizer(client *openai.Client, model string, systemPromptPath string, logger *zap.Logger) (*Summarizer, error) {
	prompt, err := os.ReadFile(systemPromptPath)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrSystemPromptRead.Error())
	}
	return NewSummarizerWithPrompt(client, model, string(prompt), logger), nil
}

// NewSummarizerWithPrompt builds a Summarizer around an in-memory prompt.
func NewSummarizerWithPrompt(client *openai.Client, model string, systemPrompt string, logger *zap.Logger) *Summarizer {
	if model == "" {
		model = openai.GPT4o
	}
	return &Summarizer{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
		logger:       logging.OrNop(logger),
	}
}

// Summarize sends the transcript with the prompt to the chat completion API.
func (s *Summarizer) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	s.logger.Info("Preparing to generate summary from transcribed text",
		zap.Int("transcript_chars", len(req.Transcript)))

	request := openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: s.BuildMessages(req),
	}
	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		s.logger.Error("Summary generation error", zap.Error(err))
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("failed to generate summary: empty response")
	}

	s.logger.Info("Summary generation completed successfully")
	return resp.Choices[0].Message.Content, nil
}

// BuildMessages returns the system and user messages for req.
func (s *Summarizer) BuildMessages(req SummaryRequest) []openai.ChatCompletionMessage {
	var system strings.Builder
	system.WriteString(s.systemPrompt)
	if req.Instruction != "" {
		system.WriteString("\nInstructie: ")
		system.WriteString(req.Instruction)
	}
	system.WriteString("\nGebruik de volgende algemene gegevens: ")
	system.WriteString(s.formatGeneralInfo(req.GeneralInfo))
	system.WriteString("\nGebruik deze context (indien aanwezig): ")
	system.WriteString(req.ContextText)
	system.WriteString(". Genereer in HTML zonder onnodige tags bovenaan (gebruik HTML dus alleen voor de kopjes etc.) en zonder '''html bovenaan")

	return []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: system.String(),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: "Hier is de transcriptie. Maak een verslag:\n" + req.Transcript,
		},
	}
}

// formatGeneralInfo renders the metadata block; unparsable input is used raw.
func (s *Summarizer) formatGeneralInfo(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	var info GeneralInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		s.logger.Warn("Error parsing general info; using raw value", zap.Error(err))
		return raw
	}

	return "Algemene Gegevens:\n" +
		"Datum: " + info.MeetingDate + "\n" +
		"Locatie: " + info.MeetingLocation + "\n" +
		"Deelnemers: " + info.Participants + "\n" +
		"Afwezigen: " + info.Absentees + "\n" +
		"Doel van het gesprek: " + info.MeetingPurpose + "\n" +
		"Vertrouwelijkheid: " + info.Confidentiality + "\n"
}
