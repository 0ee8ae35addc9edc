package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/ai-interviewer/internal/ai"
	"github.com/spigell/ai-interviewer/internal/utils"
)

//go:embed evaluate_prompt.md
var evaluatePrompt string

//go:embed summarize_prompt.md
var summarizePrompt string

//go:embed requirements_prompt.md
var requirementsPrompt string

//go:embed questions_prompt.md
var questionsPrompt string

const (
	systemInstruction = "You are an experienced recruiter conducting a spoken job interview."

	// FallbackComment is spoken to the candidate when an evaluation could
	// not be obtained.
	FallbackComment = "Sorry, I had trouble evaluating that answer."

	maxScore            = 10
	defaultMaxLogLength = 200
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Oracle implements the interview's language-model collaborators on top of a
// Gemini content generator.
type Oracle struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewOracle(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Oracle {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Oracle{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// FallbackVerdict is returned whenever an evaluation call fails or its reply
// cannot be parsed.
func FallbackVerdict() *ai.Verdict {
	return &ai.Verdict{Score: 0, Comment: FallbackComment, FollowUp: ""}
}

// Evaluate scores the answer against the question. It never fails: provider
// errors and malformed replies collapse into the fixed fallback verdict so the
// turn always receives something to act on.
func (o *Oracle) Evaluate(ctx context.Context, question, answer string) *ai.Verdict {
	prompt := render(evaluatePrompt, map[string]string{
		"QUESTION": question,
		"ANSWER":   answer,
	})

	o.logger.Debug("evaluation request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, o.maxLogLen)),
	)

	raw, err := o.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		o.logger.Warn("evaluation call failed, falling back",
			zap.String("question_preview", utils.TruncateForLog(question, o.maxLogLen)),
			zap.Error(err),
		)
		return FallbackVerdict()
	}

	o.logger.Debug("evaluation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, o.maxLogLen)),
	)

	verdict, err := parseVerdict(raw)
	if err != nil {
		o.logger.Warn("unparsable evaluation reply, falling back",
			zap.String("response_preview", utils.TruncateForLog(raw, o.maxLogLen)),
			zap.Error(err),
		)
		return FallbackVerdict()
	}

	return verdict
}

// Summarize produces a short neutral summary of the answer. A provider failure
// is returned to the caller; unlike Evaluate there is no fallback value here.
func (o *Oracle) Summarize(ctx context.Context, question, answer string) (string, error) {
	prompt := render(summarizePrompt, map[string]string{
		"QUESTION": question,
		"ANSWER":   answer,
	})

	raw, err := o.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize answer: %w", err)
	}

	return strings.TrimSpace(raw), nil
}

// ExtractRequirements distills a job description into key skills, experience
// and qualifications. The reply is free-form text.
func (o *Oracle) ExtractRequirements(ctx context.Context, jobDescription string) (string, error) {
	prompt := render(requirementsPrompt, map[string]string{
		"JOB_DESCRIPTION": jobDescription,
	})

	raw, err := o.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return "", fmt.Errorf("extract requirements: %w", err)
	}

	return strings.TrimSpace(raw), nil
}

// GenerateQuestions produces the ordered interview question list from the
// extracted requirements and the candidate resume.
func (o *Oracle) GenerateQuestions(ctx context.Context, requirements, resume string) ([]string, error) {
	prompt := render(questionsPrompt, map[string]string{
		"REQUIREMENTS": requirements,
		"RESUME":       resume,
	})

	raw, err := o.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	questions := parseQuestions(raw)
	if len(questions) == 0 {
		return nil, fmt.Errorf("no usable questions in reply: %s", utils.TruncateForLog(raw, o.maxLogLen))
	}

	o.logger.Debug("generated questions",
		zap.String("model", o.generator.Model()),
		zap.Int("count", len(questions)),
	)

	return questions, nil
}

func render(template string, values map[string]string) string {
	prompt := template
	for key, value := range values {
		prompt = strings.ReplaceAll(prompt, "{{"+key+"}}", value)
	}
	return prompt
}

func parseVerdict(raw string) (*ai.Verdict, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse evaluation reply: %w", err)
	}

	return &ai.Verdict{
		Score:    clampScore(coerceInt(data["score"])),
		Comment:  coerceString(data["comment"]),
		FollowUp: coerceString(data["follow_up"]),
	}, nil
}

// parseQuestions accepts either the requested {"questions": [...]} object or,
// when the model ignores the schema, a plain numbered list.
func parseQuestions(raw string) []string {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err == nil {
		var payload struct {
			Questions []string `json:"questions"`
		}

		cfg := &mapstructure.DecoderConfig{
			Result:  &payload,
			TagName: "json",
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err == nil && decoder.Decode(data) == nil {
			return trimNonEmpty(payload.Questions)
		}
	}

	return parseNumberedList(raw)
}

func parseNumberedList(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !unicode.IsDigit(rune(line[0])) {
			continue
		}

		line = strings.TrimLeft(line, "0123456789")
		line = strings.TrimLeft(line, ".) ")
		if line != "" {
			questions = append(questions, line)
		}
	}

	return questions
}

func trimNonEmpty(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func coerceInt(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
