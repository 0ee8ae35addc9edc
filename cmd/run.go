package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spigell/ai-interviewer/internal/ai/gemini"
	"github.com/spigell/ai-interviewer/internal/docs"
	"github.com/spigell/ai-interviewer/internal/interview"
	"github.com/spigell/ai-interviewer/internal/logger"
	"github.com/spigell/ai-interviewer/internal/meeting"
	"github.com/spigell/ai-interviewer/internal/report"
	"github.com/spigell/ai-interviewer/internal/secrets"
	"github.com/spigell/ai-interviewer/internal/voice"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	defaultCandidateName = "Candidate"

	fieldQuestion = logger.FieldQuestion
)

var retryPrompt = promptui.Select{
	Label: "No speech detected. Try again?",
	Items: []string{PromptYes, PromptNo},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full interview session",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-retry", "y", false, "retry once on silence without asking the operator")
	runCmd.Flags().StringP("report-file", "r", "", "path for the generated pdf report. Default is interview_report.pdf.")

	viper.BindPFlag("report-file", runCmd.Flags().Lookup("report-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the ai-interviewer", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Documents == nil || config.Documents.JobDescription == "" || config.Documents.Resume == "" {
		logger.Fatal("job description and resume paths are required under the documents section")
	}

	oracle, err := newOracle(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal(
			"building the evaluation oracle",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE environment variable or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	speech, err := newVoice(config.Voice, logger)
	if err != nil {
		logger.Fatal("building the voice layer", zap.Error(err))
	}

	start := time.Now()

	if config.Meeting != nil && config.Meeting.Enabled {
		if err := joinMeeting(ctx, config.Meeting, logger); err != nil {
			logger.Warn("meeting simulation failed, continuing without it", zap.Error(err))
		}
	}

	session := interview.NewSession(interviewConfig(config.Interview), interview.Deps{
		Voice:      speech,
		Evaluator:  oracle,
		Summarizer: oracle,
		Retry:      retryFunc(cmd, logger),
		Logger:     logger,
	})

	session.Greet(ctx)

	jd, err := docs.LoadText(config.Documents.JobDescription)
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}

	resume, err := docs.LoadText(config.Documents.Resume)
	if err != nil {
		logger.Fatal("loading resume", zap.Error(err))
	}

	requirements, err := oracle.ExtractRequirements(ctx, jd)
	if err != nil {
		logger.Fatal("extracting job requirements", zap.Error(err))
	}

	logger.Debug("extracted requirements", zap.String("requirements", requirements))

	questions, err := oracle.GenerateQuestions(ctx, requirements, resume)
	if err != nil {
		logger.Fatal("generating interview questions", zap.Error(err))
	}

	logger.Info("interview questions ready", zap.Int("count", len(questions)))
	for i, question := range questions {
		logger.Debug("question", zap.Int("number", i+1), zap.String(fieldQuestion, question))
	}

	results := session.Run(ctx, questions)

	avg, scored := results.Average()
	if scored {
		logger.Info("overall candidate score", zap.Float64("average", avg))
	}

	renderer := report.NewRenderer(resolveReportFile(config), logger)
	if err := renderer.Render(results, candidateName(config, logger), avg, scored); err != nil {
		logger.Fatal("rendering the report", zap.Error(err))
	}

	logger.Info("interview complete",
		zap.Duration("total_duration", time.Since(start)),
		zap.String("report", renderer.Filename()),
	)
}

func newOracle(ctx context.Context, cfg *AIConfig, log *zap.Logger) (*gemini.Oracle, error) {
	if cfg == nil || cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required under the ai section")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := resolveAPIKey(cfg.Gemini)
	if err != nil {
		return nil, err
	}

	genLogger := logger.WithOracleFields(log, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewOracle(generator, cfg.Gemini.MaxLogLength, genLogger), nil
}

func resolveAPIKey(cfg *GeminiConfig) (string, error) {
	keyFile := strings.TrimSpace(cfg.APIKeyFile)
	if keyFile == "" {
		keyFile = strings.TrimSpace(viper.GetString("api-key-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
	})
}

func newVoice(cfg *VoiceConfig, logger *zap.Logger) (interview.Voice, error) {
	if cfg == nil || cfg.Mode == "" || strings.EqualFold(cfg.Mode, "console") {
		var timeout time.Duration
		if cfg != nil {
			timeout = cfg.ListenTimeout
		}
		return voice.NewConsole(os.Stdin, os.Stdout, timeout, logger), nil
	}

	if !strings.EqualFold(cfg.Mode, "system") {
		return nil, fmt.Errorf("unsupported voice mode: %s", cfg.Mode)
	}

	return voice.NewSystem(&voice.SystemConfig{
		SpeakCommand:  cfg.SpeakCommand,
		ListenCommand: cfg.ListenCommand,
		ListenTimeout: cfg.ListenTimeout,
		PhraseLimit:   cfg.PhraseLimit,
	}, logger)
}

func interviewConfig(cfg *InterviewConfig) *interview.Config {
	if cfg == nil {
		return nil
	}

	return &interview.Config{
		TimeBudget:   cfg.TimeBudget,
		MaxFollowUps: cfg.MaxFollowUps,
		MinWords:     cfg.MinWords,
	}
}

// retryFunc returns the operator confirmation used after a silent response.
// With --auto-retry the single retry always happens without a prompt.
func retryFunc(cmd *cobra.Command, logger *zap.Logger) interview.RetryPrompt {
	if cmd.Flag("auto-retry").Value.String() == "true" {
		return func(string) bool { return true }
	}

	return func(string) bool {
		_, action, err := retryPrompt.Run()
		if err != nil {
			logger.Warn("retry prompt failed, skipping question", zap.Error(err))
			return false
		}
		return action == PromptYes
	}
}

func joinMeeting(ctx context.Context, cfg *MeetingConfig, logger *zap.Logger) error {
	scheduler, err := meeting.NewScheduler(cfg.Link, logger)
	if err != nil {
		return err
	}

	link, err := scheduler.Schedule(ctx)
	if err != nil {
		return err
	}

	return scheduler.Join(ctx, link)
}

func resolveReportFile(config *Config) string {
	if file := strings.TrimSpace(viper.GetString("report-file")); file != "" {
		return file
	}

	if config.Report != nil {
		return config.Report.Filename
	}

	return ""
}

func candidateName(config *Config, logger *zap.Logger) string {
	if name := strings.TrimSpace(config.Candidate); name != "" {
		return name
	}

	prompt := promptui.Prompt{Label: "Candidate name"}

	name, err := prompt.Run()
	if err != nil {
		logger.Warn("candidate name prompt failed, using default", zap.Error(err))
		return defaultCandidateName
	}

	if name = strings.TrimSpace(name); name == "" {
		return defaultCandidateName
	}

	return name
}
