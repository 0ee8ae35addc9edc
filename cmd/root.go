package cmd

import (
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "ai-interviewer"
)

type Config struct {
	Candidate string           `mapstructure:"candidate"`
	Documents *DocumentsConfig `mapstructure:"documents"`
	Interview *InterviewConfig `mapstructure:"interview"`
	Report    *ReportConfig    `mapstructure:"report"`
	Meeting   *MeetingConfig   `mapstructure:"meeting"`
	Voice     *VoiceConfig     `mapstructure:"voice"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type DocumentsConfig struct {
	JobDescription string `mapstructure:"job-description"`
	Resume         string `mapstructure:"resume"`
}

type InterviewConfig struct {
	TimeBudget   time.Duration `mapstructure:"time-budget"`
	MaxFollowUps int           `mapstructure:"max-follow-ups"`
	MinWords     int           `mapstructure:"min-words"`
}

type ReportConfig struct {
	Filename string `mapstructure:"filename"`
}

type MeetingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Link    string `mapstructure:"link"`
}

type VoiceConfig struct {
	Mode          string        `mapstructure:"mode"`
	SpeakCommand  []string      `mapstructure:"speak-command"`
	ListenCommand []string      `mapstructure:"listen-command"`
	ListenTimeout time.Duration `mapstructure:"listen-timeout"`
	PhraseLimit   time.Duration `mapstructure:"phrase-limit"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ai-interviewer is a cli that conducts an automated voice job interview and produces a scored pdf report",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ai-interviewer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
