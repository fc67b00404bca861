package main

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	"github.com/hireloop/panelist/internal/domain"
	"github.com/hireloop/panelist/internal/llm"
	"github.com/hireloop/panelist/internal/workflow"
)

const app = "panelist"

// Config is the process configuration, loaded from the config file, the
// environment, and flag defaults.
type Config struct {
	Temporal *TemporalConfig `mapstructure:"temporal"`
	Gemini   *GeminiConfig   `mapstructure:"gemini"`
	Panel    *PanelSettings  `mapstructure:"panel"`
}

// TemporalConfig locates the Temporal service and task queue.
type TemporalConfig struct {
	HostPort  string `mapstructure:"host-port"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task-queue"`
}

// GeminiConfig carries the generation gateway settings.
type GeminiConfig struct {
	APIKey                string  `mapstructure:"api-key"`
	Model                 string  `mapstructure:"model"`
	Temperature           float32 `mapstructure:"temperature"`
	MaxOutputTokens       int32   `mapstructure:"max-output-tokens"`
	RequestTimeoutSeconds int     `mapstructure:"request-timeout-seconds"`
}

// PanelSettings mirrors domain.PanelConfig for file/env overrides.
type PanelSettings struct {
	EnableWorkingMemory        bool    `mapstructure:"enable-working-memory"`
	EnableProductAgent         bool    `mapstructure:"enable-product-agent"`
	MaxPanelAgents             int     `mapstructure:"max-panel-agents"`
	RubricCategoryCount        int     `mapstructure:"rubric-categories"`
	DisagreementThreshold      float64 `mapstructure:"disagreement-threshold"`
	MaxQuestionsPerInterviewer int     `mapstructure:"max-interview-questions"`
	ActivityTimeoutSeconds     int64   `mapstructure:"activity-timeout-seconds"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "panelist evaluates a resume against a job description with a panel of reviewer agents",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}
	if err := viper.BindEnv("temporal.host-port", "TEMPORAL_ADDRESS"); err != nil {
		log.Fatalf("binding TEMPORAL_ADDRESS environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is panelist.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("temporal.host-port", client.DefaultHostPort)
	viper.SetDefault("temporal.namespace", client.DefaultNamespace)
	viper.SetDefault("temporal.task-queue", workflow.TaskQueue)
	viper.SetDefault("gemini.model", llm.DefaultModel)
	viper.SetDefault("panel.enable-working-memory", true)
	viper.SetDefault("panel.enable-product-agent", false)
	viper.SetDefault("panel.max-panel-agents", domain.DefaultMaxPanelAgents)
	viper.SetDefault("panel.rubric-categories", domain.DefaultRubricCategoryCount)
	viper.SetDefault("panel.disagreement-threshold", domain.DefaultDisagreementThreshold)
	viper.SetDefault("panel.max-interview-questions", domain.DefaultMaxQuestionsPerInterviewer)
	viper.SetDefault("panel.activity-timeout-seconds", domain.DefaultActivityTimeoutSeconds)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// A missing default config file is fine: defaults and env cover a full
	// setup. An explicitly named file must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
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

// panelConfig maps the loaded settings onto the run configuration, starting
// from the documented defaults.
func (c *Config) panelConfig() domain.PanelConfig {
	cfg := domain.DefaultPanelConfig()
	if c == nil || c.Panel == nil {
		return cfg
	}
	p := c.Panel
	cfg.EnableWorkingMemory = p.EnableWorkingMemory
	cfg.EnableProductAgent = p.EnableProductAgent
	cfg.MaxPanelAgents = p.MaxPanelAgents
	cfg.RubricCategoryCount = p.RubricCategoryCount
	cfg.DisagreementThreshold = p.DisagreementThreshold
	cfg.MaxQuestionsPerInterviewer = p.MaxQuestionsPerInterviewer
	cfg.ActivityTimeoutSeconds = p.ActivityTimeoutSeconds
	return cfg
}

// llmConfig maps the loaded settings onto the gateway configuration.
func (c *Config) llmConfig() llm.Config {
	var cfg llm.Config
	if c == nil || c.Gemini == nil {
		return cfg
	}
	g := c.Gemini
	cfg.APIKey = g.APIKey
	cfg.Model = g.Model
	cfg.Temperature = g.Temperature
	cfg.MaxOutputTokens = g.MaxOutputTokens
	if g.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(g.RequestTimeoutSeconds) * time.Second
	}
	return cfg
}

// temporalOptions builds the client options from the loaded settings.
func (c *Config) temporalOptions() client.Options {
	options := client.Options{
		HostPort:  client.DefaultHostPort,
		Namespace: client.DefaultNamespace,
	}
	if c == nil || c.Temporal == nil {
		return options
	}
	if c.Temporal.HostPort != "" {
		options.HostPort = c.Temporal.HostPort
	}
	if c.Temporal.Namespace != "" {
		options.Namespace = c.Temporal.Namespace
	}
	return options
}

// taskQueue returns the configured task queue, falling back to the default.
func (c *Config) taskQueue() string {
	if c != nil && c.Temporal != nil && c.Temporal.TaskQueue != "" {
		return c.Temporal.TaskQueue
	}
	return workflow.TaskQueue
}
