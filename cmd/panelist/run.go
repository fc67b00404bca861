package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/hireloop/panelist/internal/domain"
	"github.com/hireloop/panelist/internal/logger"
	"github.com/hireloop/panelist/internal/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one hiring panel evaluation and print the result as JSON",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("job", "", "path to the job description file")
	runCmd.Flags().String("resume", "", "path to the resume file")
	runCmd.Flags().String("company", "", "path to the company context file")
	runCmd.Flags().String("candidate", "", "candidate name carried into the decision packet")

	_ = runCmd.MarkFlagRequired("job")
	_ = runCmd.MarkFlagRequired("resume")
}

// run submits one evaluation to the hiring panel and prints the RunResult.
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

	logger.Info("starting the panelist run", zap.String("version", version))

	jobDescription, err := readTextFile(cmd.Flag("job").Value.String())
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err))
	}
	resume, err := readTextFile(cmd.Flag("resume").Value.String())
	if err != nil {
		logger.Fatal("reading the resume", zap.Error(err))
	}

	companyContext := ""
	if path := cmd.Flag("company").Value.String(); path != "" {
		companyContext, err = readTextFile(path)
		if err != nil {
			logger.Fatal("reading the company context", zap.Error(err))
		}
	}

	req := domain.NewHiringRequest(jobDescription, resume, companyContext)
	req.CandidateName = cmd.Flag("candidate").Value.String()
	req.Config = config.panelConfig()

	if err := req.Validate(); err != nil {
		logger.Fatal("invalid hiring request", zap.Error(err))
	}

	c, err := client.Dial(config.temporalOptions())
	if err != nil {
		logger.Fatal("connecting to temporal", zap.Error(err))
	}
	defer c.Close()

	logger.Info("submitting the evaluation",
		zap.String("task_queue", config.taskQueue()),
		zap.Strings("panel", roleNames(req.Config.PanelRoles())),
	)

	result, err := workflow.ExecuteHiring(ctx, c, req)
	if err != nil {
		logger.Fatal("hiring workflow failed", zap.Error(err))
	}

	logger.Info("evaluation completed",
		zap.Float64("overall_fit_score", result.DecisionPacket.OverallFitScore),
		zap.Int("disagreements", len(result.Disagreements)),
		zap.Int64("duration_ms", result.Metadata.DurationMillis),
	)

	pretty, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Fatal("encoding the result", zap.Error(err))
	}
	fmt.Println(string(pretty))
}

// readTextFile loads a UTF-8 document, rejecting blank content early so the
// failure names the file instead of surfacing later as a validation error.
func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("file %s is empty", path)
	}
	return content, nil
}

func roleNames(roles []domain.AgentRole) []string {
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = string(role)
	}
	return names
}
