package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"github.com/hireloop/panelist/internal/logger"
	"github.com/hireloop/panelist/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start a Temporal worker serving the hiring panel task queue",
	Run: func(_ *cobra.Command, _ []string) {
		runWorker()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the panelist worker", zap.String("version", version))

	llmClient, err := worker.InitializeLLMClient(ctx, config.llmConfig(), logger)
	if err != nil {
		logger.Fatal(
			"initializing the generation gateway",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or the 'gemini.api-key' key in the configuration file"),
		)
	}

	c, err := client.Dial(config.temporalOptions())
	if err != nil {
		logger.Fatal("connecting to temporal", zap.Error(err))
	}
	defer c.Close()

	w := sdkworker.New(c, config.taskQueue(), sdkworker.Options{})
	worker.RegisterAll(w, llmClient)

	logger.Info("worker listening",
		zap.String("task_queue", config.taskQueue()),
		zap.String("namespace", config.temporalOptions().Namespace),
	)

	if err := w.Run(sdkworker.InterruptCh()); err != nil {
		logger.Fatal("worker stopped", zap.Error(err))
	}
}
