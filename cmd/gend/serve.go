package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"gend/internal/client"
	"gend/internal/common/fsutil"
	"gend/internal/config"
	"gend/internal/engine"
	"gend/internal/httpapi"
	"gend/internal/registry"
)

// envDefault returns the environment value when set, else def.
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func buildServeCmd() *cobra.Command {
	var (
		cfgPath    string
		addr       string
		modelsDir  string
		model      string
		runtime    string
		logLevel   string
		maxLen     int
		tpSize     int
		gpuUtil    float64
		maxBatched int
		eager      bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Initialize the engine and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Config{}
			if cfgPath != "" {
				if !fsutil.PathExists(cfgPath) {
					return fmt.Errorf("config file not found: %s", cfgPath)
				}
				loaded, err := config.Load(cfgPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			// Flags set on the command line win over the config file.
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("models-dir") || cfg.ModelsDir == "" {
				cfg.ModelsDir = modelsDir
			}
			if cmd.Flags().Changed("model") || cfg.Model == "" {
				cfg.Model = model
			}
			if cmd.Flags().Changed("log-level") || cfg.LogLevel == "" {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("max-model-len") {
				cfg.MaxModelLen = maxLen
			}
			if cmd.Flags().Changed("tensor-parallel-size") {
				cfg.TensorParallelSize = tpSize
			}
			if cmd.Flags().Changed("gpu-memory-utilization") {
				cfg.GPUMemoryUtilization = gpuUtil
			}
			if cmd.Flags().Changed("max-num-batched-tokens") {
				cfg.MaxNumBatchedTokens = maxBatched
			}
			if cmd.Flags().Changed("enforce-eager") {
				cfg.EnforceEager = eager
			}
			return runServe(cfg, runtime)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Optional config file (.yaml/.json/.toml)")
	cmd.Flags().StringVar(&addr, "addr", envDefault("GEND_ADDR", ":8080"), "HTTP listen address")
	cmd.Flags().StringVar(&modelsDir, "models-dir", envDefault("GEND_MODELS_DIR", ""), "Directory to scan for *.gguf model files")
	cmd.Flags().StringVar(&model, "model", registry.BuiltinModel, "Model id to load")
	cmd.Flags().StringVar(&runtime, "runtime", "builtin", "Execution backend: builtin|llama")
	cmd.Flags().StringVar(&logLevel, "log-level", envDefault("GEND_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	cmd.Flags().IntVar(&maxLen, "max-model-len", 0, "Maximum sequence length (0 = model native)")
	cmd.Flags().IntVar(&tpSize, "tensor-parallel-size", 1, "Tensor-parallel process group size")
	cmd.Flags().Float64Var(&gpuUtil, "gpu-memory-utilization", 0, "Device memory fraction to reserve in (0,1] (0 = default)")
	cmd.Flags().IntVar(&maxBatched, "max-num-batched-tokens", 0, "Prompt-token budget per decode run (0 = unlimited)")
	cmd.Flags().BoolVar(&eager, "enforce-eager", false, "Disable graph-capture optimizations")
	return cmd
}

func runServe(cfg config.Config, runtimeName string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		logger = logger.Level(lvl)
	}

	reg, err := registry.LoadDir(cfg.ModelsDir)
	if err != nil {
		return err
	}

	opts := []engine.Option{
		engine.WithRegistry(reg),
		engine.WithPublisher(logPublisher{log: logger}),
	}
	if runtimeName == "llama" {
		opts = append(opts, engine.WithRuntime(engine.NewLlamaRuntime(cfg.MaxModelLen, 0)))
	}
	handle, err := engine.New(engine.Config{
		Model:                cfg.Model,
		MaxModelLen:          cfg.MaxModelLen,
		TensorParallelSize:   cfg.TensorParallelSize,
		GPUMemoryUtilization: cfg.GPUMemoryUtilization,
		MaxNumBatchedTokens:  cfg.MaxNumBatchedTokens,
		EnforceEager:         cfg.EnforceEager,
	}, opts...)
	if err != nil {
		return err
	}
	defer handle.Teardown()

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetLogger(logger)
	httpapi.SetBaseContext(baseCtx)

	svc := client.NewService(handle, reg, client.LogSink{Log: logger})
	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.NewMux(svc)}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("model", cfg.Model).Msg("gend listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	return nil
}

// logPublisher forwards engine lifecycle events to the structured logger.
type logPublisher struct{ log zerolog.Logger }

func (p logPublisher) Publish(e engine.Event) {
	ev := p.log.Info().Str("model", e.Model)
	for k, v := range e.Fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(e.Name)
}
