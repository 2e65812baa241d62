package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Gunvolt24/kbatch/config"
	"github.com/Gunvolt24/kbatch/internal/app"
	"github.com/Gunvolt24/kbatch/internal/credentials"
	"github.com/Gunvolt24/kbatch/internal/domain"
	"github.com/Gunvolt24/kbatch/internal/ports"
	"github.com/Gunvolt24/kbatch/pkg/metrics"
	"github.com/Gunvolt24/kbatch/pkg/validate"
)

// CLI: одно или несколько выполнений подряд, элементы результата — JSON lines в stdout.
func main() {
	_ = godotenv.Load(".env.local")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	params       string
	format       string
	credentials  string
	validateOnly bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("collect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.params, "params", "", "path to parameters (.json or .jsonl). If empty, parameters come from KBATCH_KAFKA_* env.")
	fs.StringVar(&f.format, "format", "auto", "parameters format: auto|json|jsonl")
	fs.StringVar(&f.credentials, "credentials", "", "path to credentials (.yaml or .json). Overrides KBATCH_CREDENTIALS_FILE.")
	fs.BoolVar(&f.validateOnly, "validate-only", false, "validate parameters and exit")
	err := fs.Parse(args)
	return f, err
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	paramSets, err := loadParameters(ctx, f, cfg.Kafka)
	if err != nil {
		fmt.Fprintf(stderr, "parameters: %v\n", err)
		return 1
	}
	if f.validateOnly {
		fmt.Fprintf(stderr, "validation ok (%d parameter sets)\n", len(paramSets))
		return 0
	}

	core, cleanup, err := app.BuildCore(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(stderr, "bootstrap: %v\n", err)
		return 1
	}
	defer cleanup()

	var src ports.CredentialSource
	if f.credentials != "" {
		src = credentials.FileSource{Path: f.credentials}
	}

	code := 0
	enc := json.NewEncoder(stdout)
	for i, params := range paramSets {
		exec, execErr := core.Service.Execute(ctx, params, src)
		if execErr != nil {
			core.Logger.Errorf(ctx, "execution %d failed: %v", i, execErr)
			fmt.Fprintln(stderr, execErr)
			code = 1
			break
		}
		if err := writeItems(enc, exec.Items); err != nil {
			fmt.Fprintf(stderr, "write output: %v\n", err)
			code = 1
			break
		}
		fmt.Fprintf(stderr, "execution %s: reason=%s items=%d\n", exec.ID, exec.Reason, len(exec.Items))
	}

	pushMetrics(cfg.Metrics, core.Logger)
	return code
}

// loadParameters — из файла (валидация при чтении) или из конфигурации.
func loadParameters(ctx context.Context, f flags, k config.Kafka) ([]domain.Parameters, error) {
	v := validate.NewParametersValidator()
	if f.params != "" {
		return validate.ParametersFromFile(ctx, v, f.params, validate.InputFormat(f.format))
	}
	p := app.DefaultParameters(k)
	if err := v.Validate(ctx, &p); err != nil {
		return nil, err
	}
	return []domain.Parameters{p}, nil
}

func writeItems(enc *json.Encoder, items []domain.Item) error {
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}

// pushMetrics — одноразовый процесс не доживает до scrape, поэтому метрики отправляются в Pushgateway.
func pushMetrics(m config.Metrics, log ports.Logger) {
	if m.PushURL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metrics.Push(ctx, m.PushURL, m.PushJob); err != nil && !errors.Is(err, context.Canceled) {
		log.Warnf(ctx, "metrics push failed: %v", err)
	}
}
