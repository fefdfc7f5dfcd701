package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/its-bede/is-it-spam-go/internal/adapters/isitspam"
	"github.com/its-bede/is-it-spam-go/internal/core"
	"github.com/its-bede/is-it-spam-go/internal/form"
	"github.com/its-bede/is-it-spam-go/internal/logging"
	"github.com/its-bede/is-it-spam-go/internal/metrics"
	"github.com/its-bede/is-it-spam-go/internal/utils"
	"github.com/its-bede/is-it-spam-go/internal/whitelist"
)

var (
	// API flags
	apiKey    = flag.String("api-key", os.Getenv("IS_IT_SPAM_API_KEY"), "API key (defaults to IS_IT_SPAM_API_KEY)")
	apiSecret = flag.String("api-secret", os.Getenv("IS_IT_SPAM_API_SECRET"), "API secret (defaults to IS_IT_SPAM_API_SECRET)")
	baseURL   = flag.String("base-url", os.Getenv("IS_IT_SPAM_BASE_URL"), "API base URL (defaults to IS_IT_SPAM_BASE_URL)")
	timeout   = flag.Duration("timeout", 30*time.Second, "Request timeout")

	// Submission flags
	name      = flag.String("name", "", "Submitter name")
	email     = flag.String("email", "", "Submitter email")
	message   = flag.String("message", "", "Message body")
	endUserIP = flag.String("ip", "", "End user IP to report with the check")
	inputFile = flag.String("file", "", "JSON parameter file (use - for stdin); fields are extracted like a form post")
	formParam = flag.String("form-param", "", "Explicit top-level parameter key holding the form object")

	// Check flags
	whitelistDomains = flag.String("whitelist", "", "Comma-separated list of whitelisted domains")
	maxMessageSize   = flag.Int("max-message-size", 65536, "Maximum message size sent to the API")
	health           = flag.Bool("health", false, "Probe the service health instead of running a check")

	// Output flags
	verbose = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	opts := []isitspam.Option{
		isitspam.WithTimeout(*timeout),
		isitspam.WithLogger(logger),
	}
	if *baseURL != "" {
		opts = append(opts, isitspam.WithBaseURL(*baseURL))
	}

	client, err := isitspam.NewClient(*apiKey, *apiSecret, opts...)
	if err != nil {
		logger.Fatal("Failed to create API client", zap.Error(err))
	}

	ctx := context.Background()

	if *health {
		healthy, err := client.HealthCheck(ctx)
		if err != nil {
			logger.Fatal("Health probe failed", zap.Error(err))
		}
		if !healthy {
			fmt.Println("Service unavailable")
			os.Exit(2)
		}
		fmt.Println("Service healthy")
		return
	}

	req, err := buildRequest(logger)
	if err != nil {
		logger.Fatal("Failed to build check request", zap.Error(err))
	}

	var domains []string
	if *whitelistDomains != "" {
		for _, domain := range strings.Split(*whitelistDomains, ",") {
			domains = append(domains, strings.TrimSpace(domain))
		}
	}

	service := core.NewSpamCheckService(
		client,
		nil,
		logger,
		metrics.NewNoopCollector(),
		whitelist.NewChecker(domains, logger),
		utils.NewTextProcessor(logger),
		false,
		0,
		*maxMessageSize,
	)

	result, err := service.Check(ctx, req)
	if err != nil {
		logger.Fatal("Spam check failed", zap.Error(err))
	}

	fmt.Println(result.Summary())
	if result.Spam() {
		os.Exit(2)
	}
}

// buildRequest reads the submission from a JSON parameter file, stdin, or
// the individual flags.
func buildRequest(logger *zap.Logger) (*core.SpamCheckRequest, error) {
	if *inputFile == "" {
		return &core.SpamCheckRequest{
			Name:      *name,
			Email:     *email,
			Message:   *message,
			EndUserIP: *endUserIP,
		}, nil
	}

	var reader io.Reader
	if *inputFile == "-" {
		reader = os.Stdin
		logger.Debug("Reading parameters from stdin")
	} else {
		file, err := os.Open(*inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer func() { _ = file.Close() }()
		reader = file
		logger.Debug("Reading parameters from file", zap.String("file", *inputFile))
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters: %w", err)
	}
	params, err := form.FromJSON(data)
	if err != nil {
		return nil, err
	}

	fields := form.NewExtractor(*formParam).Extract(params)
	return &core.SpamCheckRequest{
		Name:      fields.Name,
		Email:     fields.Email,
		Message:   fields.Message,
		EndUserIP: *endUserIP,
	}, nil
}
