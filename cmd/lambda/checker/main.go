package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/example/reseller-console/internal/config"
	"github.com/example/reseller-console/internal/domain/stockcheck"
	"github.com/example/reseller-console/internal/infrastructure/kafka"
	"github.com/example/reseller-console/internal/infrastructure/store"
	"github.com/example/reseller-console/internal/mailbox"
)

var checkService *stockcheck.Service

func init() {
	cfg := config.Load()

	db, err := store.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Lambda Checker] Failed to connect to PostgreSQL: %v", err)
	}

	stockStore := store.NewPostgresStockStore(db)
	adapters := map[stockcheck.Source]mailbox.Adapter{
		stockcheck.SourceTempMail: mailbox.NewTempMailAdapter(cfg.Mailbox.TempMailBaseURL, nil),
		stockcheck.SourceTinyhost: mailbox.NewTinyhostAdapter(cfg.Mailbox.TinyhostURL, nil),
		stockcheck.SourceGraph:    mailbox.NewGraphAdapter(cfg.Mailbox.GraphProxyURL, cfg.Mailbox.GraphClientID, nil),
	}

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)

	checkService = stockcheck.NewService(stockStore, adapters, producer, cfg.Check)

	log.Printf("[Lambda Checker] Initialized successfully (sources: %d)", len(adapters))
}

// handler runs one verification check from a scheduled-event payload. The
// payload is the check request itself, configured on the schedule rule.
func handler(ctx context.Context, payload json.RawMessage) (*stockcheck.Summary, error) {
	var req stockcheck.Request
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("[Lambda Checker] Failed to unmarshal request: %v", err)
		return nil, err
	}

	log.Printf("[Lambda Checker] Running check (scope: %s, source: %s, product: %d)",
		req.Scope, req.Source, req.ProductID)

	summary, err := checkService.Run(ctx, req)
	if err != nil {
		log.Printf("[Lambda Checker] Check failed: %v", err)
		return nil, err
	}

	log.Printf("[Lambda Checker] Check done: %d items (%d true, %d false, %d error)",
		summary.Total, summary.TrueCount, summary.FalseCount, summary.ErrorCount)

	return summary, nil
}

func main() {
	lambda.Start(handler)
}
