package stockcheck

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/reseller-console/internal/config"
	"github.com/example/reseller-console/internal/domain/stock"
	"github.com/example/reseller-console/internal/events"
	"github.com/example/reseller-console/internal/infrastructure/kafka"
	"github.com/example/reseller-console/internal/infrastructure/store"
	"github.com/example/reseller-console/internal/mailbox"
	"github.com/example/reseller-console/internal/metrics"
)

// Service runs batch verification of stock items against a mailbox
// source. It is stateless; every call is an independent run.
type Service struct {
	stocks    store.StockStore
	adapters  map[Source]mailbox.Adapter
	publisher kafka.Publisher
	cfg       config.Check
}

func NewService(stocks store.StockStore, adapters map[Source]mailbox.Adapter, publisher kafka.Publisher, cfg config.Check) *Service {
	return &Service{
		stocks:    stocks,
		adapters:  adapters,
		publisher: publisher,
		cfg:       cfg,
	}
}

// checkable is a stock item that survived identifier extraction and is
// headed for network fan-out.
type checkable struct {
	id      int64
	content string
	account stock.MailboxAccount
}

// Run validates the request, resolves the stock population, extracts
// identifiers, fans out to the mailbox source in bounded windows,
// classifies, and aggregates. Adapter failures become per-item error
// results; only a malformed request fails the whole run.
func (s *Service) Run(ctx context.Context, req Request) (*Summary, error) {
	adapter, err := s.validate(&req)
	if err != nil {
		return nil, err
	}

	senderFilter := strings.ToLower(strings.TrimSpace(req.SenderFilter))
	subjectFilter := strings.ToLower(strings.TrimSpace(req.SubjectFilter))

	rows, err := s.resolvePopulation(ctx, req)
	if err != nil {
		return nil, err
	}

	results, pending := s.extractIdentifiers(rows, req)

	for start := 0; start < len(pending); start += req.Concurrency {
		end := start + req.Concurrency
		if end > len(pending) {
			end = len(pending)
		}
		window := pending[start:end]

		windowResults := make([]Result, len(window))
		var wg sync.WaitGroup
		for i, item := range window {
			wg.Add(1)
			go func(i int, item checkable) {
				defer wg.Done()
				windowResults[i] = s.checkOne(ctx, adapter, req.Source, item, senderFilter, subjectFilter)
			}(i, item)
		}
		wg.Wait()

		results = append(results, windowResults...)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].StockID < results[j].StockID })

	summary := &Summary{Total: len(results), Results: results}
	for _, r := range results {
		switch r.Status {
		case StatusTrue:
			summary.TrueCount++
		case StatusFalse:
			summary.FalseCount++
		default:
			summary.ErrorCount++
		}
		metrics.CheckItemsTotal.WithLabelValues(r.Status).Inc()
	}
	metrics.CheckRunsTotal.Inc()

	kafka.PublishEvent(ctx, s.publisher, events.EventStockChecked, req.ProductID, events.StockChecked{
		Source:     string(req.Source),
		Total:      summary.Total,
		TrueCount:  summary.TrueCount,
		FalseCount: summary.FalseCount,
		ErrorCount: summary.ErrorCount,
	})

	log.Printf("[Check] source=%s total=%d true=%d false=%d error=%d",
		req.Source, summary.Total, summary.TrueCount, summary.FalseCount, summary.ErrorCount)

	return summary, nil
}

// validate checks request shape and normalizes defaults in place. It
// returns the adapter for the requested source.
func (s *Service) validate(req *Request) (mailbox.Adapter, error) {
	if req.Scope != ScopeProduct && req.Scope != ScopeSelected {
		return nil, validationErrorf("invalid scope %q", req.Scope)
	}

	adapter, ok := s.adapters[req.Source]
	if !ok {
		return nil, validationErrorf("invalid source %q", req.Source)
	}

	if req.MailColumnIndex == 0 {
		req.MailColumnIndex = 1
	}
	if req.MailColumnIndex < 1 || req.MailColumnIndex > s.cfg.MaxMailColumn {
		return nil, validationErrorf("mailColumnIndex must be within 1..%d", s.cfg.MaxMailColumn)
	}

	if req.Concurrency < 1 {
		req.Concurrency = s.cfg.DefaultConcurrency
	}
	if req.Concurrency > s.cfg.MaxConcurrency {
		req.Concurrency = s.cfg.MaxConcurrency
	}

	return adapter, nil
}

// resolvePopulation loads the stock rows a run applies to, in ascending
// id order.
func (s *Service) resolvePopulation(ctx context.Context, req Request) ([]stock.Item, error) {
	if req.Scope == ScopeProduct {
		if req.ProductID <= 0 {
			return nil, validationErrorf("invalid productId")
		}

		var rows []stock.Item
		offset := 0
		for {
			page, err := s.stocks.ListByProduct(ctx, req.ProductID, offset, s.cfg.PageSize)
			if err != nil {
				return nil, err
			}
			rows = append(rows, page...)
			if len(rows) > s.cfg.MaxItems {
				return nil, validationErrorf("stock count exceeds the limit of %d rows", s.cfg.MaxItems)
			}
			if len(page) < s.cfg.PageSize {
				return rows, nil
			}
			offset += s.cfg.PageSize
		}
	}

	ids := dedupePositive(req.SelectedStockIDs)
	if len(ids) == 0 {
		return nil, validationErrorf("selectedStockIds is empty")
	}
	if len(ids) > s.cfg.MaxSelectedIDs {
		return nil, validationErrorf("at most %d stock items per check", s.cfg.MaxSelectedIDs)
	}

	rows, err := s.stocks.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

// extractIdentifiers splits the population into immediate error results
// and checkable items. This runs before any adapter call so malformed
// rows never hit the network.
func (s *Service) extractIdentifiers(rows []stock.Item, req Request) ([]Result, []checkable) {
	results := make([]Result, 0, len(rows))
	pending := make([]checkable, 0, len(rows))

	for _, row := range rows {
		content := strings.TrimSpace(row.Content)
		if content == "" {
			results = append(results, Result{
				StockID: row.ID,
				Status:  StatusError,
				Error:   "stock content is empty",
			})
			continue
		}

		col := stock.ExtractColumn(content, req.MailColumnIndex)
		if col.Value == "" {
			results = append(results, Result{
				StockID: row.ID,
				Content: content,
				Status:  StatusError,
				Error:   errNoColumnValue(req.MailColumnIndex, col.Count),
			})
			continue
		}

		if req.Source == SourceGraph {
			account := stock.ParseMailboxAccount(col.Value)
			if account == nil {
				results = append(results, Result{
					StockID:    row.ID,
					Identifier: col.Value,
					Content:    content,
					Status:     StatusError,
					Error:      errBadCredential(req.MailColumnIndex),
				})
				continue
			}
			pending = append(pending, checkable{id: row.ID, content: content, account: *account})
			continue
		}

		email := stock.ExtractEmail(col.Value)
		if email == "" {
			results = append(results, Result{
				StockID:    row.ID,
				Identifier: col.Value,
				Content:    content,
				Status:     StatusError,
				Error:      errNoEmail(req.MailColumnIndex),
			})
			continue
		}
		pending = append(pending, checkable{id: row.ID, content: content, account: stock.MailboxAccount{Email: email}})
	}

	return results, pending
}

// checkOne performs a single adapter call and classification. Any
// failure is folded into an error result so one item can never abort its
// window.
func (s *Service) checkOne(ctx context.Context, adapter mailbox.Adapter, source Source, item checkable, senderFilter, subjectFilter string) Result {
	start := time.Now()
	messages, err := adapter.FetchMessages(ctx, item.account)
	metrics.MailboxRequestDuration.WithLabelValues(string(source)).Observe(time.Since(start).Seconds())

	result := Result{
		StockID:    item.id,
		Identifier: item.account.Email,
		Content:    item.content,
	}
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}

	if matches(messages, senderFilter, subjectFilter) {
		result.Status = StatusTrue
	} else {
		result.Status = StatusFalse
	}
	return result
}

// matches reports whether any message passes both filters. An unset
// filter passes everything, so with both filters empty any message at
// all is a match.
func matches(messages []mailbox.Message, senderFilter, subjectFilter string) bool {
	for _, msg := range messages {
		from := strings.ToLower(msg.FromAddress)
		subject := strings.ToLower(msg.Subject)
		matchesSender := senderFilter == "" || strings.Contains(from, senderFilter)
		matchesSubject := subjectFilter == "" || strings.Contains(subject, subjectFilter)
		if matchesSender && matchesSubject {
			return true
		}
	}
	return false
}

func dedupePositive(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
