package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"testing"

	contractx "github.com/yeonjae-dev/price-monitor-mcp/monitor/contract"
)

type fakeStore struct {
	record contractx.PriceRecord
	err    error
	calls  int
}

func (f *fakeStore) Lookup(ctx context.Context, productCode string) (contractx.PriceRecord, error) {
	f.calls++
	if f.err != nil {
		return contractx.PriceRecord{}, f.err
	}
	return f.record, nil
}

type fakeSource struct {
	raw   json.RawMessage
	err   error
	calls int
}

func (f *fakeSource) Scrape(ctx context.Context, productCode string) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

type fakeSender struct {
	err   error
	sent  []contractx.AlertMessage
	calls int
}

func (f *fakeSender) Send(ctx context.Context, alert contractx.AlertMessage) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, alert)
	return nil
}

func newService(t *testing.T, store *fakeStore, source *fakeSource, sender *fakeSender) *Service {
	t.Helper()
	svc, err := New(store, source, sender)
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	return svc
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRunDiscountDetected(t *testing.T) {
	t.Parallel()

	store := &fakeStore{record: contractx.PriceRecord{ProductCode: "P100", Price: 29000, UpdatedAt: "2025-04-20"}}
	source := &fakeSource{raw: json.RawMessage(`[
		{"price": 25000, "seller": "A", "url": "u1", "title": "Widget"},
		{"price": 27000, "seller": "B", "url": "u2"}
	]`)}
	sender := &fakeSender{}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "P100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got step=%s message=%s", result.Step, result.Message)
	}
	if result.CurrentPrice != 25000 {
		t.Fatalf("unexpected best price: %v", result.CurrentPrice)
	}
	if result.PriceDiff != 4000 {
		t.Fatalf("unexpected price diff: %v", result.PriceDiff)
	}
	if !almostEqual(result.DiscountRate, 4000.0/29000.0*100) {
		t.Fatalf("unexpected discount rate: %v", result.DiscountRate)
	}
	if result.Seller != "A" || result.URL != "u1" || result.ProductName != "Widget" {
		t.Fatalf("unexpected best offer fields: %+v", result)
	}
	if !result.AlertSent {
		t.Fatal("expected alert to be sent")
	}
	if result.AlertResult == nil || !result.AlertResult.Success {
		t.Fatalf("unexpected alert result: %+v", result.AlertResult)
	}
	if sender.calls != 1 {
		t.Fatalf("expected 1 alert, got %d", sender.calls)
	}
	if sender.sent[0].DBPrice != 29000 || sender.sent[0].CurrentPrice != 25000 {
		t.Fatalf("unexpected alert payload: %+v", sender.sent[0])
	}
}

func TestRunNoDiscountNoAlert(t *testing.T) {
	t.Parallel()

	store := &fakeStore{record: contractx.PriceRecord{Price: 29000}}
	source := &fakeSource{raw: json.RawMessage(`[{"price": 31000, "seller": "A", "url": "u1"}]`)}
	sender := &fakeSender{}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "P100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got step=%s", result.Step)
	}
	if result.PriceDiff != -2000 {
		t.Fatalf("unexpected price diff: %v", result.PriceDiff)
	}
	if result.AlertSent {
		t.Fatal("alert must not fire when current price >= db price")
	}
	if sender.calls != 0 {
		t.Fatalf("sender must not be invoked, got %d calls", sender.calls)
	}
}

func TestRunEqualPriceNoAlert(t *testing.T) {
	t.Parallel()

	store := &fakeStore{record: contractx.PriceRecord{Price: 29000}}
	source := &fakeSource{raw: json.RawMessage(`[{"price": 29000, "seller": "A", "url": "u1"}]`)}
	sender := &fakeSender{}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "P100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.AlertSent || sender.calls != 0 {
		t.Fatalf("alert fired on equal price: %+v calls=%d", result, sender.calls)
	}
}

func TestRunZeroDBPriceNoDivisionFault(t *testing.T) {
	t.Parallel()

	store := &fakeStore{record: contractx.PriceRecord{Price: 0}}
	source := &fakeSource{raw: json.RawMessage(`[{"price": 1000, "seller": "A", "url": "u1"}]`)}
	sender := &fakeSender{}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "P100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got step=%s", result.Step)
	}
	if result.DiscountRate != 0 {
		t.Fatalf("discount rate must be 0 when db price is 0, got %v", result.DiscountRate)
	}
	if result.AlertSent || sender.calls != 0 {
		t.Fatal("alert must not fire when current price >= db price")
	}
}

func TestRunLookupFailureShortCircuits(t *testing.T) {
	t.Parallel()

	store := &fakeStore{err: fmt.Errorf("%w: product_code=P404", contractx.ErrNotFound)}
	source := &fakeSource{}
	sender := &fakeSender{}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "P404")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Step != contractx.StepGetDBPrice {
		t.Fatalf("unexpected step: %s", result.Step)
	}
	if result.Message == "" {
		t.Fatal("expected failure message")
	}
	if source.calls != 0 {
		t.Fatal("scraper must not run after lookup failure")
	}
	if sender.calls != 0 {
		t.Fatal("sender must not run after lookup failure")
	}
}

func TestRunScrapeFailureShortCircuits(t *testing.T) {
	t.Parallel()

	store := &fakeStore{record: contractx.PriceRecord{Price: 29000}}
	source := &fakeSource{err: fmt.Errorf("%w: timeout", contractx.ErrExtraction)}
	sender := &fakeSender{}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "P100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success || result.Step != contractx.StepCrawl {
		t.Fatalf("unexpected result: %+v", result)
	}
	if sender.calls != 0 {
		t.Fatal("sender must not run after scrape failure")
	}
}

func TestRunEmptyOffers(t *testing.T) {
	t.Parallel()

	store := &fakeStore{record: contractx.PriceRecord{Price: 29000}}
	source := &fakeSource{raw: json.RawMessage(`[]`)}
	sender := &fakeSender{}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "P100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Step != contractx.StepCrawl {
		t.Fatalf("empty offers must report the crawl step, got %s", result.Step)
	}
	if sender.calls != 0 {
		t.Fatal("sender must not run on empty offers")
	}
}

func TestRunMalformedOffers(t *testing.T) {
	t.Parallel()

	store := &fakeStore{record: contractx.PriceRecord{Price: 29000}}
	source := &fakeSource{raw: json.RawMessage(`"not an offer list"`)}
	sender := &fakeSender{}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "P100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success || result.Step != contractx.StepParse {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestRunNotifierFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	store := &fakeStore{record: contractx.PriceRecord{Price: 29000}}
	source := &fakeSource{raw: json.RawMessage(`[{"price": 25000, "seller": "A", "url": "u1"}]`)}
	sender := &fakeSender{err: fmt.Errorf("%w: webhook status=500", contractx.ErrDelivery)}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "P100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Fatalf("notifier failure must not fail the workflow: %+v", result)
	}
	if result.AlertSent {
		t.Fatal("alert must be marked unsent")
	}
	if result.AlertResult == nil || result.AlertResult.Success {
		t.Fatalf("unexpected alert result: %+v", result.AlertResult)
	}
	if result.AlertResult.Message == "" {
		t.Fatal("alert failure detail must be populated")
	}
}

func TestRunEmptyProductCode(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	source := &fakeSource{}
	sender := &fakeSender{}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Success || result.Step != contractx.StepGetDBPrice {
		t.Fatalf("unexpected result: %+v", result)
	}
	if store.calls != 0 {
		t.Fatal("store must not run on empty product code")
	}
}

func TestRunPicksLowestOfferFromUnsortedInput(t *testing.T) {
	t.Parallel()

	store := &fakeStore{record: contractx.PriceRecord{Price: 29000}}
	source := &fakeSource{raw: json.RawMessage(`{"products": [
		{"price": 27000, "seller": "B", "url": "u2"},
		{"price": 25000, "seller": "A", "url": "u1"}
	]}`)}
	sender := &fakeSender{}

	svc := newService(t, store, source, sender)
	result, err := svc.Run(context.Background(), "P100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got step=%s", result.Step)
	}
	if result.CurrentPrice != 25000 || result.Seller != "A" {
		t.Fatalf("best offer not selected: %+v", result)
	}
}

func TestNewRejectsNilDependencies(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, &fakeSource{}, &fakeSender{}); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := New(&fakeStore{}, nil, &fakeSender{}); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := New(&fakeStore{}, &fakeSource{}, nil); err == nil {
		t.Fatal("expected error for nil sender")
	}
}

func TestRunFailureErrorsUnwrapToTaxonomy(t *testing.T) {
	t.Parallel()

	stepErr := contractx.NewStepError(contractx.StepGetDBPrice, contractx.ErrNotFound)
	if !errors.Is(stepErr, contractx.ErrNotFound) {
		t.Fatal("step error must unwrap to the taxonomy sentinel")
	}
}
