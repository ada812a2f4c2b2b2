package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name       string
	model      string
	shouldFail bool
	delay      time.Duration
	response   *Response
	callCount  int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.shouldFail {
		return nil, errors.New("mock provider error")
	}
	return m.response, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Model() string {
	return m.model
}

// scriptedProvider returns the scripted results in order, then the last one.
type scriptedProvider struct {
	name      string
	results   []error
	response  *Response
	callCount int
}

func (s *scriptedProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	i := min(s.callCount, len(s.results)-1)
	s.callCount++
	if err := s.results[i]; err != nil {
		return nil, err
	}
	return s.response, nil
}

func (s *scriptedProvider) Name() string  { return s.name }
func (s *scriptedProvider) Model() string { return s.name + "-model" }

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {
	m.infoMessages = append(m.infoMessages, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.warnMessages = append(m.warnMessages, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func planRequest() *Request {
	return &Request{
		SystemInstruction: &Message{Role: "system", Parts: []Part{{Text: "be strategic"}}},
		Messages: []Message{
			{Role: "user", Parts: []Part{{Text: "Build a pricing strategy for Q3"}}},
		},
	}
}

func planResponse(provider string) *Response {
	return &Response{
		Content:      Message{Role: "assistant", Parts: []Part{{Text: "Plan from " + provider}}},
		ProviderName: provider,
		ModelName:    provider + "-model",
		Usage:        &Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
	}
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", response: planResponse("primary")}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   3,
		RetryDelay:      100 * time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), planRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if resp.ProviderName != "primary" {
		t.Errorf("Expected provider name 'primary', got: %s", resp.ProviderName)
	}
	if resp.Content.Text() != "Plan from primary" {
		t.Errorf("unexpected content %q", resp.Content.Text())
	}
	if primary.callCount != 1 {
		t.Errorf("Expected primary provider to be called once, got: %d", primary.callCount)
	}
	if len(logger.infoMessages) != 1 {
		t.Errorf("Expected 1 info log message, got: %d", len(logger.infoMessages))
	}
	if len(logger.warnMessages) != 0 {
		t.Errorf("Expected 0 warn log messages, got: %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_FallbackToSecondaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
	secondary := &mockProvider{name: "secondary", model: "secondary-model", response: planResponse("secondary")}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      10 * time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), planRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if resp.ProviderName != "secondary" {
		t.Errorf("Expected provider name 'secondary', got: %s", resp.ProviderName)
	}
	// Primary should be called RetryAttempts times (2)
	if primary.callCount != 2 {
		t.Errorf("Expected primary provider to be called 2 times, got: %d", primary.callCount)
	}
	if secondary.callCount != 1 {
		t.Errorf("Expected secondary provider to be called once, got: %d", secondary.callCount)
	}
	if len(logger.infoMessages) != 1 || len(logger.warnMessages) != 1 {
		t.Errorf("Expected 1 info and 1 warn, got %d and %d", len(logger.infoMessages), len(logger.warnMessages))
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
	secondary := &mockProvider{name: "secondary", model: "secondary-model", shouldFail: true}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      10 * time.Millisecond,
	}, logger)

	resp, err := manager.GenerateContent(context.Background(), planRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Expected ErrAllProvidersFailed, got: %v", err)
	}
	if resp != nil {
		t.Errorf("Expected nil response, got: %v", resp)
	}
	if primary.callCount != 2 || secondary.callCount != 2 {
		t.Errorf("Expected 2 calls each, got %d and %d", primary.callCount, secondary.callCount)
	}
	if len(logger.warnMessages) != 2 {
		t.Errorf("Expected 2 warn log messages, got: %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
	secondary := &mockProvider{name: "secondary", model: "secondary-model", response: planResponse("secondary")}
	manager := NewManager([]Provider{primary, secondary}, &Config{
		FallbackEnabled: false,
		RetryAttempts:   2,
		RetryDelay:      10 * time.Millisecond,
	}, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), planRequest())
	if err == nil {
		t.Fatal("Expected error when primary fails and fallback is disabled, got nil")
	}
	if resp != nil {
		t.Errorf("Expected nil response, got: %v", resp)
	}
	if secondary.callCount != 0 {
		t.Errorf("Expected secondary provider to NOT be called, got: %d calls", secondary.callCount)
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	manager := NewManager(nil, nil, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), planRequest())
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("Expected ErrNoProvidersConfigured, got: %v", err)
	}
	if manager.Primary() != "" {
		t.Errorf("Expected empty primary, got %q", manager.Primary())
	}
}

func TestGenerateContent_ZeroRetryAttemptsStillCalls(t *testing.T) {
	primary := &mockProvider{name: "gemini", model: "gemini-2.5-flash", response: planResponse("gemini")}
	manager := NewManager([]Provider{primary}, &Config{}, &mockLogger{})

	if _, err := manager.GenerateContent(context.Background(), planRequest()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if primary.callCount != 1 {
		t.Errorf("Expected 1 call, got %d", primary.callCount)
	}
	if manager.Primary() != "gemini/gemini-2.5-flash" {
		t.Errorf("unexpected primary %q", manager.Primary())
	}
}

func TestGenerateContent_GlobalTimeout(t *testing.T) {
	slow := &mockProvider{name: "slow", model: "m", delay: time.Second, response: planResponse("slow")}
	manager := NewManager([]Provider{slow}, &Config{
		RetryAttempts:   1,
		MaxTotalTimeout: 20 * time.Millisecond,
	}, &mockLogger{})

	start := time.Now()
	_, err := manager.GenerateContent(context.Background(), planRequest())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got: %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Errorf("timeout not enforced")
	}
}

func TestGenerateContent_EmptyContentFallsThrough(t *testing.T) {
	empty := &mockProvider{name: "gemini", model: "m", response: &Response{Content: Message{Parts: []Part{{Text: "  "}}}}}
	secondary := &mockProvider{name: "deepseek", model: "m", response: planResponse("deepseek")}
	manager := NewManager([]Provider{empty, secondary}, &Config{FallbackEnabled: true}, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), planRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "deepseek" {
		t.Errorf("Expected fallback to deepseek, got %s", resp.ProviderName)
	}
}

func TestGenerateContent_CancellationIsNotRetried(t *testing.T) {
	p := &scriptedProvider{name: "gemini", results: []error{context.Canceled}}
	manager := NewManager([]Provider{p}, &Config{RetryAttempts: 3}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), planRequest())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if p.callCount != 1 {
		t.Errorf("Expected a single attempt, got %d", p.callCount)
	}
}

func TestGenerateContent_RecordsAttemptsAndPurpose(t *testing.T) {
	flaky := &scriptedProvider{name: "gemini", results: []error{errors.New("503"), nil}, response: planResponse("gemini")}
	broken := &scriptedProvider{name: "deepseek", results: []error{errors.New("401")}}
	logger := &mockLogger{}

	req := planRequest()
	req.Purpose = "deep_mind/generate"

	manager := NewManager([]Provider{flaky}, &Config{RetryAttempts: 2}, logger)
	if _, err := manager.GenerateContent(context.Background(), req); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(logger.infoMessages) != 1 || !strings.Contains(logger.infoMessages[0], "purpose=deep_mind/generate") ||
		!strings.Contains(logger.infoMessages[0], "attempts=2") {
		t.Errorf("unexpected success log %v", logger.infoMessages)
	}

	manager = NewManager([]Provider{broken}, &Config{RetryAttempts: 2}, logger)
	_, err := manager.GenerateContent(context.Background(), req)

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ProviderError, got: %v", err)
	}
	if pe.Provider != "deepseek" || pe.Attempts != 2 {
		t.Errorf("unexpected provider error %+v", pe)
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) || Retryable(context.DeadlineExceeded) || Retryable(fmt.Errorf("x: %w", context.Canceled)) {
		t.Error("context errors must not be retried")
	}
	if !Retryable(ErrEmptyContent) || !Retryable(errors.New("503")) {
		t.Error("provider errors should be retried")
	}
}

func TestMessage_Text(t *testing.T) {
	m := Message{Parts: []Part{{Text: "a"}, {}, {Text: "b"}}}
	if m.Text() != "a\nb" {
		t.Errorf("unexpected text %q", m.Text())
	}
}
