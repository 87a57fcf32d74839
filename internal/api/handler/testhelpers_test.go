package handler

import (
	"context"
	"io"
	"log/slog"

	"github.com/iconidentify/shortsnext/internal/domain"
	"github.com/iconidentify/shortsnext/internal/extract"
	"github.com/iconidentify/shortsnext/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockShortsService is a test implementation of NextFinder.
type mockShortsService struct {
	result  *domain.NextResult
	err     error
	lastReq service.NextRequest
	calls   int
}

func (m *mockShortsService) Next(ctx context.Context, req service.NextRequest) (*domain.NextResult, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockStrategySource is a test implementation of StrategySource.
type mockStrategySource struct {
	def        extract.Strategy
	strategies []extract.Strategy
}

func newMockStrategySource() *mockStrategySource {
	return &mockStrategySource{
		def: extract.StrategySequence,
		strategies: []extract.Strategy{
			extract.StrategyRPC,
			extract.StrategyScan,
			extract.StrategySequence,
		},
	}
}

func (m *mockStrategySource) DefaultStrategy() extract.Strategy {
	return m.def
}

func (m *mockStrategySource) Strategies() []extract.Strategy {
	return m.strategies
}
