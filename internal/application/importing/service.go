// Package importing coordinates order imports across registered platform
// importers. The service owns an explicit importer registry so callers can
// run independent registries side by side, for example one per tenant or
// one per test.
package importing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tectle/backend/internal/domain/orders"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	// ErrUnknownPlatform reports a batch keyed by a platform with no
	// registered importer.
	ErrUnknownPlatform = errors.New("importing: unknown platform")

	// ErrAlreadyRegistered reports a RegisterNew call for a platform that
	// already has an importer.
	ErrAlreadyRegistered = errors.New("importing: importer already registered")
)

// UnknownPlatformError carries the offending platform key of a rejected
// import call.
type UnknownPlatformError struct {
	Platform string
}

func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("importing: unknown platform %q", e.Platform)
}

func (e *UnknownPlatformError) Unwrap() error {
	return ErrUnknownPlatform
}

// ---------------------------------------------------------------------------
// Results
// ---------------------------------------------------------------------------

// Failure records one payload that could not be parsed. Index is the
// position of the payload within its platform batch.
type Failure struct {
	Platform string `json:"platform"`
	Index    int    `json:"index"`
	Err      error  `json:"-"`
}

// Reason returns the failure cause as text for transport and logging.
func (f Failure) Reason() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// Result is the outcome of one ImportAll run. Orders holds every payload
// that parsed cleanly and Failures every payload that did not. A payload
// never appears in both.
type Result struct {
	RunID    uuid.UUID
	Orders   []*orders.Order
	Failures []Failure
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service parses raw platform payloads into canonical orders through an
// explicit importer registry. The zero registry is empty; importers are
// added with Register or RegisterNew. Service is safe for concurrent use.
type Service struct {
	mu        sync.RWMutex
	importers map[string]orders.Importer
	logger    *zap.Logger
}

// NewService creates an import service holding the given importers. A nil
// logger disables logging.
func NewService(logger *zap.Logger, importers ...orders.Importer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		importers: make(map[string]orders.Importer),
		logger:    logger,
	}
	for _, imp := range importers {
		s.Register(imp)
	}
	return s
}

// Register adds an importer under its platform key, replacing any importer
// previously registered for the same platform.
func (s *Service) Register(imp orders.Importer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importers[imp.Platform()] = imp
}

// RegisterNew adds an importer under its platform key and fails with
// ErrAlreadyRegistered if the platform is already taken.
func (s *Service) RegisterNew(imp orders.Importer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	platform := imp.Platform()
	if _, exists := s.importers[platform]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, platform)
	}
	s.importers[platform] = imp
	return nil
}

// Platforms returns the registered platform keys in sorted order.
func (s *Service) Platforms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.importers))
	for k := range s.importers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ImportAll parses every payload in the given per-platform batches.
//
// All platform keys are checked before any payload is parsed; a single
// unknown key rejects the whole call with an UnknownPlatformError and no
// partial result. Within a known batch each payload is parsed in
// isolation, so one malformed payload is recorded as a Failure without
// affecting its neighbours. Batches are processed in sorted platform
// order, which keeps results deterministic across runs.
func (s *Service) ImportAll(ctx context.Context, batches map[string][]orders.RawPayload) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	platforms := make([]string, 0, len(batches))
	for platform := range batches {
		if _, ok := s.importers[platform]; !ok {
			return nil, &UnknownPlatformError{Platform: platform}
		}
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	result := &Result{RunID: uuid.New()}
	for _, platform := range platforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		imp := s.importers[platform]
		for idx, payload := range batches[platform] {
			order, err := imp.ParseOrder(payload)
			if err != nil {
				s.logger.Warn("payload rejected",
					zap.String("platform", platform),
					zap.Int("index", idx),
					zap.Error(err))
				result.Failures = append(result.Failures, Failure{
					Platform: platform,
					Index:    idx,
					Err:      err,
				})
				continue
			}
			result.Orders = append(result.Orders, order)
		}
	}

	s.logger.Info("import run finished",
		zap.String("run_id", result.RunID.String()),
		zap.Int("orders", len(result.Orders)),
		zap.Int("failures", len(result.Failures)))

	return result, nil
}

// Report summarizes the given orders into aggregate counts and revenue.
func (s *Service) Report(list []*orders.Order) *orders.Report {
	return orders.BuildReport(list)
}
