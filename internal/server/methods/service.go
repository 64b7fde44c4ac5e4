package methods

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/LeJamon/goassetd/internal/core/amount"
	"github.com/LeJamon/goassetd/internal/core/payment"
	"github.com/LeJamon/goassetd/internal/storage/audit"
	"github.com/LeJamon/goassetd/internal/storage/snapshot"
)

var (
	ErrUnknownIssuer = errors.New("unknown issuer")
	ErrUnknownPurse  = errors.New("unknown purse")
)

// Service owns every issuer kit in the process and exposes their
// operations to the RPC layer. A single mutex serializes requests; the
// ledgers have their own locks, but registry lookups and snapshot
// sequencing need one too.
type Service struct {
	mu      sync.Mutex
	log     *logrus.Logger
	issuers map[string]*payment.IssuerKit
	seqs    map[string]uint64

	snapshots *snapshot.Store
	auditLog  *audit.Log
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithSnapshotStore enables snapshot persistence.
func WithSnapshotStore(store *snapshot.Store) Option {
	return func(s *Service) { s.snapshots = store }
}

// WithAuditLog attaches an audit log; every issuer created or restored
// by the service records its operations there.
func WithAuditLog(log *audit.Log) Option {
	return func(s *Service) { s.auditLog = log }
}

// NewService creates an empty issuer registry.
func NewService(opts ...Option) *Service {
	s := &Service{
		log:     logrus.New(),
		issuers: make(map[string]*payment.IssuerKit),
		seqs:    make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validIssuerName(name string) error {
	if name == "" {
		return fmt.Errorf("issuer name must not be empty")
	}
	if strings.ContainsRune(name, '/') {
		return fmt.Errorf("issuer name must not contain '/'")
	}
	return nil
}

// register wires a kit into the service. Caller must hold s.mu.
func (s *Service) register(name string, kit *payment.IssuerKit) {
	if s.auditLog != nil {
		log := s.log
		kit.Issuer.SetRecorder(s.auditLog.Recorder(name, func(err error) {
			log.WithError(err).WithField("issuer", name).Error("audit append failed")
		}))
	}
	s.issuers[name] = kit
}

func (s *Service) kit(name string) (*payment.IssuerKit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kit, ok := s.issuers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIssuer, name)
	}
	return kit, nil
}

// CreateIssuer creates and registers a new issuer kit.
func (s *Service) CreateIssuer(name string, kind amount.Kind, decimalPlaces int) (*payment.IssuerKit, error) {
	if err := validIssuerName(name); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.issuers[name]; exists {
		return nil, fmt.Errorf("issuer %q already exists", name)
	}

	var (
		kit *payment.IssuerKit
		err error
	)
	if kind == amount.KindDecimal {
		kit, err = payment.NewDecimalIssuerKit(name, decimalPlaces)
	} else {
		kit, err = payment.NewIssuerKit(name, kind, amount.DisplayInfo{DecimalPlaces: decimalPlaces})
	}
	if err != nil {
		return nil, err
	}
	s.register(name, kit)
	s.log.WithFields(logrus.Fields{
		"issuer":    name,
		"assetKind": kind.String(),
	}).Info("issuer created")
	return kit, nil
}

// SnapshotIssuer persists the named issuer's state and returns the new
// sequence number.
func (s *Service) SnapshotIssuer(ctx context.Context, name string) (uint64, error) {
	if s.snapshots == nil {
		return 0, fmt.Errorf("snapshot store not configured")
	}
	kit, err := s.kit(name)
	if err != nil {
		return 0, err
	}
	snap, err := kit.Snapshot()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.seqs[name]++
	seq := s.seqs[name]
	s.mu.Unlock()

	if err := s.snapshots.Save(ctx, name, seq, snap); err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"issuer": name, "seq": seq}).Info("snapshot saved")
	return seq, nil
}

// SnapshotAll persists every registered issuer and returns the sequence
// number written for each.
func (s *Service) SnapshotAll(ctx context.Context) (map[string]uint64, error) {
	s.mu.Lock()
	names := make([]string, 0, len(s.issuers))
	for name := range s.issuers {
		names = append(names, name)
	}
	s.mu.Unlock()

	seqs := make(map[string]uint64, len(names))
	for _, name := range names {
		seq, err := s.SnapshotIssuer(ctx, name)
		if err != nil {
			return nil, err
		}
		seqs[name] = seq
	}
	return seqs, nil
}

// RestoreIssuers loads the latest snapshot of every issuer present in
// the snapshot store. Called once at startup, before the service takes
// requests.
func (s *Service) RestoreIssuers(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	names, err := s.snapshots.Issuers(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		snap, seq, err := s.snapshots.LoadLatest(ctx, name)
		if err != nil {
			return err
		}
		kit, err := payment.RestoreKit(snap)
		if err != nil {
			return fmt.Errorf("restore issuer %q: %w", name, err)
		}
		s.mu.Lock()
		s.register(name, kit)
		s.seqs[name] = seq
		s.mu.Unlock()
		s.log.WithFields(logrus.Fields{"issuer": name, "seq": seq}).Info("issuer restored")
	}
	return nil
}

// IssuerNames returns the registered issuer names.
func (s *Service) IssuerNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.issuers))
	for name := range s.issuers {
		names = append(names, name)
	}
	return names
}
