package diagnosis

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Observer recibe eventos de dominio (p.ej. para métricas).
type Observer interface {
	ObserveDiagnosis(tier Tier)
	ObserveRejected(fields []FieldError)
	ObserveHistorySize(n int)
}

type nopObserver struct{}

func (nopObserver) ObserveDiagnosis(Tier)        {}
func (nopObserver) ObserveRejected([]FieldError) {}
func (nopObserver) ObserveHistorySize(int)       {}

type Service struct {
	repo       Repository
	classifier *Classifier
	clock      clockwork.Clock
	observer   Observer
}

type Option func(*Service)

// WithClock define el reloj usado para created_at.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

func NewService(repo Repository, classifier *Classifier, opts ...Option) *Service {
	if classifier == nil {
		classifier = NewClassifier(nil)
	}
	s := &Service{
		repo:       repo,
		classifier: classifier,
		clock:      clockwork.NewRealClock(),
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Diagnose valida, clasifica y guarda un reporte. Un reporte inválido nunca
// llega al historial.
func (s *Service) Diagnose(ctx context.Context, raw RawReport) (Record, error) {
	rep, err := Validate(raw)
	if err != nil {
		if ve, ok := AsValidationError(err); ok {
			s.observer.ObserveRejected(ve.Fields)
		}
		return Record{}, err
	}

	out := s.classifier.Classify(rep)
	rec := Record{
		ID:             uuid.NewString(),
		Report:         rep,
		Tier:           out.Tier,
		Recommendation: out.Recommendation,
		Confidence:     out.Confidence,
		MatchedKeyword: out.MatchedKeyword,
		CreatedAt:      s.clock.Now().UTC(),
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return Record{}, err
	}

	s.observer.ObserveDiagnosis(rec.Tier)
	s.refreshSize(ctx)
	return rec, nil
}

// Echo devuelve el body recibido sin cambios, con campos desconocidos y
// nulls incluidos. No valida rangos.
func (s *Service) Echo(raw RawReport) map[string]json.RawMessage {
	return raw.Payload()
}

// History devuelve todos los registros, del más viejo al más nuevo.
func (s *Service) History(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

// ClearHistory vacía el historial y devuelve cuántos registros borró.
func (s *Service) ClearHistory(ctx context.Context) (int, error) {
	n, err := s.repo.Clear(ctx)
	if err != nil {
		return 0, err
	}
	s.refreshSize(ctx)
	return n, nil
}

// Keywords expone las frases de emergencia activas.
func (s *Service) Keywords() []string {
	return s.classifier.Keywords()
}

func (s *Service) refreshSize(ctx context.Context) {
	if n, err := s.repo.Len(ctx); err == nil {
		s.observer.ObserveHistorySize(n)
	}
}
