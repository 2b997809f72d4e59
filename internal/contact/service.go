package contact

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "webmodels/contact"

// Service validates submissions and writes them to a Store.
type Service struct {
	store  Store
	now    func() time.Time
	newID  func() (uuid.UUID, error)
	tracer trace.Tracer
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides uuid.NewV7.
func WithIDGenerator(gen func() (uuid.UUID, error)) ServiceOption {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		now:    time.Now,
		newID:  uuid.NewV7,
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit normalizes, validates and persists a contact form.
func (s *Service) Submit(ctx context.Context, form Form) (*Submission, error) {
	ctx, span := s.tracer.Start(ctx, "contact.Submit")
	defer span.End()

	form = Normalize(form)
	if err := Validate(form); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	id, err := s.newID()
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("generating submission id: %w", err))
	}
	now := s.now().UTC()
	sub := &Submission{
		ID:            id,
		Name:          form.Name,
		Email:         form.Email,
		Model:         form.Model,
		Message:       form.Message,
		Customization: form.Customization,
		Status:        StatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	span.SetAttributes(
		attribute.String("webmodels.contact.id", id.String()),
		attribute.String("webmodels.contact.model", sub.Model),
	)
	if err := s.store.Create(ctx, sub); err != nil {
		return nil, s.fail(span, fmt.Errorf("storing submission: %w", err))
	}
	log.Printf("[contact] stored submission %s (model=%s)", sub.ID, sub.Model)
	return sub, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Submission, error) {
	ctx, span := s.tracer.Start(ctx, "contact.Get", trace.WithAttributes(attribute.String("webmodels.contact.id", id.String())))
	defer span.End()
	sub, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return sub, nil
}

func (s *Service) List(ctx context.Context, opts ListOptions) ([]Submission, error) {
	ctx, span := s.tracer.Start(ctx, "contact.List", trace.WithAttributes(attribute.String("webmodels.contact.status", string(opts.Status))))
	defer span.End()
	subs, err := s.store.List(ctx, opts)
	if err != nil {
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.Int("webmodels.contact.count", len(subs)))
	return subs, nil
}

// SetStatus moves a submission to status and returns the updated record.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Submission, error) {
	ctx, span := s.tracer.Start(ctx, "contact.SetStatus", trace.WithAttributes(
		attribute.String("webmodels.contact.id", id.String()),
		attribute.String("webmodels.contact.status", string(status)),
	))
	defer span.End()

	parsed, err := ParseStatus(string(status))
	if err != nil {
		return nil, s.fail(span, err)
	}
	if err := s.store.UpdateStatus(ctx, id, parsed, s.now().UTC()); err != nil {
		return nil, s.fail(span, err)
	}
	log.Printf("[contact] submission %s -> %s", id, parsed)
	return s.store.Get(ctx, id)
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
