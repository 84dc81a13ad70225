// internal/workers/document/generate-application-document/handler.go
package generateapplicationdocument

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"

	"document-workers/internal/common/aws"
	apperrors "document-workers/internal/common/errors"
	"document-workers/internal/common/logger"
	"document-workers/internal/common/metrics"
	"document-workers/internal/common/observability"
	"document-workers/internal/common/validation"
	"document-workers/internal/document"
)

const TaskType = "generate-application-document"

var schema = validation.MustCompile(inputSchema)

type DocumentGenerator interface {
	GenerateDocument(ctx context.Context, applicationID uuid.UUID, baseURI string) (*document.Document, error)
}

type DocumentArchive interface {
	Key(applicationID, name string) string
	Put(ctx context.Context, key string, body []byte, metadata map[string]string) (string, error)
}

type EventPublisher interface {
	PublishDocumentGenerated(ctx context.Context, event aws.DocumentGeneratedEvent) (string, error)
}

type Handler struct {
	config       *Config
	generator    DocumentGenerator
	archive      DocumentArchive
	publisher    EventPublisher
	obs          *observability.Observability
	errorHandler *apperrors.ErrorHandler
	logger       logger.Logger
	now          func() time.Time
}

type Option func(*Handler)

// WithArchive uploads every generated document.
func WithArchive(a DocumentArchive) Option {
	return func(h *Handler) { h.archive = a }
}

// WithPublisher announces every generated document.
func WithPublisher(p EventPublisher) Option {
	return func(h *Handler) { h.publisher = p }
}

func WithObservability(o *observability.Observability) Option {
	return func(h *Handler) { h.obs = o }
}

func withClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(config *Config, generator DocumentGenerator, log logger.Logger, opts ...Option) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	h := &Handler{
		config:       config,
		generator:    generator,
		errorHandler: apperrors.NewErrorHandler(log),
		logger:       log,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	active := metrics.DocumentJobsActive.WithLabelValues(TaskType)
	active.Inc()
	defer active.Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	ctx, span := h.obs.StartSpan(ctx, TaskType,
		attribute.Int64("job.key", job.Key),
		attribute.Int64("process.instance.key", job.ProcessInstanceKey),
	)
	defer span.End()

	output, err := h.run(ctx, job.Variables)
	status := "success"
	if err != nil {
		status = "failed"
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())

		res := h.errorHandler.HandleJobError(context.Background(), client, job, err)
		metrics.DocumentJobsFailed.WithLabelValues(TaskType, string(res.Standard.Code)).Inc()
	} else {
		outcome := metrics.OutcomeSkipped
		if output.DocumentGenerated {
			outcome = metrics.OutcomeGenerated
		}
		span.SetAttributes(attribute.String("document.outcome", outcome))
		h.completeJob(client, job, output)
		metrics.DocumentJobsCompleted.WithLabelValues(TaskType, outcome).Inc()
	}

	elapsed := time.Since(start)
	metrics.DocumentJobDuration.WithLabelValues(TaskType).Observe(elapsed.Seconds())
	h.obs.RecordJobProcessed(ctx, status)
	h.obs.RecordJobDuration(ctx, elapsed, status)
}

func (h *Handler) run(ctx context.Context, variables string) (*Output, error) {
	input, err := decodeInput(variables)
	if err != nil {
		return nil, err
	}
	return h.Execute(ctx, input)
}

func decodeInput(variables string) (*Input, error) {
	if res := schema.ValidateJSON(variables); !res.Valid {
		return nil, apperrors.NewInvalidInputError(res.Error())
	}
	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(err.Error())
	}
	return &input, nil
}

// Execute generates the document for one application and delivers it. An
// application without a document completes with documentGenerated=false.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	applicationID, err := uuid.Parse(input.ApplicationID)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("applicationId: " + err.Error())
	}

	baseURI := input.BaseURI
	if baseURI == "" {
		baseURI = h.config.BaseURI
	}
	if baseURI == "" {
		return nil, apperrors.NewInvalidInputError("baseUri: not set on the job or in document.base_uri")
	}

	doc, err := h.generator.GenerateDocument(ctx, applicationID, baseURI)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		h.logger.Info("no document generated", map[string]interface{}{
			"applicationId": applicationID.String(),
		})
		return &Output{DocumentGenerated: false}, nil
	}

	generatedAt := h.now().UTC().Format(time.RFC3339)
	state := string(doc.State)
	out := &Output{
		DocumentGenerated: true,
		DocumentSize:      len(doc.Bytes),
		DocumentPages:     doc.Pages,
		ApplicationState:  state,
		GeneratedAt:       generatedAt,
	}
	metrics.DocumentSizeBytes.WithLabelValues(state).Observe(float64(len(doc.Bytes)))
	h.obs.RecordDocumentSize(ctx, len(doc.Bytes), state)

	if h.archive != nil {
		key := h.archive.Key(applicationID.String(), documentName(doc))
		location, err := h.archive.Put(ctx, key, doc.Bytes, map[string]string{
			"application-id":   applicationID.String(),
			"reference-number": doc.ReferenceNumber,
			"state":            state,
			"template":         doc.Template,
			"generated-at":     generatedAt,
		})
		if err != nil {
			return nil, apperrors.NewDocumentUploadFailedError(key, err)
		}
		out.DocumentKey = key
		out.DocumentLocation = location
	}

	if h.publisher != nil {
		messageID, err := h.publisher.PublishDocumentGenerated(ctx, aws.DocumentGeneratedEvent{
			ApplicationID:   applicationID.String(),
			ReferenceNumber: doc.ReferenceNumber,
			State:           state,
			Location:        out.DocumentLocation,
			SizeBytes:       len(doc.Bytes),
			GeneratedAt:     generatedAt,
		})
		if err != nil {
			return nil, apperrors.NewNotificationPublishFailedError(err).
				WithMetadata("documentKey", out.DocumentKey)
		}
		out.EventMessageID = messageID
	}

	h.logger.Info("document generated", map[string]interface{}{
		"applicationId": applicationID.String(),
		"state":         state,
		"sizeBytes":     out.DocumentSize,
		"pages":         out.DocumentPages,
		"documentKey":   out.DocumentKey,
	})
	return out, nil
}

// documentName prefers the reference number so archived files are easy to
// find by hand.
func documentName(doc *document.Document) string {
	if doc.ReferenceNumber != "" {
		return doc.ReferenceNumber
	}
	return doc.ApplicationID.String()
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{"error": err})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
	}
}
