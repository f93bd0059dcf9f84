package audit

import (
	"context"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentKind selects one of the compiled documents
type DocumentKind string

const (
	DocumentNarrative DocumentKind = "narrative"
	DocumentExecutive DocumentKind = "executive"
	DocumentWorkbook  DocumentKind = "workbook"
)

// DocumentKinds lists every compiled document
var DocumentKinds = []DocumentKind{DocumentNarrative, DocumentExecutive, DocumentWorkbook}

// Content types of compiled documents
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const fileStampLayout = "20060102_150405"

// ParseDocumentKind parses a document kind
func ParseDocumentKind(s string) (DocumentKind, error) {
	for _, k := range DocumentKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", shared.NewConfigurationError("unknown document kind %q", s)
}

// ContentType returns the MIME type of the document
func (k DocumentKind) ContentType() string {
	if k == DocumentWorkbook {
		return ContentTypeXLSX
	}
	return ContentTypePDF
}

// FileName returns the download name for a document generated at t
func (k DocumentKind) FileName(t time.Time) string {
	stamp := t.Format(fileStampLayout)
	switch k {
	case DocumentNarrative:
		return "informe_auditoria_" + stamp + ".pdf"
	case DocumentWorkbook:
		return "informe_" + stamp + ".xlsx"
	}
	return "informe_" + stamp + ".pdf"
}

// Artifact is a compiled document ready for delivery
type Artifact struct {
	Kind        DocumentKind
	FileName    string
	ContentType string
	Data        []byte
	SnapshotID  uuid.UUID
	Cached      bool
}

// cacheKey scopes a snapshot to the service settings that shape the
// rendered bytes, so services configured differently never share entries.
func (s *Service) cacheKey(id uuid.UUID, kind DocumentKind) string {
	return uuid.NewSHA1(id, []byte(s.settingsKey)).String() + ":" + string(kind)
}

// Document returns the compiled document for opts. Documents are memoized
// by snapshot, service settings and kind when a cache is configured; cache
// failures only degrade to a fresh compile.
func (s *Service) Document(ctx context.Context, opts Options, kind DocumentKind) (*Artifact, error) {
	artifacts, err := s.Documents(ctx, opts, kind)
	if err != nil {
		return nil, err
	}
	return artifacts[0], nil
}

// Documents returns the requested documents in order. Cache misses are
// compiled from a single snapshot, built at most once per call.
func (s *Service) Documents(ctx context.Context, opts Options, kinds ...DocumentKind) ([]*Artifact, error) {
	if len(kinds) == 0 {
		return nil, shared.NewConfigurationError("no document kind requested")
	}
	for _, kind := range kinds {
		if _, err := ParseDocumentKind(string(kind)); err != nil {
			return nil, err
		}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	id := opts.SnapshotID()
	now := s.now()
	artifacts := make([]*Artifact, len(kinds))
	var snap *Snapshot
	for i, kind := range kinds {
		artifact := &Artifact{
			Kind:        kind,
			FileName:    kind.FileName(now),
			ContentType: kind.ContentType(),
			SnapshotID:  id,
		}
		artifacts[i] = artifact
		log := s.logger.With(
			zap.String("snapshot_id", id.String()),
			zap.String("document", string(kind)),
		)

		key := s.cacheKey(id, kind)
		if data, ok := s.cached(ctx, log, key, kind); ok {
			artifact.Data = data
			artifact.Cached = true
			continue
		}

		start := time.Now()
		if snap == nil {
			var err error
			if snap, err = s.Snapshot(ctx, opts); err != nil {
				s.metrics.ObservePipeline(string(kind), time.Since(start), err)
				return nil, err
			}
		}
		data, err := s.DocumentFromSnapshot(ctx, snap, kind, now)
		s.metrics.ObservePipeline(string(kind), time.Since(start), err)
		if err != nil {
			log.Error("document compile failed", zap.Error(err))
			return nil, err
		}
		artifact.Data = data

		if s.cache != nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				log.Warn("artifact cache write failed", zap.Error(err))
			}
		}
		log.Info("document compiled", zap.Int("bytes", len(data)))
	}
	return artifacts, nil
}

func (s *Service) cached(ctx context.Context, log *zap.Logger, key string, kind DocumentKind) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("artifact cache read failed", zap.Error(err))
	}
	hit := err == nil && ok
	s.metrics.ObserveCache(string(kind), hit)
	return data, hit
}

// DocumentFromSnapshot compiles one document from an already consolidated
// snapshot. generatedAt is printed where a document shows its creation time.
func (s *Service) DocumentFromSnapshot(ctx context.Context, snap *Snapshot, kind DocumentKind, generatedAt time.Time) ([]byte, error) {
	if _, err := ParseDocumentKind(string(kind)); err != nil {
		return nil, err
	}
	c := s.compiler(snap.Options, generatedAt)
	switch kind {
	case DocumentNarrative:
		return c.CompileNarrativeReport(ctx, snap.Summary, snap.Ledgers)
	case DocumentExecutive:
		return c.CompileExecutiveSummary(ctx, snap.Summary)
	default:
		return c.CompileWorkbook(ctx, snap.Summary, snap.Ledgers)
	}
}
