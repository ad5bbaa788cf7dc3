package worker

import (
	"context"
	"errors"

	"github.com/ammichelon/dashboard-dinetec/internal/kafka"
	"github.com/ammichelon/dashboard-dinetec/internal/model"
	"github.com/ammichelon/dashboard-dinetec/internal/service/capture"
	"go.uber.org/zap"
)

// Source is the part of kafka.Consumer the worker needs.
type Source interface {
	Fetch(ctx context.Context) (kafka.Message, error)
	Commit(ctx context.Context, m kafka.Message) error
}

// Recorder stores a check-in for the lead owning phone.
type Recorder interface {
	CheckinByPhone(ctx context.Context, phone, origem, source string) (*model.Checkin, error)
}

// Checkins:
// - fetches scan events from Kafka,
// - records a check-in per event,
// - commits after handling; poison and unknown-lead events are skipped.
type Checkins struct {
	Source   Source
	Recorder Recorder
	Log      *zap.Logger
}

func NewCheckins(src Source, rec Recorder, log *zap.Logger) *Checkins {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checkins{Source: src, Recorder: rec, Log: log}
}

// Run blocks until ctx is cancelled or a storage error occurs.
func (w *Checkins) Run(ctx context.Context) error {
	for {
		m, err := w.Source.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := w.handle(ctx, m); err != nil {
			// not committed: the event is redelivered after restart
			return err
		}

		if err := w.Source.Commit(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (w *Checkins) handle(ctx context.Context, m kafka.Message) error {
	ev, err := kafka.DecodeScanEvent(m)
	if err != nil {
		w.Log.Warn("skip malformed scan event", zap.Int64("offset", m.Offset), zap.Error(err))
		return nil
	}

	chk, err := w.Recorder.CheckinByPhone(ctx, ev.Phone, ev.Origem, capture.SourceKafka)
	switch {
	case errors.Is(err, capture.ErrLeadNotFound), errors.Is(err, capture.ErrInvalidInput):
		w.Log.Warn("skip scan event", zap.String("event_id", ev.ID), zap.Error(err))
		return nil
	case err != nil:
		return err
	}

	w.Log.Debug("checkin recorded",
		zap.String("event_id", ev.ID),
		zap.Int64("lead_id", chk.LeadID),
		zap.String("origem", chk.Origem),
	)
	return nil
}
