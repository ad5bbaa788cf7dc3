package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ammichelon/dashboard-dinetec/internal/metrics"
	"github.com/ammichelon/dashboard-dinetec/internal/model"
	"github.com/ammichelon/dashboard-dinetec/internal/repository"
	"github.com/ammichelon/dashboard-dinetec/internal/util"
	"github.com/jmoiron/sqlx"
)

// Check-in sources, used as metric labels.
const (
	SourceForm  = "form"
	SourceHTTP  = "http"
	SourceKafka = "kafka"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrLeadNotFound = errors.New("lead not found")
)

// Result of a registration. Created is false when the phone was already known.
type Result struct {
	Lead    *model.Lead    `json:"lead"`
	Checkin *model.Checkin `json:"checkin"`
	Created bool           `json:"created"`
}

// Service registers leads and appends their check-ins.
type Service struct {
	db       *sqlx.DB
	leads    repository.LeadsRepository
	checkins repository.CheckinsRepository

	now func() util.TimeParts
}

// New constructs the capture service.
func New(db *sqlx.DB, leadsRepo repository.LeadsRepository, checkinsRepo repository.CheckinsRepository) *Service {
	return &Service{
		db:       db,
		leads:    leadsRepo,
		checkins: checkinsRepo,
		now:      util.NowParts,
	}
}

// Register normalizes the phone, creates the lead if the normalized phone is
// new and records a check-in with the same origin, all in one transaction.
func (s *Service) Register(ctx context.Context, in model.LeadInput) (Result, error) {
	lead, err := buildLead(in)
	if err != nil {
		metrics.LeadsTotal.WithLabelValues("rejected").Inc()
		return Result{}, err
	}

	ts := s.now()
	lead.CreatedAt, lead.DayKey, lead.Hour = ts.ISO, ts.DayKey, ts.Hour

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Result{}, err
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := s.leads.GetByPhone(ctx, tx, lead.TelefoneNorm)
	if err != nil {
		return Result{}, fmt.Errorf("lookup lead: %w", err)
	}

	origem := lead.Origem
	created := existing == nil
	if created {
		// the tx holds the write lock since BEGIN, so no other writer can
		// insert this phone between the lookup and here
		if _, err := s.leads.Insert(ctx, tx, lead); err != nil {
			return Result{}, fmt.Errorf("insert lead: %w", err)
		}
	} else {
		lead = existing
	}

	chk := &model.Checkin{
		LeadID:    lead.ID,
		Origem:    origem,
		CreatedAt: ts.ISO,
		DayKey:    ts.DayKey,
		Hour:      ts.Hour,
	}
	if _, err := s.checkins.Insert(ctx, tx, chk); err != nil {
		return Result{}, fmt.Errorf("insert checkin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Result{}, err
	}

	if created {
		metrics.LeadsTotal.WithLabelValues("created").Inc()
	} else {
		metrics.LeadsTotal.WithLabelValues("returning").Inc()
	}
	metrics.CheckinsTotal.WithLabelValues(SourceForm).Inc()

	return Result{Lead: lead, Checkin: chk, Created: created}, nil
}

// CheckinByPhone records a check-in for the lead owning phone (any format).
func (s *Service) CheckinByPhone(ctx context.Context, phone, origem, source string) (*model.Checkin, error) {
	norm := util.NormalizePhone(phone)
	if norm == "" {
		return nil, fmt.Errorf("%w: telefone", ErrInvalidInput)
	}
	lead, err := s.leads.GetByPhone(ctx, nil, norm)
	if err != nil {
		return nil, fmt.Errorf("lookup lead: %w", err)
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return s.checkin(ctx, lead.ID, origem, source)
}

// CheckinByID records a check-in for an existing lead id.
func (s *Service) CheckinByID(ctx context.Context, leadID int64, origem, source string) (*model.Checkin, error) {
	lead, err := s.leads.GetByID(ctx, nil, leadID)
	if err != nil {
		return nil, fmt.Errorf("lookup lead: %w", err)
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return s.checkin(ctx, lead.ID, origem, source)
}

// Lead returns the lead owning phone, or ErrLeadNotFound.
func (s *Service) Lead(ctx context.Context, phone string) (*model.Lead, error) {
	norm := util.NormalizePhone(phone)
	if norm == "" {
		return nil, fmt.Errorf("%w: telefone", ErrInvalidInput)
	}
	lead, err := s.leads.GetByPhone(ctx, nil, norm)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

// Checkins lists the latest check-ins of a lead.
func (s *Service) Checkins(ctx context.Context, leadID int64, limit int) ([]model.Checkin, error) {
	return s.checkins.ListByLead(ctx, leadID, limit)
}

func (s *Service) checkin(ctx context.Context, leadID int64, origem, source string) (*model.Checkin, error) {
	origem = strings.TrimSpace(origem)
	if origem == "" {
		return nil, fmt.Errorf("%w: origem", ErrInvalidInput)
	}

	ts := s.now()
	chk := &model.Checkin{
		LeadID:    leadID,
		Origem:    origem,
		CreatedAt: ts.ISO,
		DayKey:    ts.DayKey,
		Hour:      ts.Hour,
	}
	if _, err := s.checkins.Insert(ctx, nil, chk); err != nil {
		return nil, fmt.Errorf("insert checkin: %w", err)
	}

	metrics.CheckinsTotal.WithLabelValues(source).Inc()
	return chk, nil
}

func buildLead(in model.LeadInput) (*model.Lead, error) {
	l := &model.Lead{
		Nome:          strings.TrimSpace(in.Nome),
		TelefoneRaw:   in.Telefone,
		TelefoneNorm:  util.NormalizePhone(in.Telefone),
		Email:         trimOptional(in.Email),
		Perfil:        strings.TrimSpace(in.Perfil),
		Origem:        strings.TrimSpace(in.Origem),
		Consentimento: in.Consentimento == nil || *in.Consentimento,
		Survey:        in.Survey,
	}

	switch {
	case l.Nome == "":
		return nil, fmt.Errorf("%w: nome", ErrInvalidInput)
	case l.TelefoneNorm == "":
		return nil, fmt.Errorf("%w: telefone", ErrInvalidInput)
	case l.Perfil == "":
		return nil, fmt.Errorf("%w: perfil", ErrInvalidInput)
	case l.Origem == "":
		return nil, fmt.Errorf("%w: origem", ErrInvalidInput)
	}
	return l, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
