package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ammichelon/dashboard-dinetec/internal/db"
	"github.com/ammichelon/dashboard-dinetec/internal/logger"
	"github.com/ammichelon/dashboard-dinetec/internal/model"
	"github.com/ammichelon/dashboard-dinetec/internal/repository"
	"github.com/ammichelon/dashboard-dinetec/internal/service/capture"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		sqlDB, err := db.Initialize(cmd.Context(), db.OptsFromConfig(cfg.SQLite))
		if err != nil {
			return fmt.Errorf("initialize db: %w", err)
		}
		defer sqlDB.Close()

		svc := capture.New(sqlDB, repository.NewLeadsRepository(sqlDB), repository.NewCheckinsRepository(sqlDB))

		logger.Log.Info("seeding demo leads")
		n, err := seedLeads(cmd.Context(), svc)
		if err != nil {
			return err
		}
		logger.Log.Info("seed completed", zap.Int("created", n))
		return nil
	},
}

// seedLeads registers deterministic demo leads, skipping phones already known.
func seedLeads(ctx context.Context, svc *capture.Service) (int, error) {
	yes, no := true, false
	area := "800 ha"
	culturas := "soja,milho"

	leads := []model.LeadInput{
		{Nome: "Carlos Pereira", Telefone: "(64) 99911-2233", Perfil: "produtor", Origem: "stand",
			Survey: model.Survey{AreaSoja: &area, ClienteBoasafra: &yes, ComprouUltima: &yes, Culturas: &culturas}},
		{Nome: "Fernanda Lima", Telefone: "(62) 3232-1010", Perfil: "consultor", Origem: "palestra",
			Survey: model.Survey{ClienteBoasafra: &no}},
		{Nome: "Rafael Souza", Telefone: "+55 34 98888-7766", Perfil: "revenda", Origem: "stand"},
		{Nome: "Juliana Alves", Telefone: "11 91234-5678", Perfil: "produtor", Origem: "totem"},
	}

	created := 0
	for _, in := range leads {
		if _, err := svc.Lead(ctx, in.Telefone); err == nil {
			continue
		} else if !errors.Is(err, capture.ErrLeadNotFound) {
			return created, fmt.Errorf("lookup %q: %w", in.Nome, err)
		}

		if _, err := svc.Register(ctx, in); err != nil {
			return created, fmt.Errorf("register %q: %w", in.Nome, err)
		}
		created++
	}
	return created, nil
}
