package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ammichelon/dashboard-dinetec/internal/db"
	"github.com/ammichelon/dashboard-dinetec/internal/repository"
	"github.com/ammichelon/dashboard-dinetec/internal/service/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedLeads_Idempotent(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.Initialize(ctx, db.SQLiteOpts{Path: filepath.Join(t.TempDir(), "seed.sqlite")})
	require.NoError(t, err)
	defer sqlDB.Close()

	svc := capture.New(sqlDB, repository.NewLeadsRepository(sqlDB), repository.NewCheckinsRepository(sqlDB))

	n, err := seedLeads(ctx, svc)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = seedLeads(ctx, svc)
	require.NoError(t, err)
	assert.Zero(t, n)

	var leads, checkins int
	require.NoError(t, sqlDB.Get(&leads, `SELECT COUNT(*) FROM leads`))
	require.NoError(t, sqlDB.Get(&checkins, `SELECT COUNT(*) FROM checkins`))
	assert.Equal(t, 4, leads)
	assert.Equal(t, 4, checkins)

	l, err := svc.Lead(ctx, "5564999112233")
	require.NoError(t, err)
	require.NotNil(t, l.AreaSoja)
	assert.Equal(t, "800 ha", *l.AreaSoja)
}
