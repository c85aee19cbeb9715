package wire

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cliadapter "github.com/example/marina/internal/adapters/cli"
	"github.com/example/marina/internal/config"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Security.CCTVDelay = 0
	return cfg
}

func TestBuild_PersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	first, err := Build(ctx, cfg)
	require.NoError(t, err)
	res, err := first.Console.Handle(ctx, primary.Request{Text: "invoice S/Y Phisedelia 300 EUR for berthing", User: first.Operator}, nil)
	require.NoError(t, err)
	require.True(t, res.Mutated)
	require.NoError(t, first.Close())

	second, err := Build(ctx, cfg)
	require.NoError(t, err)
	defer second.Close()

	entry, err := second.Store.Ledger().Get(ctx, models.NormalizeName("S/Y Phisedelia"))
	require.NoError(t, err)
	assert.Equal(t, 300.0, entry.Balance)

	records, err := second.Audit.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "gm-01", records[0].ActorID)
}

func TestBuild_InvalidOperatorRole(t *testing.T) {
	cfg := testConfig(t)
	cfg.Operator.Role = "ADMIRAL"

	_, err := Build(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid operator role")
}

func TestBuild_MissingDocsDirFallsBack(t *testing.T) {
	cfg := testConfig(t)
	cfg.DocsDir = filepath.Join(t.TempDir(), "absent")

	s, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()

	var buf bytes.Buffer
	err = cliadapter.NewConsoleAdapter(s.Console, &buf, false).Ask(context.Background(), s.Operator, "what is the overstay penalty")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(buf.String()))
}

func TestOperator(t *testing.T) {
	user, err := Operator(config.OperatorConfig{Role: "captain", VesselName: "S/Y Phisedelia"})
	require.NoError(t, err)

	assert.Equal(t, models.RoleCaptain, user.Role)
	assert.Equal(t, "captain", user.ID)
	assert.Equal(t, 3, user.ClearanceLevel)
	assert.Equal(t, "S/Y Phisedelia", user.VesselName)
}
