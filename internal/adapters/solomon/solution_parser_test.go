package solomon

import (
	"path/filepath"
	"strings"
	"testing"

	"solomon-validator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSolutionFileParsesOnlyFinalRoutes(t *testing.T) {
	sol, err := ReadSolutionFile(filepath.Join("testdata", "c101_head_solution.txt"))
	require.NoError(t, err)

	assert.Equal(t, []domain.Route{
		{Vehicle: 1, Customers: []int{5, 3}},
		{Vehicle: 2, Customers: []int{4, 2, 1}},
	}, sol.Routes)
}

func TestParseSolutionWithoutFinalSection(t *testing.T) {
	text := `run 7
Vehicle 1: Depot(0) -> Client(3) -> Client(1) -> Depot(0)
Vehicle 2: Depot(0) -> Depot(0)
Vehicle 3: Depot(0) -> Client(2) -> Depot(0)
best fitness 123.4
`
	sol, err := ParseSolution(strings.NewReader(text))
	require.NoError(t, err)

	require.Len(t, sol.Routes, 3)
	assert.Equal(t, []int{3, 1}, sol.Routes[0].Customers)
	assert.True(t, sol.Routes[1].Empty())
	assert.Equal(t, 3, sol.Routes[2].Vehicle)
	assert.Equal(t, 2, sol.VehiclesUsed())
}

func TestParseSolutionLegacyLabels(t *testing.T) {
	text := `ROTAS FINAIS
====================
Veículo 1: Depósito(0) -> Cliente(2) -> Cliente(0) -> Cliente(1) -> Depósito(0)
====================
`
	sol, err := ParseSolution(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, sol.Routes, 1)
	assert.Equal(t, []int{2, 1}, sol.Routes[0].Customers, "depot tokens are never emitted")
}

func TestParseSolutionErrors(t *testing.T) {
	t.Run("no routes", func(t *testing.T) {
		_, err := ParseSolution(strings.NewReader("solver crashed\nno output\n"))
		assert.ErrorIs(t, err, ErrNoRoutes)
	})

	t.Run("empty final section", func(t *testing.T) {
		text := "INITIAL ROUTES\nVehicle 1: Depot(0) -> Client(1) -> Depot(0)\nFINAL ROUTES\n=====\n=====\n"
		_, err := ParseSolution(strings.NewReader(text))
		assert.ErrorIs(t, err, ErrEmptyFinalSection)
	})

	t.Run("final section of empty vehicles", func(t *testing.T) {
		text := "FINAL ROUTES\nVehicle 1: Depot(0) -> Depot(0)\nVehicle 2: Depot(0) -> Depot(0)\n=====\n"
		_, err := ParseSolution(strings.NewReader(text))
		assert.ErrorIs(t, err, ErrEmptyFinalSection)
	})

	t.Run("only empty vehicles without marker", func(t *testing.T) {
		_, err := ParseSolution(strings.NewReader("Vehicle 1: Depot(0) -> Depot(0)\n"))
		assert.ErrorIs(t, err, ErrNoRoutes)
	})
}

func TestParseSolutionEmptyVehicleKeepsRoutePosition(t *testing.T) {
	text := `FINAL ROUTES
Vehicle 1: Depot(0) -> Depot(0)
Vehicle 2: Depot(0) -> Client(4) -> Depot(0)
=====
`
	sol, err := ParseSolution(strings.NewReader(text))
	require.NoError(t, err)

	require.Len(t, sol.Routes, 2)
	assert.True(t, sol.Routes[0].Empty())
	assert.Equal(t, domain.Route{Vehicle: 2, Customers: []int{4}}, sol.Routes[1])
	assert.Equal(t, 1, sol.VehiclesUsed())
}

func TestParseSolutionLongLines(t *testing.T) {
	banner := "fitness history: " + strings.Repeat("123.45 ", 12000)
	text := banner + "\r\nFINAL ROUTES\r\nVehicle 1: Depot(0) -> Client(5) -> Client(3) -> Depot(0)\r\n=====\r\n" + banner + "\n"

	sol, err := ParseSolution(strings.NewReader(text))
	require.NoError(t, err)
	assert.Greater(t, len(banner), 64<<10)
	assert.Equal(t, []domain.Route{{Vehicle: 1, Customers: []int{5, 3}}}, sol.Routes)
}

func TestReadSolutionFileMissing(t *testing.T) {
	_, err := ReadSolutionFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}
