package merchant

import (
	"context"
	"strings"
	"testing"
	"time"

	"merchant-registry/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTSVHeaderStable(t *testing.T) {
	first := buildTSV(nil)
	second := buildTSV(nil)
	assert.Equal(t, first, second)

	require.True(t, strings.HasPrefix(first, "\ufeff"))
	header := strings.TrimPrefix(first, "\ufeff")
	assert.Equal(t,
		"Nombre o razón social\tMunicipio\tTeléfono\tCorreo Electrónico\tFecha de Registro\tEstado\tCantidad de Establecimientos\tTotal Ingresos\tCantidad de Empleados",
		header)
}

func TestBuildTSVRow(t *testing.T) {
	phone := "+573001234567"
	email := "acme@example.com"
	merchants := []model.Merchant{
		{
			Name:             "Acme",
			Municipality:     "Bogotá",
			Phone:            &phone,
			Email:            &email,
			RegistrationDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Status:           model.StatusActive,
			Establishments: []model.Establishment{
				{Revenue: 1500.25, EmployeeCount: 5},
				{Revenue: 500.25, EmployeeCount: 3},
			},
		},
	}

	out := buildTSV(merchants)
	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\r\n")
	require.Len(t, lines, 2)

	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 9)
	assert.Equal(t, "Acme", fields[0])
	assert.Equal(t, "Bogotá", fields[1])
	assert.Equal(t, "+573001234567", fields[2])
	assert.Equal(t, "acme@example.com", fields[3])
	assert.Equal(t, "2024-03-15", fields[4])
	assert.Equal(t, "Activo", fields[5])
	assert.Equal(t, "2", fields[6])
	assert.Equal(t, "2.000,5", fields[7])
	assert.Equal(t, "8", fields[8])
}

func TestBuildTSVEmptyOptionalFields(t *testing.T) {
	merchants := []model.Merchant{
		{
			Name:             "Bare",
			Municipality:     "Cali",
			RegistrationDate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			Status:           model.StatusInactive,
		},
	}

	out := buildTSV(merchants)
	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\r\n")
	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 9)
	assert.Equal(t, "", fields[2])
	assert.Equal(t, "", fields[3])
	assert.Equal(t, "Inactivo", fields[5])
	assert.Equal(t, "0", fields[6])
	assert.Equal(t, "0,0", fields[7])
	assert.Equal(t, "0", fields[8])
}

func TestFormatRevenue(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,0"},
		{2000, "2.000,0"},
		{10500.5, "10.500,5"},
		{1234567.5, "1.234.567,5"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatRevenue(tc.in), "formatting %v", tc.in)
	}
}

func TestExportTSVForbiddenForAssistant(t *testing.T) {
	store := newFakeStore()
	store.addUser(2, model.RoleRegistrationAssistant)
	svc := newTestService(store)

	_, err := svc.ExportTSV(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotAdministrator)
}

func TestExportTSVIncludesAllMerchants(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, model.RoleAdministrator)
	svc := newTestService(store)
	seedMerchant(t, store, "Uno", "Bogotá", model.StatusActive)
	seedMerchant(t, store, "Dos", "Cali", model.StatusInactive)

	out, err := svc.ExportTSV(context.Background(), 1)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\r\n")
	assert.Len(t, lines, 3)
}
