package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/robertarktes/visa-appointments/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabels_EveryCodeHasOne(t *testing.T) {
	for _, g := range domain.Genders {
		assert.NotEmpty(t, g.Label(), string(g))
	}
	for _, v := range domain.VisaTypes {
		assert.NotEmpty(t, v.Label(), string(v))
	}
	for _, n := range domain.Nationalities() {
		assert.NotEmpty(t, n.Label(), string(n))
	}
	assert.Len(t, domain.Nationalities(), 194)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Turismo", domain.VisaTourism.Label())
	assert.Equal(t, "Contrato de Trabalho", domain.VisaWorkContract.Label())
	assert.Equal(t, "Feminino", domain.GenderFemale.Label())
	assert.Equal(t, "Brasil", domain.Nationality("brasil").Label())
	assert.Empty(t, domain.VisaType("diplomatico").Label())
}

func TestDate_JSON(t *testing.T) {
	d, err := domain.ParseDate("2025-09-03")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-09-03"`, string(data))

	var zero domain.Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &zero))
	assert.True(t, zero.IsZero())
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := domain.ParseTimeOfDay("9:30")
	require.NoError(t, err)
	assert.Equal(t, domain.TimeOfDay("09:30"), tod)

	_, err = domain.ParseTimeOfDay("25:00")
	assert.Error(t, err)
}
