package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tripplan/internal/domain"
)

func TestEncode_FieldNames(t *testing.T) {
	data, err := Encode([]domain.Task{{ID: 1, Title: "Flight", Category: domain.CategoryFlight, Date: "10/05/2024", Budget: 450}})
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":1,"title":"Flight","category":"Flight","date":"10/05/2024","budget":450,"important":false,"done":false,"notes":""}]`,
		string(data))
}

func TestEncode_RejectsNaNBudget(t *testing.T) {
	_, err := Encode([]domain.Task{{ID: 1, Budget: math.NaN()}})
	assert.Error(t, err)
}

func TestDecode_ErrorsWrapSentinel(t *testing.T) {
	_, err := Decode([]byte(`{"tasks":[]}`))
	assert.ErrorIs(t, err, ErrStorageDecode)

	_, err = Decode([]byte(`[null]`))
	assert.ErrorIs(t, err, ErrStorageDecode)
}

func TestDecode_IDRange(t *testing.T) {
	_, err := Decode([]byte(`[{"id":99999999999}]`))
	assert.ErrorIs(t, err, ErrStorageDecode)

	tasks, err := Decode([]byte(`[{"id":-2}]`))
	require.NoError(t, err)
	assert.Equal(t, -2, tasks[0].ID)
}
