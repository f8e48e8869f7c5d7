package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokturk078/cektakip/internal/common"
)

func TestParseSnapshot(t *testing.T) {
	t.Parallel()

	snap, err := ParseSnapshot([]byte(`{"checks":[{"id":1,"firma_adi":"Acme","tl":100}],"lastUpdated":"2024-06-01T00:00:00Z","totalChecks":1}`))
	require.NoError(t, err)
	require.Len(t, snap.Checks, 1)
	assert.Equal(t, int64(1), snap.Checks[0].ID)
	assert.Equal(t, "Acme", snap.Checks[0].CompanyName)
	assert.Equal(t, "100", snap.Checks[0].TL.Decimal().String())
}

func TestParseSnapshot_Rejects(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{
		`not json`,
		`{}`,
		`{"checks":null}`,
		`{"lastUpdated":"2024-06-01T00:00:00Z"}`,
	} {
		_, err := ParseSnapshot([]byte(payload))
		assert.ErrorIs(t, err, common.ErrMalformedSnapshot, payload)
	}

	// an empty list is a valid snapshot, not a malformed one
	snap, err := ParseSnapshot([]byte(`{"checks":[]}`))
	require.NoError(t, err)
	assert.Empty(t, snap.Checks)
}

func TestSnapshot_EncodeNilChecksParsesBack(t *testing.T) {
	t.Parallel()

	data, err := Snapshot{LastUpdated: "2024-06-01T00:00:00Z"}.Encode()
	require.NoError(t, err)

	// nil is written as an empty list, never as null
	assert.Contains(t, string(data), `"checks": []`)

	out, err := ParseSnapshot(data)
	require.NoError(t, err)
	assert.NotNil(t, out.Checks)
	assert.Empty(t, out.Checks)
}

func TestSnapshot_EncodeRoundTrip(t *testing.T) {
	t.Parallel()

	in := Snapshot{
		Checks:      []Check{{ID: 1, CompanyName: "Acme", TL: AmountFromFloat(100)}},
		LastUpdated: "2024-06-01T00:00:00Z",
		TotalChecks: 1,
	}
	data, err := in.Encode()
	require.NoError(t, err)

	out, err := ParseSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, in.LastUpdated, out.LastUpdated)
	require.Len(t, out.Checks, 1)
	assert.Equal(t, "Acme", out.Checks[0].CompanyName)
}
