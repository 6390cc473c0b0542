package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandValid(t *testing.T) {
	assert.True(t, Band{Min: 6.0, Max: 7.5}.Valid())
	assert.False(t, Band{Min: 7.5, Max: 6.0}.Valid())
	assert.False(t, Band{Min: 5, Max: 5}.Valid())
	assert.False(t, Band{Min: math.NaN(), Max: 7}.Valid())
	assert.False(t, Band{Min: 1, Max: math.Inf(1)}.Valid())
}

func TestBandContainsInclusive(t *testing.T) {
	b := Band{Min: 55, Max: 65}
	assert.True(t, b.Contains(55))
	assert.True(t, b.Contains(65))
	assert.True(t, b.Contains(60))
	assert.False(t, b.Contains(54.999))
	assert.False(t, b.Contains(65.001))
}

func TestRangeRecordCloneIsIndependent(t *testing.T) {
	orig := RangeRecord{ParamPH: {Min: 6, Max: 7.5}}
	cp := orig.Clone()
	cp[ParamPH] = Band{Min: 1, Max: 2}
	cp[ParamNitrogen] = Band{Min: 100, Max: 160}

	assert.Equal(t, Band{Min: 6, Max: 7.5}, orig[ParamPH])
	assert.NotContains(t, orig, ParamNitrogen)
}

func TestRangeRecordJSONWireKeys(t *testing.T) {
	rec := RangeRecord{
		ParamTemperature: {Min: 18, Max: 26},
		ParamPH:          {Min: 6, Max: 7.5},
	}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"temp":{"min":18,"max":26},"ph":{"min":6,"max":7.5}}`, string(data))

	var back RangeRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec, back)
}

func TestRangeRecordUnmarshalDropsUnknownKeys(t *testing.T) {
	var rec RangeRecord
	err := json.Unmarshal([]byte(`{"ph":{"min":6,"max":7},"banana":{"min":1,"max":2}}`), &rec)
	require.NoError(t, err)
	assert.Len(t, rec, 1)
	assert.Contains(t, rec, ParamPH)
}

func TestReadingUnmarshalAliasesAndJunk(t *testing.T) {
	var r Reading
	err := json.Unmarshal([]byte(`{"t":24.4,"m":38.7,"hum":41.3,"ec":1796,"stage":"x","note":"y"}`), &r)
	require.NoError(t, err)

	assert.InDelta(t, 24.4, r[ParamTemperature], 1e-9)
	assert.InDelta(t, 38.7, r[ParamMoisture], 1e-9)
	assert.InDelta(t, 41.3, r[ParamHumic], 1e-9)
	assert.InDelta(t, 1796, r[ParamEC], 1e-9)
	assert.Len(t, r, 4)
}

func TestParseStage(t *testing.T) {
	cases := map[string]Stage{
		"vegetative":            StageVegetative,
		"مرحلة النمو الخضري":    StageVegetative,
		"Flowering":             StageFlowering,
		"انتقال لنمو الأزهار":   StageFlowering,
		"fruit-setting":         StageFruitSetting,
		"  harvest  ":           StageHarvest,
	}
	for in, want := range cases {
		got, err := ParseStage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStage("")
	assert.Error(t, err)
	_, err = ParseStage("dormant")
	assert.Error(t, err)
}
