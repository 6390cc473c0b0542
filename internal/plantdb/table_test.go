package plantdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haithamsoil/nasgh/internal/domain"
)

func TestLookupStaticCoversAllPlantsAndStages(t *testing.T) {
	for _, p := range plants {
		for _, stage := range domain.Stages {
			rec, ok := LookupStatic(p.key, stage)
			require.True(t, ok, "%s/%s", p.key, stage)
			require.NoError(t, rec.Validate(), "%s/%s", p.key, stage)
			// Every tracked parameter has a target in the static table.
			assert.Len(t, rec, len(domain.Parameters), "%s/%s", p.key, stage)
		}
	}
}

func TestLookupStaticMiss(t *testing.T) {
	_, ok := LookupStatic("dragon-fruit", domain.StageVegetative)
	assert.False(t, ok)

	_, ok = LookupStatic("tomato", domain.Stage("dormant"))
	assert.False(t, ok)
}

func TestLookupStaticReturnsCopies(t *testing.T) {
	first, ok := LookupStatic("tomato", domain.StageVegetative)
	require.True(t, ok)
	first[domain.ParamPH] = domain.Band{Min: 0, Max: 1}

	second, ok := LookupStatic("tomato", domain.StageVegetative)
	require.True(t, ok)
	assert.Equal(t, domain.Band{Min: 6.0, Max: 7.5}, second[domain.ParamPH])
}

func TestSharedTemplatesAreDistinctRecords(t *testing.T) {
	tomato, ok := LookupStatic("tomato", domain.StageVegetative)
	require.True(t, ok)
	cucumber, ok := LookupStatic("cucumber", domain.StageVegetative)
	require.True(t, ok)

	// Same template values, but mutating one must not leak into the other.
	assert.Equal(t, tomato, cucumber)
	tomato[domain.ParamEC] = domain.Band{Min: 1, Max: 2}
	assert.NotEqual(t, tomato[domain.ParamEC], cucumber[domain.ParamEC])
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "طماطم", DisplayName("tomato"))
	assert.Equal(t, "dragon-fruit", DisplayName("dragon-fruit"))
	assert.True(t, Known("olive"))
	assert.False(t, Known("dragon-fruit"))
}
