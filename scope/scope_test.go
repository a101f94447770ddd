package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDuplicateInSameScope(t *testing.T) {
	g := NewGlobal()

	res := g.Add("x", DeclVariable, nil, 1, 1, nil, WarningConfig{})
	require.NoError(t, res.Err)

	res2 := g.Add("x", DeclVariable, nil, 2, 1, nil, WarningConfig{})
	require.Error(t, res2.Err)
	var dupErr *DuplicateError
	require.ErrorAs(t, res2.Err, &dupErr)
	assert.Equal(t, int32(1), dupErr.PriorLine)
}

func TestImportStackingDistinctPaths(t *testing.T) {
	g := NewGlobal()

	res := g.Add("a", DeclImport, nil, 1, 1, ImportPath{"a", "b"}, WarningConfig{})
	require.NoError(t, res.Err)

	res2 := g.Add("a", DeclImport, nil, 2, 1, ImportPath{"a", "c"}, WarningConfig{})
	require.NoError(t, res2.Err)

	def := g.Query("a", 0)
	require.NotNil(t, def)
	assert.Len(t, def.Additional, 1)
}

func TestImportStackingSamePathFails(t *testing.T) {
	g := NewGlobal()

	res := g.Add("a", DeclImport, nil, 1, 1, ImportPath{"a", "b"}, WarningConfig{})
	require.NoError(t, res.Err)

	res2 := g.Add("a", DeclImport, nil, 2, 1, ImportPath{"a", "b"}, WarningConfig{})
	require.Error(t, res2.Err)
}

func TestReservedIdentifiersCannotBeDeclared(t *testing.T) {
	g := NewGlobal()
	for _, name := range []string{"self", "base"} {
		res := g.Add(name, DeclVariable, nil, 1, 1, nil, WarningConfig{})
		require.Error(t, res.Err)
		var reservedErr *ReservedIdentifierError
		assert.ErrorAs(t, res.Err, &reservedErr)
	}
}

func TestShadowClassification(t *testing.T) {
	tests := []struct {
		name          string
		cfg           WarningConfig
		wantSeverity  ShadowSeverity
		wantShadow    bool
	}{
		{
			name:         "global shadow warning disabled by default",
			cfg:          WarningConfig{},
			wantSeverity: ShadowNone,
		},
		{
			name:         "global shadow warning enabled",
			cfg:          WarningConfig{ShadowingGlobals: true},
			wantSeverity: ShadowWarnGlobal,
			wantShadow:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGlobal()
			res := g.Add("x", DeclVariable, nil, 1, 1, nil, WarningConfig{})
			require.NoError(t, res.Err)

			fn := NewChild(g, true)
			res2 := fn.Add("x", DeclVariable, nil, 2, 1, nil, tt.cfg)
			require.NoError(t, res2.Err)
			assert.Equal(t, tt.wantSeverity, res2.Shadow)
			if tt.wantShadow {
				require.NotNil(t, res2.ShadowOf)
			}
		})
	}
}

func TestForbiddenParamShadow(t *testing.T) {
	g := NewGlobal()
	fn := NewChild(g, true)
	res := fn.Add("n", DeclParameter, nil, 1, 1, nil, WarningConfig{})
	require.NoError(t, res.Err)

	body := NewChild(fn, false)
	res2 := body.Add("n", DeclVariable, nil, 2, 1, nil, WarningConfig{})
	require.Error(t, res2.Err)
	var forbidden *ForbiddenShadowError
	require.ErrorAs(t, res2.Err, &forbidden)
}

func TestRemove(t *testing.T) {
	g := NewGlobal()
	res := g.Add("x", DeclVariable, nil, 1, 1, nil, WarningConfig{})
	require.NoError(t, res.Err)
	require.NotNil(t, g.Query("x", 0))

	g.Remove("x")
	assert.Nil(t, g.Query("x", 0))
}

func TestBubbleUpLookup(t *testing.T) {
	g := NewGlobal()
	g.Add("x", DeclVariable, nil, 1, 1, nil, WarningConfig{})

	child := NewChild(g, false)
	assert.Nil(t, child.Query("x", 0))
	assert.NotNil(t, child.Query("x", BubbleUp))
}
