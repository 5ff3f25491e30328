package chain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// MapRegistry
// -----------------------------------------------------------------------------

func TestMapRegistry_ZeroValueAcceptsProvide(t *testing.T) {
	t.Parallel()

	var r MapRegistry
	require.NotPanics(t, func() { r.Provide("a", "1") })

	val, ok, err := r.Resolve("root", "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", val)
}

func TestProvide_ChainsAndStores(t *testing.T) {
	t.Parallel()

	r := NewMapRegistry()
	ret := r.Provide("a", "1").ProvideFor("sealed", "b", "x")
	require.Same(t, r, ret)

	val, ok, _ := r.Resolve("derived", "a")
	assert.True(t, ok)
	assert.Equal(t, "1", val)

	val, ok, _ = r.Resolve("sealed", "b")
	assert.True(t, ok)
	assert.Equal(t, "x", val)
}

func TestResolve_KindOverridesShared(t *testing.T) {
	t.Parallel()

	r := NewMapRegistry().
		Provide("k", "shared").
		ProvideFor("sealed", "k", "sealed-only")

	testCases := []struct {
		kind    Kind
		field   Field
		wantVal string
		wantOK  bool
	}{
		{kind: "sealed", field: "k", wantVal: "sealed-only", wantOK: true},
		{kind: "root", field: "k", wantVal: "shared", wantOK: true},
		{kind: "root", field: "missing"},
		{kind: "sealed", field: "missing"},
	}

	for _, tc := range testCases {
		val, ok, err := r.Resolve(tc.kind, tc.field)
		require.NoError(t, err)
		assert.Equal(t, tc.wantOK, ok, "%s/%s", tc.kind, tc.field)
		assert.Equal(t, tc.wantVal, val, "%s/%s", tc.kind, tc.field)
	}
}

func TestRegistryFunc_Adapts(t *testing.T) {
	t.Parallel()

	var gotKind Kind
	reg := RegistryFunc(func(kind Kind, field Field) (string, bool, error) {
		gotKind = kind
		return string(field) + "!", true, nil
	})

	val, ok, err := reg.Resolve("derived", "x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x!", val)
	assert.Equal(t, Kind("derived"), gotKind)
}

//
// -----------------------------------------------------------------------------
// BuildWith
// -----------------------------------------------------------------------------

type pair struct{ a, b string }

func TestBuildWith_FillsOnlyUnsetSlots(t *testing.T) {
	t.Parallel()

	var c Core
	a, b, d := "explicit", "", ""
	c.Mark("a")

	reg := NewMapRegistry().Provide("a", "from-reg").Provide("b", "from-reg")
	got, err := BuildWith(&c, "root", reg, []Slot{{"a", &a}, {"b", &b}, {"d", &d}},
		func() pair { return pair{a: a, b: b} })
	require.NoError(t, err)

	assert.Equal(t, pair{a: "explicit", b: "from-reg"}, got)
	assert.Empty(t, d)
	assert.True(t, c.IsSet("b"))
	assert.False(t, c.IsSet("d"))
	assert.Equal(t, 1, c.Builds())
}

func TestBuildWith_NilRegistryIsTryBuild(t *testing.T) {
	t.Parallel()

	var c Core
	v := ""
	_, err := BuildWith(&c, "root", nil, []Slot{{"a", &v}}, func() string { return v })
	require.NoError(t, err)
	assert.False(t, c.IsSet("a"))
	assert.Equal(t, 1, c.Builds())
}

// A rejected build leaves every slot and mark as it found them.
func TestBuildWith_RejectionChangesNothing(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	testCases := []struct {
		name    string
		opts    []Option
		builtOK bool
		reg     Registry
		wantIs  error
		wantMsg string
	}{
		{
			name:    "consumed before resolving",
			opts:    []Option{WithPolicy(SingleUse)},
			builtOK: true,
			reg:     NewMapRegistry().Provide("a", "from-reg"),
			wantIs:  ErrConsumed,
		},
		{
			name:    "missing required after filling",
			opts:    []Option{WithRequired("b")},
			reg:     NewMapRegistry().Provide("a", "from-reg"),
			wantIs:  ErrMissingField,
			wantMsg: `chain: root: required field "b" not set`,
		},
		{
			name: "registry error",
			reg: RegistryFunc(func(_ Kind, f Field) (string, bool, error) {
				if f == "b" {
					return "", false, boom
				}
				return "from-reg", true, nil
			}),
			wantIs:  boom,
			wantMsg: `chain: root: resolve "b": boom`,
		},
		{
			name: "registry panic",
			reg: RegistryFunc(func(Kind, Field) (string, bool, error) {
				panic("kaboom")
			}),
			wantIs:  ErrRegistryPanic,
			wantMsg: "kaboom",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var c Core
			c.Apply(tc.opts...)
			builds := 0
			if tc.builtOK {
				_, err := TryBuild(&c, "root", func() int { return 0 })
				require.NoError(t, err)
				builds = 1
			}

			a, b := "", "kept"
			_, err := BuildWith(&c, "root", tc.reg, []Slot{{"a", &a}, {"b", &b}},
				func() pair { return pair{a: a, b: b} })

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantIs)
			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
			assert.Empty(t, a)
			assert.Equal(t, "kept", b)
			assert.False(t, c.IsSet("a"))
			assert.False(t, c.IsSet("b"))
			assert.Equal(t, builds, c.Builds())
		})
	}
}

func TestBuildWith_NilMapRegistrySurfacesPanic(t *testing.T) {
	t.Parallel()

	var reg *MapRegistry
	var c Core
	v := ""

	_, err := BuildWith(&c, "derived", reg, []Slot{{"a", &v}}, func() string { return v })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegistryPanic)
	assert.Zero(t, c.Builds())
}
