package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/phasorcalc/internal/phasor"
)

func intPtr(i int) *int { return &i }

func TestMerge(t *testing.T) {
	m := &Model{
		Display: &Display{AngleUnit: "degree", Precision: intPtr(2)},
		Prompt:  "a> ",
		Modules: []*ModuleSpec{{Name: "std_math"}},
	}
	m.Merge(&Model{
		Display: &Display{Glyph: "unicode", Precision: intPtr(5)},
		Modules: []*ModuleSpec{{Name: "phasor", Namespace: "ph"}},
	})
	m.Merge(nil)

	want := &Model{
		Display: &Display{AngleUnit: "degree", Glyph: "unicode", Precision: intPtr(5)},
		Prompt:  "a> ",
		Modules: []*ModuleSpec{{Name: "std_math"}, {Name: "phasor", Namespace: "ph"}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveDisplay(t *testing.T) {
	d, err := (&Model{}).ResolveDisplay(phasor.DefaultDisplay)
	require.NoError(t, err)
	assert.Equal(t, phasor.DefaultDisplay, d)

	m := &Model{Display: &Display{AngleUnit: "deg", Glyph: "unicode", Precision: intPtr(0)}}
	d, err = m.ResolveDisplay(phasor.DefaultDisplay)
	require.NoError(t, err)
	assert.Equal(t, phasor.Display{Unit: phasor.Degree, Glyph: phasor.Unicode, Precision: 0}, d)

	for _, bad := range []*Display{
		{AngleUnit: "gradian"},
		{Glyph: "fancy"},
		{Precision: intPtr(-1)},
	} {
		_, err := (&Model{Display: bad}).ResolveDisplay(phasor.DefaultDisplay)
		assert.ErrorContains(t, err, "display:")
	}
}

func TestDefaultModel(t *testing.T) {
	m := DefaultModel()
	names := make([]string, 0, len(m.Modules))
	for _, spec := range m.Modules {
		names = append(names, spec.Name)
		assert.Empty(t, spec.Namespace)
	}
	assert.Equal(t, []string{"std_math", "phasor", "circuits", "util"}, names)
}

// stubLoader records the files it was asked to load.
type stubLoader struct {
	files []string
}

func (s *stubLoader) Load(_ context.Context, paths ...string) (*Model, error) {
	s.files = append(s.files, paths...)
	out := &Model{}
	for _, p := range paths {
		out.Modules = append(out.Modules, &ModuleSpec{Name: filepath.Base(p)})
	}
	return out, nil
}

func TestLoaders_DispatchByExtension(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.hcl", "c.YML", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	hcl, yaml := &stubLoader{}, &stubLoader{}
	ls := Loaders{".hcl": hcl, ".yaml": yaml, ".yml": yaml}

	// --- Act ---
	m, err := ls.Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{".hcl", ".yaml", ".yml"}, ls.Extensions())
	assert.Len(t, hcl.files, 1)
	assert.Len(t, yaml.files, 2)

	names := make([]string, 0, len(m.Modules))
	for _, spec := range m.Modules {
		names = append(names, spec.Name)
	}
	assert.Equal(t, []string{"a.hcl", "b.yaml", "c.YML"}, names)
}

func TestLoaders_MissingPath(t *testing.T) {
	_, err := Loaders{".hcl": &stubLoader{}}.Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
