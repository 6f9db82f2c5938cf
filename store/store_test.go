package store

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/mpdict/mpdict"
	"github.com/mpdict/mpdict/geom"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "dicts.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openTestStore(t)

	d := mpdict.New()
	if err := mpdict.SetAt(d, "mass", 1.5); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if err := mpdict.SetAt(d, "pos", geom.Vector3{X: 1, Y: 2, Z: 3}); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if err := s.Save("robot", d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load follows update semantics: the target must be pre-shaped.
	loaded := mpdict.New()
	if err := mpdict.SetAt(loaded, "mass", 0.0); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if err := mpdict.SetAt(loaded, "pos", geom.Vector3{}); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if err := s.Load("robot", loaded); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, err := mpdict.Get[float64](loaded, "mass"); err != nil || *v != 1.5 {
		t.Fatalf("mass = (%v, %v), wanted (1.5, nil)", v, err)
	}
	if v, err := mpdict.Get[geom.Vector3](loaded, "pos"); err != nil || v.Z != 3 {
		t.Fatalf("pos = (%v, %v), wanted Vector3 with Z=3", v, err)
	}
}

func TestLoadExtendShapesEmptyTree(t *testing.T) {
	s := openTestStore(t)

	d := mpdict.New()
	if err := mpdict.SetAt(d, "name", "zebra"); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if err := s.Save("cfg", d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	fresh := mpdict.New()
	if err := s.LoadExtend("cfg", fresh); err != nil {
		t.Fatalf("LoadExtend failed: %v", err)
	}
	if v, err := mpdict.Get[string](fresh, "name"); err != nil || *v != "zebra" {
		t.Fatalf("name = (%v, %v), wanted (zebra, nil)", v, err)
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTestStore(t)
	err := s.Load("nope", mpdict.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load(missing) = %v, wanted ErrNotFound", err)
	}
}

func TestNamesAndDelete(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{"b", "a", "c"} {
		if err := s.Save(name, mpdict.New()); err != nil {
			t.Fatalf("Save(%q) failed: %v", name, err)
		}
	}
	names, err := s.Names()
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	if !slices.Equal(names, []string{"a", "b", "c"}) {
		t.Fatalf("Names = %v, wanted [a b c]", names)
	}

	if err := s.Delete("b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	names, _ = s.Names()
	if slices.Contains(names, "b") {
		t.Fatalf("Names = %v after delete, still contains b", names)
	}

	if err := s.Delete("never"); err != nil {
		t.Fatalf("Delete(missing) = %v, wanted nil", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)

	d := mpdict.New()
	if err := mpdict.SetAt(d, "v", 1); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if err := s.Save("snap", d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := mpdict.SetAt(d, "v", 2); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if err := s.Save("snap", d); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded := mpdict.New()
	if err := mpdict.SetAt(loaded, "v", 0); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if err := s.Load("snap", loaded); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := mpdict.Get[int](loaded, "v"); *v != 2 {
		t.Fatalf("v = %d, wanted 2 (latest snapshot)", *v)
	}
}
