package kernel

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func loadedKernel(t *testing.T, path string) *Kernel {
	t.Helper()
	k, err := New(context.Background(), &recorder{}, path)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func paths(kernels []*Kernel) []string {
	out := make([]string, len(kernels))
	for i, k := range kernels {
		out[i] = k.Path()
	}
	return out
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry(zap.NewNop())

	if err := registry.Register(loadedKernel(t, "a/naif0012.tls")); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}

	err := registry.Register(loadedKernel(t, "a/naif0012.tls"))
	if !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("Register() duplicate = %v, want ErrAlreadyLoaded", err)
	}
	if registry.Count() != 1 {
		t.Errorf("Count() after duplicate = %d, want 1", registry.Count())
	}
}

func TestRegistry_GetAndList(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	for _, p := range []string{"z/de440.bsp", "a/naif0012.tls", "m/hera.bsp"} {
		if err := registry.Register(loadedKernel(t, p)); err != nil {
			t.Fatal(err)
		}
	}

	k, ok := registry.Get("a/naif0012.tls")
	if !ok || k.Type() != LSK {
		t.Errorf("Get() = %v, %v", k, ok)
	}
	if _, ok := registry.Get("absent.bsp"); ok {
		t.Error("Get() found an unregistered path")
	}

	got := paths(registry.List())
	want := []string{"a/naif0012.tls", "m/hera.bsp", "z/de440.bsp"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	spks := paths(registry.ByType(SPK))
	if len(spks) != 2 || spks[0] != "z/de440.bsp" || spks[1] != "m/hera.bsp" {
		t.Errorf("ByType(SPK) = %v, want registration order", spks)
	}
	if got := registry.ByType(CK); len(got) != 0 {
		t.Errorf("ByType(CK) = %v, want empty", got)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry(zap.NewNop())
	for _, p := range []string{"de440.bsp", "hera.bsp"} {
		if err := registry.Register(loadedKernel(t, p)); err != nil {
			t.Fatal(err)
		}
	}

	registry.Unregister("de440.bsp")
	registry.Unregister("absent.bsp")

	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}
	if got := paths(registry.ByType(SPK)); len(got) != 1 || got[0] != "hera.bsp" {
		t.Errorf("ByType(SPK) = %v, want [hera.bsp]", got)
	}

	registry.Unregister("hera.bsp")
	if got := registry.ByType(SPK); len(got) != 0 {
		t.Errorf("ByType(SPK) = %v, want empty", got)
	}
}
