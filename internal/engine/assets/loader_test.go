package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumenworks/lampviewer/internal/engine/scenegraph"
)

// lampDocument is a small but well-formed glTF scene in the shape the product
// exports use: a named root group, a mesh child, a light anchor node and one
// animation clip whose keyframe input runs to 2.5 seconds.
const lampDocument = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"name": "Scene", "nodes": [0]}],
  "nodes": [
    {"name": "Lamp_Body", "children": [1, 2], "translation": [0, 1, 0]},
    {"name": "Shade", "mesh": 0, "scale": [2, 2, 2]},
    {"name": "Point", "translation": [0, 0.5, 0]}
  ],
  "meshes": [{"name": "ShadeMesh", "primitives": [{"attributes": {"POSITION": 0}}]}],
  "accessors": [
    {"componentType": 5126, "count": 2, "type": "SCALAR", "max": [2.5], "min": [0]}
  ],
  "animations": [
    {
      "name": "Open",
      "channels": [{"sampler": 0, "target": {"node": 1, "path": "rotation"}}],
      "samplers": [{"input": 0, "output": 0}]
    }
  ]
}`

func writeDocument(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadBuildsGraphAndClips(t *testing.T) {
	path := writeDocument(t, "lamp.gltf", lampDocument)

	res, err := NewLoader(nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := res.Graph.FindByName("Lamp_Body")
	if body == nil {
		t.Fatal("expected Lamp_Body node")
	}
	if body.Translation.Y() != 1 {
		t.Errorf("expected root translation y=1, got %v", body.Translation)
	}
	if len(body.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(body.Children()))
	}

	shade := res.Graph.FindByName("Shade")
	if shade == nil || shade.Kind != scenegraph.KindMesh {
		t.Errorf("expected Shade mesh node, got %v", shade)
	}
	if shade.Scale.X() != 2 {
		t.Errorf("expected shade scale 2, got %v", shade.Scale)
	}
	if res.Graph.FindByName("Point") == nil {
		t.Error("expected Point node")
	}

	if len(res.Clips) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(res.Clips))
	}
	if res.Clips[0].Name != "Open" || res.Clips[0].Duration != 2.5 {
		t.Errorf("unexpected clip %+v", res.Clips[0])
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.glb")

	_, err := NewLoader(nil).Load(context.Background(), path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Path != path {
		t.Errorf("expected error to carry path %q, got %q", path, loadErr.Path)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeDocument(t, "lamp.obj", "o lamp")

	_, err := NewLoader(nil).Load(context.Background(), path)
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestLoadCancelledContext(t *testing.T) {
	path := writeDocument(t, "lamp.gltf", lampDocument)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil).Load(ctx, path)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadPair(t *testing.T) {
	backdrop := writeDocument(t, "backdrop.gltf", lampDocument)
	product := writeDocument(t, "product.gltf", lampDocument)

	b, p, err := NewLoader(nil).LoadPair(context.Background(), backdrop, product)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b == nil || p == nil {
		t.Fatal("expected both results")
	}
}

func TestLoadPairFailFast(t *testing.T) {
	backdrop := writeDocument(t, "backdrop.gltf", lampDocument)
	missing := filepath.Join(t.TempDir(), "absent.gltf")

	b, p, err := NewLoader(nil).LoadPair(context.Background(), backdrop, missing)
	if err == nil {
		t.Fatal("expected error")
	}
	if b != nil || p != nil {
		t.Error("expected no partial results on failure")
	}
}

func TestProgressCallback(t *testing.T) {
	path := writeDocument(t, "lamp.gltf", lampDocument)

	type event struct {
		path string
		done bool
	}
	var events []event

	l := NewLoader(nil)
	l.OnProgress(func(p string, done bool) {
		events = append(events, event{p, done})
	})
	if _, err := l.Load(context.Background(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 progress events, got %d", len(events))
	}
	if events[0].done || !events[1].done {
		t.Errorf("unexpected event order: %+v", events)
	}
}
