package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/navier3d/internal/particle"
)

func TestWriteTrajectoriesOBJWritesVerticesAndLines(t *testing.T) {
	dir := t.TempDir()
	trajs := []particle.Trajectory{
		{Positions: []particle.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}}},
		{Positions: []particle.Vec3{{X: 0, Y: 1, Z: 0}}},
	}
	if err := WriteTrajectoriesOBJ(dir, "lines", trajs); err != nil {
		t.Fatalf("WriteTrajectoriesOBJ: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "lines.obj"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(data)
	if strings.Count(content, "v ") != 3 {
		t.Errorf("expected 3 vertex lines, got content:\n%s", content)
	}
	if strings.Count(content, "l ") != 2 {
		t.Errorf("expected 2 polylines, got content:\n%s", content)
	}
}

func TestWriteTrajectoriesOBJSkipsEmptyTrajectories(t *testing.T) {
	dir := t.TempDir()
	trajs := []particle.Trajectory{{}, {Positions: []particle.Vec3{{X: 1, Y: 1, Z: 1}}}}
	if err := WriteTrajectoriesOBJ(dir, "lines", trajs); err != nil {
		t.Fatalf("WriteTrajectoriesOBJ: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "lines.obj"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if strings.Count(string(data), "v ") != 1 {
		t.Errorf("expected 1 vertex line, got:\n%s", string(data))
	}
}
