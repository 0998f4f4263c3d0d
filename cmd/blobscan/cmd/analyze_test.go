package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/blobscan/internal/graph"
)

func TestAnalyzeCommandStructure(t *testing.T) {
	assert.NotNil(t, analyzeCmd)
	assert.Equal(t, "analyze <image>", analyzeCmd.Use)
	assert.NotEmpty(t, analyzeCmd.Short)
	assert.NotEmpty(t, analyzeCmd.Long)
	assert.NotNil(t, analyzeCmd.RunE)

	for _, name := range []string{"strategy", "format", "threshold", "threshold-mode", "mask", "overlay", "no-shapes", "no-color"} {
		assert.NotNil(t, analyzeCmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestAnalyze_Text(t *testing.T) {
	img := writePattern(t,
		"##.",
		"##.",
		"..#",
	)

	out, err := execute(t, "analyze", img, "--no-color")
	require.NoError(t, err)

	want := "Object 1: RECTANGLE\n" +
		"Area: 4\n\n" +
		"Boundary pixels: (0,0) (0,1) (1,0) (1,1)\n\n" +
		"Object 2: RECTANGLE\n" +
		"Area: 1\n\n" +
		"Boundary pixels: (2,2)\n\n" +
		"Total objects detected = 2\n"
	assert.Equal(t, want, out)
}

func TestAnalyze_StrategiesAgree(t *testing.T) {
	img := writePattern(t,
		"#####",
		"#...#",
		"#.#.#",
		"#...#",
		"#####",
	)

	stack, err := execute(t, "analyze", img, "--no-color", "--strategy", "stack")
	require.NoError(t, err)
	queue, err := execute(t, "analyze", img, "--no-color", "--strategy", "queue")
	require.NoError(t, err)

	assert.Equal(t, stack, queue)
	assert.Contains(t, stack, "Area: 16")
	assert.Contains(t, stack, "Total objects detected = 2")
}

func TestAnalyze_NoShapes(t *testing.T) {
	img := writePattern(t, "#.#")

	out, err := execute(t, "analyze", img, "--no-color", "--no-shapes")
	require.NoError(t, err)
	assert.Equal(t, "Object 1\nArea: 1\n\nBoundary pixels: (0,0)\n\n"+
		"Object 2\nArea: 1\n\nBoundary pixels: (0,2)\n\n"+
		"Total objects detected = 2\n", out)
}

func TestAnalyze_EmptyForeground(t *testing.T) {
	img := writePattern(t, "...", "...")

	out, err := execute(t, "analyze", img, "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "Total objects detected = 0\n", out)
}

func TestAnalyze_JSON(t *testing.T) {
	img := writePattern(t,
		"#.",
		"##",
	)

	out, err := execute(t, "analyze", img, "--format", "json")
	require.NoError(t, err)

	var got struct {
		RunID      string `json:"run_id"`
		Image      string `json:"image"`
		Rows       int    `json:"rows"`
		Cols       int    `json:"cols"`
		Strategy   string `json:"strategy"`
		Total      int    `json:"total"`
		Components []struct {
			ID       int      `json:"id"`
			Area     int      `json:"area"`
			Shape    string   `json:"shape"`
			Boundary [][2]int `json:"boundary"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Len(t, got.RunID, 36)
	assert.Equal(t, img, got.Image)
	assert.Equal(t, 2, got.Rows)
	assert.Equal(t, 2, got.Cols)
	assert.Equal(t, "stack", got.Strategy)
	assert.Equal(t, 1, got.Total)
	require.Len(t, got.Components, 1)
	assert.Equal(t, 3, got.Components[0].Area)
	assert.Equal(t, "CIRCLE", got.Components[0].Shape)
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {1, 1}}, got.Components[0].Boundary)
}

func TestAnalyze_Summary(t *testing.T) {
	img := writePattern(t, "##", "##")

	out, err := execute(t, "analyze", img, "--format", "summary", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "[ Summary ]")
	assert.Contains(t, out, "Objects:")
	assert.Contains(t, out, "RECTANGLE: 1")
}

func TestAnalyze_WritesRasters(t *testing.T) {
	img := writePattern(t,
		"###",
		"###",
		"###",
	)
	dir := t.TempDir()
	mask := filepath.Join(dir, "edges.pgm")
	overlay := filepath.Join(dir, "overlay.png")

	_, err := execute(t, "analyze", img, "--no-color", "--mask", mask, "--overlay", overlay)
	require.NoError(t, err)

	content, err := os.ReadFile(mask)
	require.NoError(t, err)
	assert.Equal(t, "P2\n3 3\n255\n0 0 0\n0 255 0\n0 0 0\n", string(content))

	info, err := os.Stat(overlay)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestAnalyze_Threshold(t *testing.T) {
	img := writeGray(t, 0, 100, 200)

	out, err := execute(t, "analyze", img, "--no-color", "--threshold", "150")
	require.NoError(t, err)
	assert.Contains(t, out, "Area: 2")

	out, err = execute(t, "analyze", img, "--no-color", "--threshold", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Area: 1")
}

func TestAnalyze_ConfigFile(t *testing.T) {
	img := writeGray(t, 0, 130, 200, 250) // mean 145
	cfg := writeFile(t, "blobscan.yaml", `
input:
  threshold:
    mode: mean
    margin: 5
output:
  show_boundary: false
  color: false
`)

	out, err := execute(t, "analyze", img, "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "Object 1: RECTANGLE\nArea: 2\n\nTotal objects detected = 1\n", out)
}

func TestAnalyze_Resize(t *testing.T) {
	img := writePattern(t,
		"##..",
		"##..",
		"....",
		"....",
	)
	cfg := writeFile(t, "blobscan.yaml", `
input:
  resize:
    rows: 2
    cols: 2
`)

	out, err := execute(t, "analyze", img, "--config", cfg, "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "Boundary pixels: (0,0)\n")
	assert.Contains(t, out, "Total objects detected = 1")
}

func TestAnalyze_EnvFile(t *testing.T) {
	const key = "BLOBSCAN_TEST_OUT_DIR"
	t.Cleanup(func() { os.Unsetenv(key) })

	outDir := t.TempDir()
	env := writeFile(t, ".env", key+"="+outDir+"\n")
	cfg := writeFile(t, "blobscan.yaml", `
output:
  mask_path: "${BLOBSCAN_TEST_OUT_DIR}/edges.png"
`)
	img := writePattern(t, "#")

	_, err := execute(t, "analyze", img, "--config", cfg, "--env-file", env, "--no-color")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, "edges.png"))
	assert.NoError(t, err)
}

func TestAnalyze_Errors(t *testing.T) {
	img := writePattern(t, "#")

	tests := []struct {
		name string
		args []string
	}{
		{"missing image", []string{"analyze", filepath.Join(t.TempDir(), "missing.png")}},
		{"no image argument", []string{"analyze"}},
		{"bad strategy", []string{"analyze", img, "--strategy", "random"}},
		{"bad format", []string{"analyze", img, "--format", "xml"}},
		{"bad mask extension", []string{"analyze", img, "--mask", "edges.gif"}},
		{"bad threshold mode", []string{"analyze", img, "--threshold-mode", "otsu"}},
		{"missing explicit config", []string{"analyze", img, "--config", filepath.Join(t.TempDir(), "none.yaml")}},
		{"missing env file", []string{"analyze", img, "--env-file", filepath.Join(t.TempDir(), "none.env")}},
		{"unsupported image", []string{"analyze", writeFile(t, "notes.txt", "hello")}},
		{"oversized resize", []string{"analyze", img, "--config", writeFile(t, "big.yaml", "input:\n  resize:\n    rows: 1000000\n    cols: 1000000\n")}},
		{"oversized pgm header", []string{"analyze", writeFile(t, "huge.pgm", "P5 2147483647 2147483647 255\n\x00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestAnalyzeOverrides(t *testing.T) {
	t.Cleanup(func() { resetFlags(rootCmd) })

	analyzeStrategy = "queue"
	analyzeThreshold = 90
	analyzeNoShapes = true

	o := analyzeOverrides()
	assert.Equal(t, "queue", o.Strategy)
	assert.Equal(t, 90, o.Threshold)
	assert.True(t, o.NoShapes)
	assert.False(t, o.NoColor)
}

func TestComponentFields(t *testing.T) {
	g, err := graph.Build([][]uint8{
		{0, 1, 1},
		{0, 1, 1},
	})
	require.NoError(t, err)
	comps := graph.FindComponents(g)
	require.Len(t, comps, 1)

	fields := componentFields(comps[0])
	assert.Equal(t, 4, fields["area"])
	assert.Equal(t, 4, fields["boundary"])
	assert.Equal(t, "2x2@(0,1)", fields["bounds"])
	assert.Equal(t, "RECTANGLE", fields["shape"])

	comps = graph.NewAnalyzer(g, graph.WithShapes(false)).Run()
	_, hasShape := componentFields(comps[0])["shape"]
	assert.False(t, hasShape)
}

func TestAnalyze_LogsToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "blobscan.log")
	cfg := writeFile(t, "blobscan.yaml", "logging:\n  format: json\n  output: \""+logPath+"\"\n")
	missing := filepath.Join(t.TempDir(), "missing.png")

	_, err := execute(t, "analyze", missing, "--config", cfg)
	require.Error(t, err)

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "failed to load image", entry["msg"])
	assert.Equal(t, missing, entry["image"])
	assert.Len(t, entry["run_id"], 36)
}
