package boxfile

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const boxesYAML = `
- name: car
  position: [0, 0, 0]
  scale: [5, 2, 1.8]
  euler: [0, 0, 90]
- name: truck
  position: [6, 8, -0.05]
  scale: [5, 2, 1.8]
  quaternion: [0, 0, -0.7071067811865476, 0.7071067811865476]
`

func requireRowsAlmostEqual(t *testing.T, want, got [][]float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDeltaSlice(t, want[i], got[i], 1e-6, "row %d", i)
	}
}

func TestLoadAndProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(boxesYAML), 0o644))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "car", records[0].Name)

	out, err := Process(records, Options{Degrees: true, Tags: map[string]string{"frame": "lidar"}})
	require.NoError(t, err)
	require.Len(t, out, 2)

	requireRowsAlmostEqual(t, [][]float64{
		{1.0, 2.5, -0.9},
		{-1.0, 2.5, -0.9},
		{-1.0, 2.5, 0.9},
		{1.0, 2.5, 0.9},
		{1.0, -2.5, -0.9},
		{-1.0, -2.5, -0.9},
		{-1.0, -2.5, 0.9},
		{1.0, -2.5, 0.9},
	}, out[0].Corners)
	requireRowsAlmostEqual(t, [][]float64{
		{5.0, 5.5, -0.95},
		{7.0, 5.5, -0.95},
		{7.0, 5.5, 0.85},
		{5.0, 5.5, 0.85},
		{5.0, 10.5, -0.95},
		{7.0, 10.5, -0.95},
		{7.0, 10.5, 0.85},
		{5.0, 10.5, 0.85},
	}, out[1].Corners)

	requireRowsAlmostEqual(t, [][]float64{
		{0, 1, 0, 6},
		{-1, 0, 0, 8},
		{0, 0, 1, -0.05},
	}, out[1].Pose)
	require.Equal(t, "lidar", out[1].Tags["frame"])
	require.Equal(t, records[1], out[1].Record)
}

func TestProcessHomogeneousPose(t *testing.T) {
	out, err := Process([]Record{{
		Position:   []float64{1, 2, 3},
		Scale:      []float64{1, 1, 1},
		Quaternion: []float64{0, 0, 0, 1},
	}}, Options{Homogeneous: true})
	require.NoError(t, err)
	require.Equal(t, [][]float64{
		{1, 0, 0, 1},
		{0, 1, 0, 2},
		{0, 0, 1, 3},
		{0, 0, 0, 1},
	}, out[0].Pose)
}

func TestRecordBoxRadians(t *testing.T) {
	r := Record{Position: []float64{0, 0, 0}, Scale: []float64{5, 2, 1.8}, Euler: []float64{0, 0, math.Pi / 2}}

	box, err := r.Box(false)
	require.NoError(t, err)
	c0 := box.Corners()[0]
	require.InDeltaSlice(t, []float64{1, 2.5, -0.9}, c0[:], 1e-9)
}

func TestValidate(t *testing.T) {
	valid := func() Record {
		return Record{Position: []float64{0, 0, 0}, Scale: []float64{1, 1, 1}, Quaternion: []float64{0, 0, 0, 1}}
	}

	tests := []struct {
		name   string
		mutate func(r *Record)
	}{
		{name: "short position", mutate: func(r *Record) { r.Position = r.Position[:2] }},
		{name: "long scale", mutate: func(r *Record) { r.Scale = append(r.Scale, 1) }},
		{name: "short quaternion", mutate: func(r *Record) { r.Quaternion = []float64{0, 0, 1} }},
		{name: "zero quaternion", mutate: func(r *Record) { r.Quaternion = []float64{0, 0, 0, 0} }},
		{name: "no rotation", mutate: func(r *Record) { r.Quaternion = nil }},
		{name: "both rotations", mutate: func(r *Record) { r.Euler = []float64{0, 0, 0} }},
		{name: "short euler", mutate: func(r *Record) { r.Quaternion, r.Euler = nil, []float64{1} }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)
			require.ErrorIs(t, r.Validate(), ErrInvalidRecord)
		})
	}
}

func TestProcessNamesInvalidRecord(t *testing.T) {
	records := []Record{
		{Position: []float64{0, 0, 0}, Scale: []float64{1, 1, 1}, Euler: []float64{0, 0, 0}},
		{Position: []float64{0, 0, 0}, Scale: []float64{1, 1, 1}},
	}

	_, err := Process(records, Options{})
	require.ErrorIs(t, err, ErrInvalidRecord)
	require.Contains(t, err.Error(), "record 1")
}

func TestProcessBoundsAndRelations(t *testing.T) {
	identity := []float64{0, 0, 0, 1}
	records := []Record{
		{Name: "hall", Position: []float64{0, 0, 0}, Scale: []float64{10, 10, 4}, Quaternion: identity},
		{Name: "crate", Position: []float64{1, 1, 0}, Scale: []float64{1, 1, 1}, Quaternion: identity},
		{Name: "door", Position: []float64{5.5, 0, 0}, Scale: []float64{2, 1, 2}, Quaternion: identity},
		{Name: "far", Position: []float64{50, 0, 0}, Scale: []float64{1, 1, 1}, Euler: []float64{0, 0, 45}},
	}

	out, err := Process(records, Options{Degrees: true})
	require.NoError(t, err)

	require.Equal(t, Bounds{Min: []float64{-5, -5, -2}, Max: []float64{5, 5, 2}}, out[0].Bounds)
	require.Equal(t, []int{1, 2}, out[0].Overlaps)
	require.Equal(t, []int{1}, out[0].Encloses)

	require.Equal(t, []int{0}, out[1].Overlaps)
	require.Nil(t, out[1].Encloses)

	require.Equal(t, []int{0}, out[2].Overlaps)
	require.Nil(t, out[2].Encloses)

	require.Nil(t, out[3].Overlaps)
	require.Nil(t, out[3].Encloses)
	h := math.Sqrt2 / 2
	require.InDeltaSlice(t, []float64{50 - h, -h, -0.5}, out[3].Bounds.Min, 1e-9)
	require.InDeltaSlice(t, []float64{50 + h, h, 0.5}, out[3].Bounds.Max, 1e-9)
}
