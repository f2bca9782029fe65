// Package boxfile holds the on-disk box record schema used by the
// boxcorners command.
package boxfile

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/akmonengine/copious/recordio"
	"github.com/akmonengine/copious/spatial"
)

// ErrInvalidRecord is wrapped by every validation failure.
var ErrInvalidRecord = errors.New("invalid box record")

// Record describes one box. Exactly one of Quaternion (x, y, z, w) and
// Euler (intrinsic XYZ) must be set.
type Record struct {
	Name       string    `json:"name,omitempty" yaml:"name,omitempty"`
	Position   []float64 `json:"position" yaml:"position"`
	Scale      []float64 `json:"scale" yaml:"scale"`
	Quaternion []float64 `json:"quaternion,omitempty" yaml:"quaternion,omitempty"`
	Euler      []float64 `json:"euler,omitempty" yaml:"euler,omitempty"`
}

// Bounds is the axis-aligned hull of a box's corners.
type Bounds struct {
	Min []float64 `json:"min" yaml:"min"`
	Max []float64 `json:"max" yaml:"max"`
}

// CornerRecord is a Record with its derived geometry. Overlaps lists the
// indices of the other records whose bounds intersect this one's, Encloses
// those whose center lies within this one's bounds.
type CornerRecord struct {
	Record   `yaml:",inline"`
	Pose     [][]float64       `json:"pose" yaml:"pose"`
	Corners  [][]float64       `json:"corners" yaml:"corners"`
	Bounds   Bounds            `json:"bounds" yaml:"bounds"`
	Overlaps []int             `json:"overlaps,omitempty" yaml:"overlaps,omitempty"`
	Encloses []int             `json:"encloses,omitempty" yaml:"encloses,omitempty"`
	Tags     map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Options control how records are turned into boxes and written out.
type Options struct {
	// Degrees marks Euler angles as degrees rather than radians.
	Degrees bool
	// Homogeneous writes the pose as 4x4 rather than 3x4.
	Homogeneous bool
	Tags        map[string]string
}

// Load reads records from a JSON or YAML file.
func Load(path string) ([]Record, error) {
	var records []Record
	if err := recordio.ReadInto(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Validate checks the record shape. The quaternion must not be zero; it is
// otherwise used as given.
func (r Record) Validate() error {
	if len(r.Position) != 3 {
		return errors.Wrapf(ErrInvalidRecord, "position needs 3 values, got %d", len(r.Position))
	}
	if len(r.Scale) != 3 {
		return errors.Wrapf(ErrInvalidRecord, "scale needs 3 values, got %d", len(r.Scale))
	}

	switch {
	case r.Quaternion != nil && r.Euler != nil:
		return errors.Wrap(ErrInvalidRecord, "quaternion and euler are mutually exclusive")
	case r.Quaternion != nil:
		if len(r.Quaternion) != 4 {
			return errors.Wrapf(ErrInvalidRecord, "quaternion needs 4 values, got %d", len(r.Quaternion))
		}
		q := r.Quaternion
		if (mgl64.Vec4{q[0], q[1], q[2], q[3]}).Len() == 0 {
			return errors.Wrap(ErrInvalidRecord, "quaternion has zero norm")
		}
	case r.Euler != nil:
		if len(r.Euler) != 3 {
			return errors.Wrapf(ErrInvalidRecord, "euler needs 3 values, got %d", len(r.Euler))
		}
	default:
		return errors.Wrap(ErrInvalidRecord, "one of quaternion or euler is required")
	}

	return nil
}

// Box builds the oriented box described by the record.
func (r Record) Box(degrees bool) (*spatial.OrientedBox, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if r.Euler != nil {
		return spatial.NewOrientedBoxFromPositionScaleEuler(
			r.Position[0], r.Position[1], r.Position[2],
			r.Scale[0], r.Scale[1], r.Scale[2],
			r.Euler[0], r.Euler[1], r.Euler[2],
			degrees,
		), nil
	}

	p, s, q := r.Position, r.Scale, r.Quaternion
	return spatial.NewOrientedBox(
		mgl64.Vec3{p[0], p[1], p[2]},
		mgl64.Vec3{s[0], s[1], s[2]},
		mgl64.Vec4{q[0], q[1], q[2], q[3]},
	), nil
}

// Process computes the corners, pose and bounds of every record, and how
// the bounds relate across records. The first invalid record aborts with
// an error naming its index.
func Process(records []Record, opts Options) ([]CornerRecord, error) {
	boxes := make([]*spatial.OrientedBox, len(records))
	bounds := make([]spatial.AABB, len(records))
	for i, r := range records {
		box, err := r.Box(opts.Degrees)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		boxes[i] = box
		bounds[i] = box.AABB()
	}

	out := make([]CornerRecord, len(records))
	for i, box := range boxes {
		out[i] = CornerRecord{
			Record:  records[i],
			Pose:    rows(box.Transform().Matrix(opts.Homogeneous)),
			Corners: rows(box.CornersMatrix()),
			Bounds: Bounds{
				Min: []float64{bounds[i].Min.X(), bounds[i].Min.Y(), bounds[i].Min.Z()},
				Max: []float64{bounds[i].Max.X(), bounds[i].Max.Y(), bounds[i].Max.Z()},
			},
			Tags: opts.Tags,
		}

		for j, other := range boxes {
			if j == i {
				continue
			}
			if bounds[i].Overlaps(bounds[j]) {
				out[i].Overlaps = append(out[i].Overlaps, j)
			}
			if bounds[i].ContainsPoint(other.Position()) {
				out[i].Encloses = append(out[i].Encloses, j)
			}
		}
	}
	return out, nil
}

func rows(m *mat.Dense) [][]float64 {
	n, _ := m.Dims()
	out := make([][]float64, n)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
