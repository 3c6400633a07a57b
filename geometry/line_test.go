package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type lineFixtures struct {
	line1, line2, line3, line4, line5, line6, line7 Line
}

func newLineFixtures() lineFixtures {
	return lineFixtures{
		line1: MustLine(pt(0, 0, 0), pt(1, 1, 0)),
		line2: MustLine(pt(0, 1, 0), pt(1, 0, 0)),
		line3: MustLine(pt(2, 2, 0), pt(3, 3, 0)),
		line4: MustLine(pt(0, 0, 0), pt(0, 1, 0)),
		line5: MustLine(pt(0, 1, 0), pt(1, 2, 0)),
		line6: MustLine(pt(0.5, 0.5, 0), pt(1.5, 1.5, 0)),
		line7: MustLine(pt(10, 1, 0), pt(10, 0, 0)),
	}
}

func TestNewLineIdenticalPoints(t *testing.T) {
	_, err := NewLine(pt(1, 0, 0), pt(1, 0, 0))
	assert.ErrorIs(t, err, ErrIdenticalPoints)

	assert.Panics(t, func() { MustLine(pt(1, 0, 0), pt(1, 0, 0)) })
}

func TestLineHasEndpointWithinTolerance(t *testing.T) {
	f := newLineFixtures()
	for _, p := range f.line6.Points() {
		almost := p.Add(Scalar(1e-7))
		assert.True(t, f.line6.HasEndpoint(almost))
	}
	assert.False(t, f.line6.HasEndpoint(pt(1, 1, 0)))
}

func TestLineLength(t *testing.T) {
	f := newLineFixtures()
	assert.Equal(t, 1.414214, f.line1.Length())
}

func TestLineVectors(t *testing.T) {
	f := newLineFixtures()

	v := f.line3.AsVector()
	assert.Equal(t, [3]float64{1, 1, 0}, [3]float64{v.X, v.Y, v.Z})

	u := f.line3.DirUnitVector()
	assert.InDelta(t, 1/math.Sqrt2, u.X, 1e-9)
	assert.InDelta(t, 1/math.Sqrt2, u.Y, 1e-9)
	assert.InDelta(t, 0, u.Z, 1e-9)
}

func TestLineNormalize(t *testing.T) {
	l := MustLine(pt(0, 0, 0), pt(0, 0, 4))
	n, err := l.Normalize()
	require.NoError(t, err)
	assert.True(t, n.Equal(MustLine(pt(0, 0, 0), pt(0, 0, 1))))
}

func TestLineReversedAndSorting(t *testing.T) {
	f := newLineFixtures()
	r := f.line7.Reversed()
	assert.True(t, r.Start().Equal(f.line7.End()))
	assert.True(t, r.End().Equal(f.line7.Start()))
	assert.False(t, r.Equal(f.line7))

	assert.True(t, f.line1.Less(f.line3))
	assert.Equal(t, 0, f.line1.Compare(MustLine(pt(0, 0, 0), pt(1, 1, 0))))
}

func TestLineIsCollinear(t *testing.T) {
	f := newLineFixtures()

	assert.True(t, f.line1.IsCollinear(f.line1))
	assert.True(t, f.line1.IsCollinear(f.line6))
	assert.True(t, f.line1.IsCollinear(f.line6.Reversed()))

	assert.False(t, f.line1.IsCollinear(f.line2))
	assert.False(t, f.line1.IsCollinear(f.line5))
	assert.False(t, f.line1.IsCollinear(f.line4))
	assert.False(t, f.line1.IsCollinear(f.line4.Reversed()))
	assert.False(t, f.line1.Reversed().IsCollinear(f.line4))
	assert.False(t, f.line1.Reversed().IsCollinear(f.line4.Reversed()))
}

func TestLineIsParallel(t *testing.T) {
	f := newLineFixtures()

	assert.True(t, f.line1.IsParallel(f.line1))
	assert.True(t, f.line1.IsParallel(f.line6))
	assert.True(t, f.line1.IsParallel(f.line5))

	assert.False(t, f.line1.IsParallel(f.line2))
	assert.False(t, f.line1.IsParallel(f.line4))
}

func TestLineProjectOntoRay(t *testing.T) {
	f := newLineFixtures()

	t.Run("projection beyond the line", func(t *testing.T) {
		proj, err := f.line1.ProjectOntoRay(pt(2, 0, 0), Lenient)
		require.NoError(t, err)
		assert.True(t, proj.Equal(pt(1, 1, 0)), "got %s", proj)
	})

	t.Run("projection inside the line", func(t *testing.T) {
		proj, err := f.line1.ProjectOntoRay(pt(1, 0, 0), Lenient)
		require.NoError(t, err)
		assert.True(t, proj.Equal(pt(0.5, 0.5, 0)), "got %s", proj)
	})

	t.Run("point on ray outside the line", func(t *testing.T) {
		p := pt(2, 2, 0)
		proj, err := f.line1.ProjectOntoRay(p, Lenient)
		require.NoError(t, err)
		assert.Equal(t, p, proj)
	})

	t.Run("point on ray inside the line", func(t *testing.T) {
		p := pt(0.5, 0.5, 0)
		proj, err := f.line1.ProjectOntoRay(p, Lenient)
		require.NoError(t, err)
		assert.Equal(t, p, proj)

		_, err = f.line1.ProjectOntoRay(p, Strict)
		assert.ErrorIs(t, err, ErrPointOnShape)
	})
}

func TestLinePositionOnRay(t *testing.T) {
	f := newLineFixtures()
	ref, err := f.line1.Mul(Scalar(2))
	require.NoError(t, err)

	p := pt(3, 3, 0)

	pos, ok, err := ref.PositionOnRay(p, true, Lenient)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 1.5, pos, 1e-6)

	pos, ok, err = ref.PositionOnRay(p, false, Lenient)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 3*math.Sqrt2, pos, 1e-6)

	pos, ok, err = ref.PositionOnRay(pt(-1, -1, 0), true, Lenient)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, -0.5, pos, 1e-6)

	pos, ok, err = ref.PositionOnRay(ref.Start(), true, Strict)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, pos)

	off := pt(3, 4, 0)
	_, ok, err = ref.PositionOnRay(off, true, Lenient)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ref.PositionOnRay(off, true, Strict)
	assert.ErrorIs(t, err, ErrPointNotOnShape)
}

func TestLineProjectOntoLine(t *testing.T) {
	f := newLineFixtures()

	proj, ok, err := f.line1.ProjectOntoLine(pt(1, 0, 0), Lenient, Lenient)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, proj.Equal(pt(0.5, 0.5, 0)))

	onLine := pt(0.5, 0.5, 0)
	proj, ok, err = f.line1.ProjectOntoLine(onLine, Lenient, Lenient)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, onLine, proj)

	_, _, err = f.line1.ProjectOntoLine(onLine, Strict, Lenient)
	assert.ErrorIs(t, err, ErrPointOnShape)

	for _, p := range []Point{pt(3, 0, 0), pt(2, 2, 0)} {
		_, ok, err := f.line1.ProjectOntoLine(p, Lenient, Lenient)
		require.NoError(t, err)
		assert.False(t, ok, "projection of %s", p)

		_, _, err = f.line1.ProjectOntoLine(p, Lenient, Strict)
		assert.ErrorIs(t, err, ErrPointNotOnShape, "projection of %s", p)
	}
}

func TestLineProjectOntoLineOffAxis(t *testing.T) {
	l := MustLine(pt(0, 0, 0), pt(3, 7, 0))

	cases := []struct {
		p    Point
		want [3]float64
	}{
		// t = (p·d)/|d|², |d|² = 58
		{pt(1, 1, 1), [3]float64{30.0 / 58, 70.0 / 58, 0}},
		{pt(2, 1, 3), [3]float64{39.0 / 58, 91.0 / 58, 0}},
		{pt(0.5, 2, -1), [3]float64{46.5 / 58, 108.5 / 58, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.p.String(), func(t *testing.T) {
			for _, offLine := range []Policy{Lenient, Strict} {
				proj, ok, err := l.ProjectOntoLine(tc.p, Lenient, offLine)
				require.NoError(t, err)
				require.True(t, ok)
				got := proj.Coords()
				for i := range got {
					assert.InDelta(t, tc.want[i], got[i], 1e-4)
				}
			}
		})
	}

	_, ok, err := l.ProjectOntoLine(pt(10, 10, 10), Lenient, Lenient)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLineShortestLineTo(t *testing.T) {
	f := newLineFixtures()

	cases := []struct {
		name      string
		p         Point
		wantStart Point
	}{
		{"projection on line", pt(1, 0, 0), pt(0.5, 0.5, 0)},
		{"projection after end", pt(10, 0, 0), f.line1.End()},
		{"on ray after end", pt(10, 10, 0), f.line1.End()},
		{"projection before start", pt(-10, 0, 0), f.line1.Start()},
		{"on ray before start", pt(-10, -10, 0), f.line1.Start()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l, ok, err := f.line1.ShortestLineTo(tc.p, Lenient)
			require.NoError(t, err)
			require.True(t, ok)
			assert.True(t, l.Start().Equal(tc.wantStart), "start %s", l.Start())
			assert.True(t, l.End().Equal(tc.p), "end %s", l.End())
		})
	}

	offAxis := MustLine(pt(0, 0, 0), pt(3, 7, 0))
	for _, p := range []Point{pt(1, 1, 1), pt(2, 1, 3), pt(0.5, 2, -1)} {
		l, ok, err := offAxis.ShortestLineTo(p, Strict)
		require.NoError(t, err, "shortest line to %s", p)
		require.True(t, ok)
		assert.True(t, l.End().Equal(p))
		// perpendicular to the line within the rounding of the foot point
		assert.InDelta(t, 0, r3.Dot(l.AsVector(), offAxis.DirUnitVector()), 1e-4)
	}

	onLine := pt(0.5, 0.5, 0)
	_, ok, err := f.line1.ShortestLineTo(onLine, Lenient)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = f.line1.ShortestLineTo(onLine, Strict)
	assert.ErrorIs(t, err, ErrPointOnShape)

	_, _, err = f.line1.ShortestLineTo(f.line1.End(), Strict)
	assert.ErrorIs(t, err, ErrPointOnShape)
}

func TestLineContainsPoint(t *testing.T) {
	f := newLineFixtures()

	assert.True(t, f.line1.ContainsPoint(pt(0.5, 0.5, 0), true))
	assert.False(t, f.line1.ContainsPoint(pt(5, 5, 0), true))
	assert.False(t, f.line1.ContainsPoint(pt(1, 5, 0), true))

	endpoint := f.line1.Start()
	assert.True(t, f.line1.ContainsPoint(endpoint, true))
	assert.False(t, f.line1.ContainsPoint(endpoint, false))
}

func TestLineArithmetic(t *testing.T) {
	l := MustLine(pt(3, 4, 5), pt(6, 8, 10))

	cases := []struct {
		name string
		run  func() (Line, error)
		want Line
	}{
		{"add scalar", func() (Line, error) { return l.Add(Scalar(2.5)) }, MustLine(pt(5.5, 6.5, 7.5), pt(8.5, 10.5, 12.5))},
		{"add vector", func() (Line, error) { return l.Add(Vector{1, 2.5, 3}) }, MustLine(pt(4, 6.5, 8), pt(7, 10.5, 13))},
		{"sub scalar", func() (Line, error) { return l.Sub(Scalar(2.5)) }, MustLine(pt(0.5, 1.5, 2.5), pt(3.5, 5.5, 7.5))},
		{"sub vector", func() (Line, error) { return l.Sub(Vector{1, 2.5, 3}) }, MustLine(pt(2, 1.5, 2), pt(5, 5.5, 7))},
		{"mul scalar", func() (Line, error) { return l.Mul(Scalar(2.5)) }, MustLine(pt(7.5, 10, 12.5), pt(15, 20, 25))},
		{"mul vector", func() (Line, error) { return l.Mul(Vector{1, 2.5, 3}) }, MustLine(pt(3, 10, 15), pt(6, 20, 30))},
		{"div scalar", func() (Line, error) { return l.Div(Scalar(2.5)) }, MustLine(pt(1.2, 1.6, 2), pt(2.4, 3.2, 4))},
		{"div vector", func() (Line, error) { return l.Div(Vector{1, 2, 4}) }, MustLine(pt(3, 2, 1.25), pt(6, 4, 2.5))},
		{"floordiv", func() (Line, error) { return l.FloorDiv(Scalar(4)) }, MustLine(pt(0, 1, 1), pt(1, 2, 2))},
		{"pow", func() (Line, error) { return l.Pow(2) }, MustLine(pt(9, 16, 25), pt(36, 64, 100))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.run()
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
		})
	}

	_, err := l.Div(Scalar(0))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = l.Mul(Scalar(0))
	assert.ErrorIs(t, err, ErrIdenticalPoints)

	_, err = l.Pow(math.Inf(1))
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestLinesFromPoints(t *testing.T) {
	lines, err := LinesFromPoints(pts([3]float64{0, 0, 0}, [3]float64{1, 0, 0}, [3]float64{1, 1, 0}))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].End().Equal(lines[1].Start()))

	_, err = LinesFromPoints(pts([3]float64{0, 0, 0}, [3]float64{0, 0, 0}))
	assert.ErrorIs(t, err, ErrIdenticalPoints)

	lines, err = LinesFromPoints(pts([3]float64{0, 0, 0}))
	require.NoError(t, err)
	assert.Empty(t, lines)
}
