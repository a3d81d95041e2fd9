package pedigree

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sosatree/sosatree/pkg/errors"
)

// person is a minimal Individual for layout tests.
type person struct {
	name    string
	father  *person
	mother  *person
	married bool
}

func (p *person) Father() Individual {
	if p.father != nil {
		return p.father
	}
	return nil
}

func (p *person) Mother() Individual {
	if p.mother != nil {
		return p.mother
	}
	return nil
}

func (p *person) HasParents() bool {
	return p.father != nil || p.mother != nil
}

func (p *person) HasSpouseFamily() bool { return p.married }

// fullAncestry builds a complete ancestor tree of the given depth.
func fullAncestry(depth int) *person {
	if depth == 0 {
		return nil
	}
	return &person{
		father: fullAncestry(depth - 1),
		mother: fullAncestry(depth - 1),
	}
}

func testDims() BoxDimensions {
	return BoxDimensions{Width: 270, Height: 80, ArrowWidth: 20, ArrowHeight: 20}
}

func newTestEngine(opts ...Option) *Engine {
	return New(testDims(), 20, 10, opts...)
}

func TestLayoutStrictValidation(t *testing.T) {
	e := newTestEngine()
	root := fullAncestry(4)

	tests := []struct {
		name        string
		generations int
		mode        Orientation
		wantCode    errors.Code
	}{
		{name: "generations too low", generations: 1, mode: Portrait, wantCode: errors.ErrCodeInvalidGenerations},
		{name: "generations too high", generations: 9, mode: Portrait, wantCode: errors.ErrCodeInvalidGenerations},
		{name: "orientation too high", generations: 4, mode: Orientation(4), wantCode: errors.ErrCodeInvalidOrientation},
		{name: "orientation negative", generations: 4, mode: Orientation(-1), wantCode: errors.ErrCodeInvalidOrientation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Layout(root, tt.generations, tt.mode)
			if err == nil {
				t.Fatal("Layout() should fail")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestLayoutBoundaryGenerations(t *testing.T) {
	e := newTestEngine()
	root := fullAncestry(8)

	for _, generations := range []int{MinGenerations, MaxGenerations} {
		g, err := e.Layout(root, generations, Portrait)
		if err != nil {
			t.Fatalf("Layout(%d generations) error: %v", generations, err)
		}
		if len(g.Nodes) != Treesize(generations) {
			t.Errorf("len(Nodes) = %d, want %d", len(g.Nodes), Treesize(generations))
		}
	}
}

func TestLayoutClamping(t *testing.T) {
	e := newTestEngine(WithClamping())
	root := fullAncestry(4)

	tests := []struct {
		name            string
		generations     int
		mode            Orientation
		wantGenerations int
		wantMode        Orientation
	}{
		{name: "generations clamped up", generations: 0, mode: Portrait, wantGenerations: MinGenerations, wantMode: Portrait},
		{name: "generations clamped down", generations: 20, mode: Landscape, wantGenerations: MaxGenerations, wantMode: Landscape},
		{name: "orientation clamped down", generations: 3, mode: Orientation(9), wantGenerations: 3, wantMode: OldestAtBottom},
		{name: "orientation clamped up", generations: 3, mode: Orientation(-2), wantGenerations: 3, wantMode: Portrait},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := e.Layout(root, tt.generations, tt.mode)
			if err != nil {
				t.Fatalf("Layout() error: %v", err)
			}
			if g.Generations != tt.wantGenerations {
				t.Errorf("Generations = %d, want %d", g.Generations, tt.wantGenerations)
			}
			if g.Orientation != tt.wantMode {
				t.Errorf("Orientation = %v, want %v", g.Orientation, tt.wantMode)
			}
		})
	}
}

func TestLayoutNormalized(t *testing.T) {
	e := newTestEngine()
	root := fullAncestry(6)

	for mode := Portrait; mode <= OldestAtBottom; mode++ {
		t.Run(mode.String(), func(t *testing.T) {
			g, err := e.Layout(root, 5, mode)
			if err != nil {
				t.Fatalf("Layout() error: %v", err)
			}

			minX, minY := g.Nodes[0].X, g.Nodes[0].Y
			maxX, maxY := minX, minY
			for _, s := range g.Nodes {
				minX, minY = min(minX, s.X), min(minY, s.Y)
				maxX, maxY = max(maxX, s.X), max(maxY, s.Y)
			}

			if minX != 0 || minY != 0 {
				t.Errorf("minimum coordinate = (%d, %d), want (0, 0)", minX, minY)
			}
			if g.Width <= maxX || g.Height <= maxY {
				t.Errorf("canvas %dx%d does not cover maximum coordinate (%d, %d)",
					g.Width, g.Height, maxX, maxY)
			}
		})
	}
}

func TestLayoutDeterministic(t *testing.T) {
	e := newTestEngine()
	root := fullAncestry(5)

	first, err := e.Layout(root, 4, Portrait)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	second, err := e.Layout(root, 4, Portrait)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	samePerson := cmp.Comparer(func(a, b *person) bool { return a == b })
	if diff := cmp.Diff(first, second, samePerson); diff != "" {
		t.Errorf("repeated layout differs (-first +second):\n%s", diff)
	}
}

func TestLayoutGenerationBands(t *testing.T) {
	e := newTestEngine()
	root := fullAncestry(5)

	// Landscape stacks each generation in one column, oldest-at-top in one
	// row. Within a band the cross-axis coordinate must be constant.
	t.Run("landscape columns", func(t *testing.T) {
		g, err := e.Layout(root, 4, Landscape)
		if err != nil {
			t.Fatalf("Layout() error: %v", err)
		}
		byGen := map[int]int{}
		for i, s := range g.Nodes {
			gen := GenerationOf(i)
			if x, seen := byGen[gen]; seen && x != s.X {
				t.Errorf("slot %d: X = %d, generation %d column is at %d", i, s.X, gen, x)
			}
			byGen[gen] = s.X
		}
		// Older generations sit further right.
		for gen := 1; gen < 4; gen++ {
			if byGen[gen] >= byGen[gen+1] {
				t.Errorf("generation %d at X=%d should be left of generation %d at X=%d",
					gen, byGen[gen], gen+1, byGen[gen+1])
			}
		}
	})

	t.Run("oldest-at-top rows", func(t *testing.T) {
		g, err := e.Layout(root, 4, OldestAtTop)
		if err != nil {
			t.Fatalf("Layout() error: %v", err)
		}
		byGen := map[int]int{}
		for i, s := range g.Nodes {
			gen := GenerationOf(i)
			if y, seen := byGen[gen]; seen && y != s.Y {
				t.Errorf("slot %d: Y = %d, generation %d row is at %d", i, s.Y, gen, y)
			}
			byGen[gen] = s.Y
		}
		// Older generations sit higher.
		for gen := 1; gen < 4; gen++ {
			if byGen[gen] <= byGen[gen+1] {
				t.Errorf("generation %d at Y=%d should be below generation %d at Y=%d",
					gen, byGen[gen], gen+1, byGen[gen+1])
			}
		}
	})
}

func TestLayoutAncestorsBeyondChart(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name        string
		depth       int
		generations int
		want        bool
	}{
		{name: "ancestry exhausted", depth: 3, generations: 3, want: false},
		{name: "ancestry truncated", depth: 5, generations: 3, want: true},
		{name: "shallow ancestry", depth: 2, generations: 4, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := e.Layout(fullAncestry(tt.depth), tt.generations, Portrait)
			if err != nil {
				t.Fatalf("Layout() error: %v", err)
			}
			if g.HasAncestorsBeyondChart != tt.want {
				t.Errorf("HasAncestorsBeyondChart = %v, want %v", g.HasAncestorsBeyondChart, tt.want)
			}
		})
	}
}

func TestLayoutNilRoot(t *testing.T) {
	e := newTestEngine()

	g, err := e.Layout(nil, 3, Portrait)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if len(g.Nodes) != Treesize(3) {
		t.Fatalf("len(Nodes) = %d, want %d", len(g.Nodes), Treesize(3))
	}
	for i, s := range g.Nodes {
		if s.Individual != nil {
			t.Errorf("slot %d should be empty", i)
		}
	}
}

func TestLayoutSpouseFamilyPolicy(t *testing.T) {
	e := newTestEngine()
	root := fullAncestry(3)
	root.married = true

	g, err := e.Layout(root, 3, OldestAtTop)
	if err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	if g.Policy.ExtraOffsetY != testDims().ArrowHeight {
		t.Errorf("ExtraOffsetY = %d, want %d", g.Policy.ExtraOffsetY, testDims().ArrowHeight)
	}
}

func TestCollect(t *testing.T) {
	grandfather := &person{name: "grandfather"}
	father := &person{name: "father", father: grandfather}
	root := &person{name: "root", father: father}

	slots, beyond := Collect(root, 3)
	if len(slots) != 7 {
		t.Fatalf("len(slots) = %d, want 7", len(slots))
	}
	if beyond {
		t.Error("beyond = true, want false")
	}

	wantNames := map[int]string{0: "root", 1: "father", 3: "grandfather"}
	for i, s := range slots {
		want, known := wantNames[i]
		if !known {
			if s.Individual != nil {
				t.Errorf("slot %d should be empty", i)
			}
			continue
		}
		p, ok := s.Individual.(*person)
		if !ok || p.name != want {
			t.Errorf("slot %d = %v, want %q", i, s.Individual, want)
		}
	}
}

func TestCollectTruncation(t *testing.T) {
	// Depth 4 ancestry collected into 3 generations: the last generation
	// still has parents, so the chart is truncated.
	_, beyond := Collect(fullAncestry(4), 3)
	if !beyond {
		t.Error("beyond = false, want true")
	}
}
