package store

import (
	"context"
	"testing"
	"time"

	"github.com/sosatree/sosatree/pkg/chart"
	"github.com/sosatree/sosatree/pkg/errors"
)

func testChart(root string) chart.Chart {
	return chart.Chart{
		RootXref:    root,
		RootName:    "Root Person",
		Generations: 2,
		Orientation: "portrait",
		Boxes: []chart.Box{
			{Sosa: 1, Generation: 1, Xref: root},
			{Sosa: 2, Generation: 2},
			{Sosa: 3, Generation: 2},
		},
	}
}

func TestNewRecord(t *testing.T) {
	rec := NewRecord("smith family", "abc123", testChart("I1"))
	if rec.ID == "" {
		t.Error("NewRecord() did not assign an ID")
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("NewRecord() did not set timestamps")
	}

	other := NewRecord("jones family", "def456", testChart("I2"))
	if rec.ID == other.ID {
		t.Error("record IDs should be unique")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close(ctx)

	rec := NewRecord("smith family", "abc123", testChart("I1"))
	if err := st.Save(ctx, rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := st.Load(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Name != "smith family" || got.Chart.RootXref != "I1" {
		t.Errorf("Load() = %+v", got)
	}
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.Load(context.Background(), "nope")
	if code := errors.GetCode(err); code != errors.ErrCodeChartNotFound {
		t.Errorf("GetCode() = %v, want %v", code, errors.ErrCodeChartNotFound)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	a := NewRecord("first", "h1", testChart("I1"))
	if err := st.Save(ctx, a); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond) // distinct UpdatedAt
	b := NewRecord("second", "h2", testChart("I2"))
	if err := st.Save(ctx, b); err != nil {
		t.Fatal(err)
	}

	list, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	// Most recently updated first.
	if list[0].Name != "second" || list[1].Name != "first" {
		t.Errorf("list order = %s, %s", list[0].Name, list[1].Name)
	}
	if list[0].RootXref != "I2" || list[0].Generations != 2 {
		t.Errorf("summary = %+v", list[0])
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	rec := NewRecord("to delete", "h", testChart("I1"))
	if err := st.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := st.Delete(ctx, rec.ID); errors.GetCode(err) != errors.ErrCodeChartNotFound {
		t.Errorf("second Delete() error = %v, want CHART_NOT_FOUND", err)
	}
}

func TestSaveAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	rec := &Record{Name: "anonymous", Chart: testChart("I1")}
	if err := st.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Error("Save() should assign an ID to a fresh record")
	}
	if rec.UpdatedAt.IsZero() {
		t.Error("Save() should set UpdatedAt")
	}
}
