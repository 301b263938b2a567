package dag

import (
	"reflect"
	"testing"
)

// TestTopologicalOrderBlueBeforeRed pins the three-key ordering rule (height
// asc, blue before red, name asc). "A" sorts before "Z" by name alone, so
// this DAG would expose a regression to a (Height, Name)-only comparator:
// "Z" is forced blue and "A" is left red/unclassified, which must still
// place Z ahead of A despite the name order. Blue status is set directly
// (bypassing CalcBlue) to isolate the comparator from classification, which
// is covered separately by TestFig3BluePrint and friends.
func TestTopologicalOrderBlueBeforeRed(t *testing.T) {
	store := NewStore()
	if _, err := store.Add(GenesisName, nil); err != nil {
		t.Fatalf("Add(Genesis): %s", err)
	}

	a, err := store.Add("A", []string{GenesisName})
	if err != nil {
		t.Fatalf("Add(A): %s", err)
	}
	z, err := store.Add("Z", []string{GenesisName})
	if err != nil {
		t.Fatalf("Add(Z): %s", err)
	}
	z.setBlue(0)

	if a.Blue() {
		t.Fatalf("A should be red for this test to be meaningful")
	}
	if !z.Blue() {
		t.Fatalf("Z should be blue for this test to be meaningful")
	}

	got := TopologicalOrder(store.All())
	want := []string{"Genesis", "Z", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopologicalOrder() = %v, want %v (blue must sort before red at equal height)", got, want)
	}
}
