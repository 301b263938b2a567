package dag

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func addOrFatal(t *testing.T, store *Store, tips *Tips, name string, prev []string, k int) *Block {
	t.Helper()
	block, err := store.Add(name, prev)
	if err != nil {
		t.Fatalf("Add(%s): %s", name, err)
	}
	tips.RecordClassmate(block)
	tips.Update(block)

	view := &DAGView{Blocks: store.All(), Tips: tips.All(), Classmates: tips.Classmates()}
	if err := CalcBlue(name, view, k); err != nil {
		t.Fatalf("CalcBlue(%s): %s", name, err)
	}
	return block
}

// buildFig3 reproduces scenario T1: spec.md's "fig3" DAG at k=3.
func buildFig3(t *testing.T) (*Store, *Tips) {
	store := NewStore()
	tips := NewTips()
	const k = 3

	genesis, err := store.Add(GenesisName, nil)
	if err != nil {
		t.Fatalf("Add(Genesis): %s", err)
	}
	tips.RecordClassmate(genesis)
	tips.Update(genesis)

	addOrFatal(t, store, tips, "B", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "C", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "D", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "E", []string{"Genesis"}, k)

	addOrFatal(t, store, tips, "F", []string{"B", "C"}, k)
	addOrFatal(t, store, tips, "H", []string{"C", "D", "E"}, k)
	addOrFatal(t, store, tips, "I", []string{"E"}, k)

	addOrFatal(t, store, tips, "J", []string{"F", "H"}, k)
	addOrFatal(t, store, tips, "K", []string{"B", "H", "I"}, k)
	addOrFatal(t, store, tips, "L", []string{"D", "I"}, k)
	addOrFatal(t, store, tips, "N", []string{"L", "K"}, k)
	addOrFatal(t, store, tips, "M", []string{"F", "K"}, k)

	return store, tips
}

func TestFig3BluePrint(t *testing.T) {
	store, _ := buildFig3(t)

	got := DagBluePrint(store.All())
	want := "blues={Genesis,B,C,D,F,H,J,K,M,N,} total=10/13"
	if got != want {
		t.Errorf("DagBluePrint() = %q, want %q\nblocks: %s", got, want, spew.Sdump(store.All()))
	}
}

func TestFig3PastSetSizes(t *testing.T) {
	store, _ := buildFig3(t)

	want := map[string]uint64{
		"Genesis": 0,
		"B":       1, "C": 1, "D": 1, "E": 1,
		"F": 3, "H": 4, "I": 2,
		"J": 6, "K": 7, "L": 4, "M": 9, "N": 9,
	}

	for name, expected := range want {
		block, ok := store.Get(name)
		if !ok {
			t.Fatalf("block %s not found", name)
		}
		if block.SizeOfPastSet != expected {
			t.Errorf("%s.SizeOfPastSet = %d, want %d", name, block.SizeOfPastSet, expected)
		}
	}
}

func TestFig3AnticoneOfH(t *testing.T) {
	store := NewStore()
	tips := NewTips()
	const k = 3

	genesis, _ := store.Add(GenesisName, nil)
	tips.RecordClassmate(genesis)
	tips.Update(genesis)

	addOrFatal(t, store, tips, "B", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "C", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "D", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "E", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "F", []string{"B", "C"}, k)
	addOrFatal(t, store, tips, "H", []string{"C", "D", "E"}, k)
	addOrFatal(t, store, tips, "I", []string{"E"}, k)

	anticone := TipsAnticone("H", tips.All())
	got := SortedByHeight(anticone)

	want := []NameHeight{{Name: "B", Height: 1}, {Name: "F", Height: 2}, {Name: "I", Height: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tips_anticone(H) = %v, want %v", got, want)
	}
}

// TestFig3AnticoneOfM uses the fig3 DAG without N (11 blocks after Genesis),
// so the tip set at the time of the query is {J, L, M}.
func TestFig3AnticoneOfM(t *testing.T) {
	store := NewStore()
	tips := NewTips()
	const k = 3

	genesis, _ := store.Add(GenesisName, nil)
	tips.RecordClassmate(genesis)
	tips.Update(genesis)

	addOrFatal(t, store, tips, "B", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "C", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "D", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "E", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "F", []string{"B", "C"}, k)
	addOrFatal(t, store, tips, "H", []string{"C", "D", "E"}, k)
	addOrFatal(t, store, tips, "I", []string{"E"}, k)
	addOrFatal(t, store, tips, "J", []string{"F", "H"}, k)
	addOrFatal(t, store, tips, "K", []string{"B", "H", "I"}, k)
	addOrFatal(t, store, tips, "L", []string{"D", "I"}, k)
	addOrFatal(t, store, tips, "M", []string{"F", "K"}, k)

	anticone := TipsAnticone("M", tips.All())
	got := SortedByHeight(anticone)

	want := []NameHeight{{Name: "J", Height: 3}, {Name: "L", Height: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tips_anticone(M) = %v, want %v\ndag: %s", got, want, spew.Sdump(store.All()))
	}
}

// buildFig4 reproduces scenario T2: spec.md's "fig4" DAG at k=3.
func buildFig4(t *testing.T) *Store {
	store := NewStore()
	tips := NewTips()
	const k = 3

	genesis, _ := store.Add(GenesisName, nil)
	tips.RecordClassmate(genesis)
	tips.Update(genesis)

	addOrFatal(t, store, tips, "B", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "C", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "D", []string{"Genesis"}, k)
	addOrFatal(t, store, tips, "E", []string{"Genesis"}, k)

	addOrFatal(t, store, tips, "F", []string{"B", "C"}, k)
	addOrFatal(t, store, tips, "H", []string{"E"}, k)
	addOrFatal(t, store, tips, "I", []string{"C", "D"}, k)

	addOrFatal(t, store, tips, "J", []string{"F", "D"}, k)
	addOrFatal(t, store, tips, "K", []string{"J", "I", "E"}, k)
	addOrFatal(t, store, tips, "L", []string{"F"}, k)
	addOrFatal(t, store, tips, "N", []string{"D", "H"}, k)

	addOrFatal(t, store, tips, "M", []string{"L", "K"}, k)
	addOrFatal(t, store, tips, "O", []string{"K"}, k)
	addOrFatal(t, store, tips, "P", []string{"K"}, k)
	addOrFatal(t, store, tips, "Q", []string{"N"}, k)

	addOrFatal(t, store, tips, "R", []string{"O", "P", "N"}, k)
	addOrFatal(t, store, tips, "S", []string{"Q"}, k)
	addOrFatal(t, store, tips, "T", []string{"S"}, k)
	addOrFatal(t, store, tips, "U", []string{"T"}, k)

	return store
}

func TestFig4BluePrint(t *testing.T) {
	store := buildFig4(t)

	got := DagBluePrint(store.All())
	want := "blues={Genesis,B,C,D,F,I,J,K,M,O,P,R,} total=12/20"
	if got != want {
		t.Errorf("DagBluePrint() = %q, want %q\nblocks: %s", got, want, spew.Sdump(store.All()))
	}
}

func TestDuplicateBlockRejected(t *testing.T) {
	store := NewStore()
	if _, err := store.Add(GenesisName, nil); err != nil {
		t.Fatalf("Add(Genesis): %s", err)
	}
	if _, err := store.Add(GenesisName, nil); err != ErrDuplicateBlock {
		t.Errorf("Add(Genesis) again: got %v, want ErrDuplicateBlock", err)
	}
}

func TestUnknownParentRejected(t *testing.T) {
	store := NewStore()
	if _, err := store.Add(GenesisName, nil); err != nil {
		t.Fatalf("Add(Genesis): %s", err)
	}
	if _, err := store.Add("B", []string{"NoSuchParent"}); err == nil {
		t.Errorf("Add(B) with unknown parent: expected error, got nil")
	}
}
