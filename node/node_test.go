package node

import "testing"

func TestInitCreatesGenesis(t *testing.T) {
	n := Init("alice")
	if !n.Has("Genesis") {
		t.Fatalf("Init() did not create Genesis")
	}
	if n.Height() != 0 {
		t.Errorf("Height() = %d, want 0", n.Height())
	}
	if n.SizeOfDag() != 1 {
		t.Errorf("SizeOfDag() = %d, want 1", n.SizeOfDag())
	}
}

func TestAddBlockRejectsDuplicate(t *testing.T) {
	n := Init("bob")
	if !n.AddBlock("B", []string{"Genesis"}, 3, true) {
		t.Fatalf("AddBlock(B) first insert should succeed")
	}
	if n.AddBlock("B", []string{"Genesis"}, 3, true) {
		t.Errorf("AddBlock(B) duplicate insert should return false")
	}
}

func TestAddBlockRejectsUnknownParent(t *testing.T) {
	n := Init("carol")
	if n.AddBlock("B", []string{"NoSuchBlock"}, 3, true) {
		t.Errorf("AddBlock(B) with unknown parent should return false")
	}
}

func TestAddBlockUpdatesHeightAndTips(t *testing.T) {
	n := Init("dave")
	n.AddBlock("B", []string{"Genesis"}, 3, true)
	n.AddBlock("C", []string{"Genesis"}, 3, true)
	n.AddBlock("D", []string{"B", "C"}, 3, true)

	if n.Height() != 2 {
		t.Errorf("Height() = %d, want 2", n.Height())
	}

	tips := n.Tips()
	if _, ok := tips["D"]; !ok {
		t.Errorf("tips = %v, want D present", tips)
	}
	if _, ok := tips["B"]; ok {
		t.Errorf("tips = %v, B should have been superseded by D", tips)
	}
	if _, ok := tips["C"]; ok {
		t.Errorf("tips = %v, C should have been superseded by D", tips)
	}
}

func TestAddBlockWithoutUpdateTipsSkipsClassification(t *testing.T) {
	n := Init("erin")
	if !n.AddBlock("B", []string{"Genesis"}, 3, false) {
		t.Fatalf("AddBlock(B, doUpdateTips=false) should still insert")
	}

	block, ok := n.Get("B")
	if !ok {
		t.Fatalf("Get(B) should find the block")
	}
	if block.Blue() {
		t.Errorf("B.Blue() = true, want false since tips/blue were never run")
	}
	tips := n.Tips()
	if _, present := tips["B"]; present {
		t.Errorf("B should not be a tip: doUpdateTips was false")
	}
}
