package usecase

import "testing"

func TestSplitPoints(t *testing.T) {
	cases := []struct {
		name  string
		a, b  int
		wantA int
		wantB int
	}{
		{name: "a wins", a: 420, b: 400, wantA: 2, wantB: 0},
		{name: "b wins", a: 370, b: 390, wantA: 0, wantB: 2},
		{name: "tie", a: 400, b: 400, wantA: 1, wantB: 1},
		{name: "zero tie", a: 0, b: 0, wantA: 1, wantB: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotA, gotB := splitPoints(tc.a, tc.b)
			if gotA != tc.wantA || gotB != tc.wantB {
				t.Fatalf("splitPoints(%d, %d) = (%d, %d), want (%d, %d)", tc.a, tc.b, gotA, gotB, tc.wantA, tc.wantB)
			}
		})
	}
}

func TestNormalizeLineup_SortsByPosition(t *testing.T) {
	lineup := []PlayerScore{
		{PlayerID: "p4", Position: 4, Full: 250, Spare: 120},
		{PlayerID: "p1", Position: 1, Full: 280, Spare: 140},
		{PlayerID: "p3", Position: 3, Full: 265, Spare: 135},
		{PlayerID: "p2", Position: 2, Full: 260, Spare: 130},
	}

	out, err := normalizeLineup(lineup)
	if err != nil {
		t.Fatalf("normalize lineup: %v", err)
	}
	for i, score := range out {
		if score.Position != i+1 {
			t.Fatalf("expected position %d at index %d, got %d", i+1, i, score.Position)
		}
	}
}

func TestNormalizeLineup_Rejections(t *testing.T) {
	valid := func() []PlayerScore {
		return []PlayerScore{
			{PlayerID: "p1", Position: 1, Full: 280, Spare: 140},
			{PlayerID: "p2", Position: 2, Full: 260, Spare: 130},
			{PlayerID: "p3", Position: 3, Full: 265, Spare: 135},
			{PlayerID: "p4", Position: 4, Full: 250, Spare: 120},
		}
	}

	t.Run("short lineup", func(t *testing.T) {
		if _, err := normalizeLineup(valid()[:3]); err == nil {
			t.Fatal("expected error for 3-player lineup")
		}
	})

	t.Run("duplicate position", func(t *testing.T) {
		lineup := valid()
		lineup[3].Position = 2
		if _, err := normalizeLineup(lineup); err == nil {
			t.Fatal("expected error for duplicate position")
		}
	})

	t.Run("duplicate player", func(t *testing.T) {
		lineup := valid()
		lineup[3].PlayerID = "p1"
		if _, err := normalizeLineup(lineup); err == nil {
			t.Fatal("expected error for duplicate player")
		}
	})

	t.Run("position out of range", func(t *testing.T) {
		lineup := valid()
		lineup[0].Position = 5
		if _, err := normalizeLineup(lineup); err == nil {
			t.Fatal("expected error for position 5")
		}
	})

	t.Run("negative raw score", func(t *testing.T) {
		lineup := valid()
		lineup[2].Spare = -1
		if _, err := normalizeLineup(lineup); err == nil {
			t.Fatal("expected error for negative spare")
		}
	})

	t.Run("missing player id", func(t *testing.T) {
		lineup := valid()
		lineup[1].PlayerID = "  "
		if _, err := normalizeLineup(lineup); err == nil {
			t.Fatal("expected error for blank player id")
		}
	})
}
