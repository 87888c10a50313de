package sim

import (
	"errors"
	"strings"
	"testing"

	"github.com/Garsondee/holdfast/internal/catalog"
	"github.com/Garsondee/holdfast/internal/nav"
)

func TestPlace_UnaffordableCastleRejectedOnce(t *testing.T) {
	tw := newWorld(t,
		WithMapSize(20, 20),
		WithResources(catalog.Amounts{catalog.Gold: 75, catalog.Wood: 49, catalog.Stone: 100}),
	)
	w := tw.World
	before := w.Pool().Amounts()

	for i := 0; i < 3; i++ {
		err := w.Apply(PlaceStructure{Type: "Castle", Cell: nav.Cell{Col: 5, Row: 5}})
		if !errors.Is(err, ErrPlacementRejected) {
			t.Fatalf("attempt %d: expected ErrPlacementRejected, got %v", i, err)
		}
	}

	after := w.Pool().Amounts()
	for _, r := range catalog.Resources {
		if before[r] != after[r] {
			t.Fatalf("%s changed from %.1f to %.1f", r, before[r], after[r])
		}
	}
	if w.CountKind(KindStructure) != 0 {
		t.Fatal("no structure should exist after a rejected placement")
	}
	const text = "Not enough resources to build Castle"
	if n := countMessages(w, text); n != 1 {
		t.Fatalf("expected exactly one active %q message, got %d", text, n)
	}
	if n := len(tw.Log.Filter(CatMessage, "post")); n != 1 {
		dumpLog(t, tw)
		t.Fatalf("expected the message to be posted once, got %d posts", n)
	}
	if n := tw.Log.CountCategory(CatCommand, "rejected"); n != 3 {
		t.Fatalf("expected 3 rejected command events, got %d", n)
	}
}

func TestPlace_UnaffordableThroughTick(t *testing.T) {
	cat := catalog.Default()
	cat.Economy.Rates = catalog.Amounts{}
	tw := newWorld(t,
		WithMapSize(20, 20),
		WithCatalog(cat),
		WithResources(catalog.Amounts{catalog.Gold: 75, catalog.Wood: 49, catalog.Stone: 100}),
	)
	cmd := PlaceStructure{Type: "Castle", Cell: nav.Cell{Col: 2, Row: 2}}
	for i := 0; i < 10; i++ {
		tw.Step(cmd)
	}
	if got := tw.World.Pool().Get(catalog.Wood); got != 49 {
		t.Fatalf("wood should stay at 49, got %.1f", got)
	}
	if n := tw.Log.CountCategory(CatMessage, "post"); n != 1 {
		t.Fatalf("expected one message across repeated failures, got %d", n)
	}
}

func TestPlace_BuildsAndSpends(t *testing.T) {
	tw := newWorld(t, WithMapSize(20, 20))
	w := tw.World
	if err := w.Apply(PlaceStructure{Type: "Castle", Cell: nav.Cell{Col: 4, Row: 4}}); err != nil {
		t.Fatalf("castle placement: %v", err)
	}
	if w.Pool().Get(catalog.Gold) != 75 || w.Pool().Get(catalog.Wood) != 50 || w.Pool().Get(catalog.Stone) != 0 {
		t.Fatalf("unexpected pool after castle: %v", w.Pool().Amounts())
	}
	if countMessages(w, "Built Castle") != 1 {
		t.Fatal("expected a Built Castle message")
	}

	tw.Step()
	g := w.Grid()
	for _, c := range []nav.Cell{{Col: 4, Row: 4}, {Col: 5, Row: 4}, {Col: 4, Row: 5}, {Col: 5, Row: 5}} {
		if g.IsPassable(c) {
			t.Fatalf("castle cell %v should be blocked after the tick's rebuild", c)
		}
	}
}

func TestPlace_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(w *World)
		cmd     PlaceStructure
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown type",
			cmd:     PlaceStructure{Type: "Tower", Cell: nav.Cell{Col: 1, Row: 1}},
			wantErr: ErrInvalidCommand,
			wantMsg: "Unknown structure type Tower",
		},
		{
			name:    "out of bounds",
			cmd:     PlaceStructure{Type: "Castle", Cell: nav.Cell{Col: 9, Row: 9}},
			wantErr: ErrInvalidCommand,
			wantMsg: "outside the map",
		},
		{
			name:    "water",
			cmd:     PlaceStructure{Type: "House", Cell: nav.Cell{Col: 7, Row: 0}},
			wantErr: ErrPlacementRejected,
			wantMsg: "on water",
		},
		{
			name: "cooldown",
			setup: func(w *World) {
				_ = w.Apply(PlaceStructure{Type: "House", Cell: nav.Cell{Col: 0, Row: 0}})
			},
			cmd:     PlaceStructure{Type: "House", Cell: nav.Cell{Col: 2, Row: 0}},
			wantErr: ErrPlacementRejected,
			wantMsg: "Wait before building again",
		},
		{
			name: "unique castle",
			setup: func(w *World) {
				_ = w.Apply(PlaceStructure{Type: "Castle", Cell: nav.Cell{Col: 0, Row: 0}})
				w.buildCooldown = 0
			},
			cmd:     PlaceStructure{Type: "Castle", Cell: nav.Cell{Col: 0, Row: 5}},
			wantErr: ErrPlacementRejected,
			wantMsg: "Only one castle can be built.",
		},
		{
			name: "overlapping structure",
			setup: func(w *World) {
				_ = w.Apply(PlaceStructure{Type: "House", Cell: nav.Cell{Col: 3, Row: 3}})
				w.buildCooldown = 0
			},
			cmd:     PlaceStructure{Type: "Castle", Cell: nav.Cell{Col: 2, Row: 2}},
			wantErr: ErrPlacementRejected,
			wantMsg: "occupied",
		},
		{
			name: "agent on site",
			setup: func(w *World) {
				_, _ = w.SpawnAlly("Swordsman", 24, 88) // cell (1,5)
			},
			cmd:     PlaceStructure{Type: "House", Cell: nav.Cell{Col: 1, Row: 5}},
			wantErr: ErrPlacementRejected,
			wantMsg: "occupied",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := newWorld(t, WithTerrain(
				".......~..",
				".......~..",
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
			))
			w := tw.World
			if tt.setup != nil {
				tt.setup(w)
			}
			before := w.CountKind(KindStructure)
			err := w.Apply(tt.cmd)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tt.wantMsg)
			}
			if w.CountKind(KindStructure) != before {
				t.Fatal("rejected placement changed the structure count")
			}
		})
	}
}

func TestTrain_SpawnsBesideStructure(t *testing.T) {
	tw := newWorld(t, WithMapSize(20, 20), WithStructure("Barracks", 10, 10))
	w := tw.World
	barracks := tw.ByKind(KindStructure)[0]

	if err := w.Apply(TrainAgent{Structure: barracks.ID}); err != nil {
		t.Fatalf("train: %v", err)
	}
	allies := tw.ByKind(KindAlly)
	if len(allies) != 1 || allies[0].Type != "Swordsman" {
		t.Fatalf("expected one swordsman, got %v", allies)
	}
	// bottom-middle neighbour (10,11): centre (168,184)
	if allies[0].X != 168 || allies[0].Y != 184 {
		t.Fatalf("swordsman at (%.0f,%.0f), want (168,184)", allies[0].X, allies[0].Y)
	}
	p := w.Pool()
	if p.Get(catalog.Gold) != 100 || p.Get(catalog.Food) != 70 || p.Get(catalog.People) != 2 {
		t.Fatalf("unexpected pool after training: %v", p.Amounts())
	}
	if countMessages(w, "Trained Swordsman") != 1 {
		t.Fatal("expected a Trained Swordsman message")
	}
}

func TestTrain_Rejections(t *testing.T) {
	tw := newWorld(t,
		WithMapSize(20, 20),
		WithResources(catalog.Amounts{catalog.Gold: 10}),
		WithStructure("Stable", 2, 2),
		WithStructure("House", 6, 6),
	)
	w := tw.World
	structs := tw.ByKind(KindStructure)

	err := w.Apply(TrainAgent{Structure: structs[0].ID})
	if !errors.Is(err, ErrPlacementRejected) || countMessages(w, "Not enough resources to train Archer") != 1 {
		t.Fatalf("expected an affordability rejection, got %v", err)
	}
	if err := w.Apply(TrainAgent{Structure: structs[1].ID}); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("house cannot train, got %v", err)
	}
	if err := w.Apply(TrainAgent{Structure: 999}); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("unknown structure should be invalid, got %v", err)
	}
	if w.CountKind(KindAlly) != 0 {
		t.Fatal("no ally should have been trained")
	}
}

func TestMove_StraightToDestination(t *testing.T) {
	tw := newWorld(t, WithMapSize(20, 20), WithAlly("Swordsman", 40, 40))
	w := tw.World
	ally := tw.ByKind(KindAlly)[0]

	if err := w.Apply(MoveAgent{Agent: ally.ID, Cell: nav.Cell{Col: 10, Row: 2}}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if ally.State != StateMoving || ally.Dest == nil {
		t.Fatalf("ally should be moving with a destination, state=%s", ally.State)
	}
	// 128px at 20px/s = 6.4s ≈ 192 ticks
	done := tw.RunUntil(func(tw *TestWorld) bool { return ally.State == StateIdle }, 400)
	if done < 0 {
		dumpLog(t, tw)
		t.Fatalf("ally never arrived, at (%.1f,%.1f)", ally.X, ally.Y)
	}
	if ally.X != 168 || ally.Y != 40 || ally.Dest != nil {
		t.Fatalf("ally should rest at (168,40) with no destination, got (%.1f,%.1f) dest=%v", ally.X, ally.Y, ally.Dest)
	}
	if len(ally.Path) != 0 {
		t.Fatal("a direct move should not plan a path")
	}
}

func TestMove_Rejections(t *testing.T) {
	tw := newWorld(t,
		WithTerrain(
			"....",
			"..~.",
			"....",
		),
		WithAlly("Archer", 8, 8),
		WithHostile("Orc", 56, 40),
	)
	w := tw.World
	ally := tw.ByKind(KindAlly)[0]
	orc := tw.ByKind(KindHostile)[0]

	if err := w.Apply(MoveAgent{Agent: ally.ID, Cell: nav.Cell{Col: 9, Row: 0}}); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("out-of-bounds destination should be invalid, got %v", err)
	}
	if err := w.Apply(MoveAgent{Agent: ally.ID, Cell: nav.Cell{Col: 2, Row: 1}}); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("water destination should be invalid, got %v", err)
	}
	if err := w.Apply(MoveAgent{Agent: orc.ID, Cell: nav.Cell{Col: 0, Row: 0}}); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("hostiles cannot be ordered, got %v", err)
	}
	if err := w.Apply(nil); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("nil command should be invalid, got %v", err)
	}
}
