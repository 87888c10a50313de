package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_Valid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
	castle := c.Structures["Castle"]
	if !castle.Unique || castle.Size != 2 {
		t.Fatalf("castle should be unique and 2x2, got %+v", castle)
	}
	if castle.Cost[Gold] != 75 || castle.Cost[Wood] != 50 || castle.Cost[Stone] != 100 {
		t.Fatalf("unexpected castle cost %v", castle.Cost)
	}
	if c.Structures["Barracks"].Trains != "Swordsman" || c.Structures["Stable"].Trains != "Archer" {
		t.Fatal("barracks/stable should train swordsmen/archers")
	}
}

func TestDefault_FreshCopy(t *testing.T) {
	a := Default()
	a.Structures["Castle"].Cost[Gold] = 1
	b := Default()
	if b.Structures["Castle"].Cost[Gold] != 75 {
		t.Fatal("Default should not share maps between calls")
	}
}

func TestHostileNames_SplitsElite(t *testing.T) {
	c := Default()
	regular := c.HostileNames(false)
	elite := c.HostileNames(true)
	if strings.Join(regular, ",") != "Goblin,GoblinArcher,Orc" {
		t.Fatalf("unexpected regular hostiles %v", regular)
	}
	if len(elite) != 1 || elite[0] != "Dragon" {
		t.Fatalf("unexpected elite hostiles %v", elite)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Catalog)
		want   string
	}{
		{"unknown trainee", func(c *Catalog) {
			s := c.Structures["Barracks"]
			s.Trains = "Knight"
			c.Structures["Barracks"] = s
		}, "unknown ally"},
		{"zero size", func(c *Catalog) {
			s := c.Structures["House"]
			s.Size = 0
			c.Structures["House"] = s
		}, "must be positive"},
		{"bad resource", func(c *Catalog) {
			c.Structures["Farm"].Cost["mana"] = 3
		}, "unknown resource"},
		{"negative cost", func(c *Catalog) {
			c.Allies["Archer"].Cost[Gold] = -1
		}, "negative"},
		{"bad priority", func(c *Catalog) {
			h := c.Hostiles["Orc"]
			h.Priority = "everything"
			c.Hostiles["Orc"] = h
		}, "unknown priority"},
		{"only elites", func(c *Catalog) {
			c.Hostiles = map[string]HostileType{"Dragon": c.Hostiles["Dragon"]}
		}, "no regular hostile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParse_MergesOverDefaults(t *testing.T) {
	c, err := Parse([]byte(`{
		"hostiles": {
			"Rat": {"name": "Rat", "speed": 40, "hp": 1, "damage": 1, "range": 8, "cooldown": 1, "priority": "unit"}
		},
		"economy": {"starting": {"gold": 9999}}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Hostiles["Goblin"]; ok {
		t.Fatal("hostile table should be replaced wholesale")
	}
	if c.Hostiles["Rat"].Speed != 40 {
		t.Fatalf("rat not loaded: %+v", c.Hostiles["Rat"])
	}
	if _, ok := c.Structures["Castle"]; !ok {
		t.Fatal("structures absent from the file should keep defaults")
	}
	if c.Economy.Starting[Gold] != 9999 || c.Economy.Rates[Gold] != 3 {
		t.Fatalf("economy merge wrong: %+v", c.Economy)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"structures": [`)); err == nil {
		t.Fatal("expected an unmarshal error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(path, []byte(`{"economy": {"rates": {"gold": 10}}}`), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Economy.Rates[Gold] != 10 {
		t.Fatalf("expected gold rate 10, got %v", c.Economy.Rates[Gold])
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file should wrap os.ErrNotExist, got %v", err)
	}
}
