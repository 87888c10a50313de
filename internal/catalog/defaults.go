package catalog

// Default returns the built-in tables. Each call returns a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Structures: map[string]StructureType{
			"Castle": {
				Name: "Castle", HP: 275, Size: 2, Unique: true,
				Cost:   Amounts{Gold: 75, Wood: 50, Stone: 100},
				Boosts: Amounts{Gold: 0.2, Wood: 0.1, Stone: 0.15, Food: 0.1, People: 0.001},
			},
			"House": {
				Name: "House", HP: 20, Size: 1,
				Cost:   Amounts{Gold: 20, Wood: 15},
				Boosts: Amounts{People: 0.0005},
			},
			"Market": {
				Name: "Market", HP: 30, Size: 1,
				Cost:   Amounts{Gold: 30, Wood: 20, Stone: 25},
				Boosts: Amounts{Gold: 0.1},
			},
			"Barracks": {
				Name: "Barracks", HP: 40, Size: 1, Trains: "Swordsman",
				Cost: Amounts{Gold: 40, Wood: 20, Stone: 15},
			},
			"Stable": {
				Name: "Stable", HP: 25, Size: 1, Trains: "Archer",
				Cost: Amounts{Gold: 35, Wood: 20, Stone: 15},
			},
			"Farm": {
				Name: "Farm", HP: 20, Size: 1,
				Cost:   Amounts{Gold: 25, Wood: 10},
				Boosts: Amounts{Food: 0.2},
			},
			"LumberMill": {
				Name: "Lumber Mill", HP: 30, Size: 1,
				Cost:   Amounts{Gold: 40, Wood: 30, Stone: 10},
				Boosts: Amounts{Wood: 0.15},
			},
			"Quarry": {
				Name: "Quarry", HP: 50, Size: 1,
				Cost:   Amounts{Gold: 20, Wood: 30, Stone: 10},
				Boosts: Amounts{Stone: 0.12},
			},
		},
		Allies: map[string]AllyType{
			"Swordsman": {
				Name: "Swordsman", Speed: 20, HP: 12, Damage: 1, Range: 15, Cooldown: 1.5, Acquire: 160,
				Cost: Amounts{Gold: 50, Food: 30, People: 1},
			},
			"Archer": {
				Name: "Archer", Speed: 30, HP: 5, Damage: 2, Range: 70, Cooldown: 2, Acquire: 160,
				Cost: Amounts{Gold: 60, Food: 40, People: 1},
			},
		},
		Hostiles: map[string]HostileType{
			"Goblin":       {Name: "Goblin", Speed: 10, HP: 8, Damage: 1, Range: 15, Cooldown: 1.5, Priority: PriorityBuilding},
			"GoblinArcher": {Name: "Goblin Archer", Speed: 15, HP: 3, Damage: 2, Range: 25, Cooldown: 3, Priority: PriorityUnit},
			"Orc":          {Name: "Orc", Speed: 5, HP: 12, Damage: 2, Range: 5, Cooldown: 2, Priority: PriorityUnit},
			"Dragon":       {Name: "Dragon", Speed: 2, HP: 120, Damage: 5, Range: 30, Cooldown: 5, Priority: PriorityBuilding, Elite: true, Scale: 1.5},
		},
		Economy: Economy{
			Rates:    Amounts{Gold: 3, Wood: 2, Stone: 1, Food: 1, People: 0.05},
			Starting: Amounts{Gold: 150, Wood: 100, Stone: 100, Food: 100, People: 3},
		},
	}
}
