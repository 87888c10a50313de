package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Garsondee/holdfast/pkg/logger"
)

// CombatResolver applies attacks for every ready agent in arena order, so a
// given state and dt stream always resolves the same way.
type CombatResolver struct {
	Attacks int // attacks landed over the world's lifetime
	Kills   int
}

// Resolve runs the combat phase. An attacker needs a live target in range and
// a spent cooldown. A target reduced to 0 HP or below dies immediately: it is
// skipped by later attackers this tick and cannot attack itself.
func (cr *CombatResolver) Resolve(w *World) {
	for _, e := range w.entities {
		if !e.IsAgent() || !e.Alive() || e.Target == 0 {
			continue
		}
		t := w.validTarget(e.Target)
		if t == nil {
			e.clearTarget()
			continue
		}
		if !w.inRange(e, t) || e.Cooldown > 0 {
			continue
		}
		cr.strike(w, e, t)
	}
}

func (cr *CombatResolver) strike(w *World, e, t *Entity) {
	dmg := e.Profile.Damage
	t.HP -= dmg
	e.Cooldown = e.Profile.Cooldown
	cr.Attacks++
	w.setState(e, StateAttacking)

	if t.HP <= 0 {
		cr.Kills++
		w.post(fmt.Sprintf("%s destroyed %s", e.Name, t.Name))
		w.log.Add(w.tick, e.Label, e.side(), CatCombat, "destroy",
			fmt.Sprintf("%s destroyed %s", e.Name, t.Name), dmg)
		w.kill(t)
		e.clearTarget()
		w.setState(e, StateIdle)
		return
	}
	w.post(fmt.Sprintf("%s attacked %s for %g damage.", e.Name, t.Name, dmg))
	w.log.Add(w.tick, e.Label, e.side(), CatCombat, "attack",
		fmt.Sprintf("%s attacked %s for %g damage.", e.Name, t.Name, dmg), t.HP)
}

// kill marks t dead and queues it for the end-of-tick sweep.
func (w *World) kill(t *Entity) {
	if t.State == StateDead {
		return
	}
	w.setState(t, StateDead)
	t.Path = nil
	t.Dest = nil
	w.pending = append(w.pending, t.ID)
	w.deaths = append(w.deaths, Death{Tick: w.tick, ID: t.ID, Label: t.Label, Kind: t.Kind, Type: t.Type})
	w.log.Add(w.tick, t.Label, t.side(), CatDeath, t.Kind.String(), t.Name, t.HP)
	logger.Component("combat").WithFields(logrus.Fields{
		"entity": t.Label,
		"type":   t.Type,
		"tick":   w.tick,
	}).Debug("entity died")
}

// sweep removes the entities that died this tick and clears every target slot
// that still points at one of them.
func (w *World) sweep() {
	if len(w.pending) == 0 {
		return
	}
	dead := make(map[EntityID]bool, len(w.pending))
	for _, id := range w.pending {
		dead[id] = true
		delete(w.byID, id)
	}
	kept := w.entities[:0]
	for _, e := range w.entities {
		if dead[e.ID] {
			continue
		}
		if dead[e.Target] {
			e.clearTarget()
			if e.Dest == nil && e.State != StateIdle {
				w.setState(e, StateIdle)
			}
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(w.entities); i++ {
		w.entities[i] = nil
	}
	w.entities = kept
	w.pending = w.pending[:0]
}
