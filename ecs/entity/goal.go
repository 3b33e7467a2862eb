package entity

import (
	"fmt"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// NewGoalAt places the floating goal marker. next is the level that
// reaching it leads to; empty means the run is over.
func NewGoalAt(w *ecs.World, x, y float64, next string) (ecs.Entity, error) {
	entity, err := BuildEntity(w, "goal.yaml")
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("goal: override transform: %w", err)
	}
	goal, ok := ecs.Get(w, entity, component.GoalComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("goal: prefab has no goal component")
	}
	goal.Next = next
	return entity, nil
}
