package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/platformer/ecs"
)

// ErrUnknownType is returned for enemy or power-up types with no prefab.
var ErrUnknownType = errors.New("entity: unknown type")

var enemyPrefabs = map[string]string{
	"slime":  "slime.yaml",
	"flying": "flying.yaml",
}

// NewEnemyAt builds the enemy prefab registered for typ.
func NewEnemyAt(w *ecs.World, typ string, x, y float64) (ecs.Entity, error) {
	prefab, ok := enemyPrefabs[strings.ToLower(typ)]
	if !ok {
		return 0, fmt.Errorf("enemy %q: %w", typ, ErrUnknownType)
	}
	entity, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("enemy: override transform: %w", err)
	}
	return entity, nil
}

// KnownEnemy reports whether NewEnemyAt can spawn typ.
func KnownEnemy(typ string) bool {
	_, ok := enemyPrefabs[strings.ToLower(typ)]
	return ok
}
