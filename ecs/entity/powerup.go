package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

var powerUpPrefabs = map[string]string{
	component.PowerUpCoin:  "coin.yaml",
	component.PowerUpHeart: "heart.yaml",
	component.PowerUpStar:  "star.yaml",
}

func NewPowerUpAt(w *ecs.World, typ string, x, y float64) (ecs.Entity, error) {
	prefab, ok := powerUpPrefabs[strings.ToLower(typ)]
	if !ok {
		return 0, fmt.Errorf("powerup %q: %w", typ, ErrUnknownType)
	}
	entity, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("powerup: override transform: %w", err)
	}
	return entity, nil
}

// KnownPowerUp reports whether NewPowerUpAt can spawn typ.
func KnownPowerUp(typ string) bool {
	_, ok := powerUpPrefabs[strings.ToLower(typ)]
	return ok
}
