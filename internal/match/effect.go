package match

import (
	"fmt"

	"github.com/duskfall/core/internal/geom"
)

// EffectKind names one advisory side effect.
type EffectKind uint8

const (
	EffectPlayWinSound EffectKind = iota + 1
	EffectPlayFailSound
	EffectPlayBattleMusic
	EffectDisposeStealthLighting
	EffectSwitchPlayerForm
	EffectSwitchActorMode
	EffectScaleShadows
	EffectSetEnemyDamage
	EffectSetAmbientColor
)

var effectNames = map[EffectKind]string{
	EffectPlayWinSound:           "play_win_sound",
	EffectPlayFailSound:          "play_fail_sound",
	EffectPlayBattleMusic:        "play_battle_music",
	EffectDisposeStealthLighting: "dispose_stealth_lighting",
	EffectSwitchPlayerForm:       "switch_player_form",
	EffectSwitchActorMode:        "switch_actor_mode",
	EffectScaleShadows:           "scale_shadows",
	EffectSetEnemyDamage:         "set_enemy_damage",
	EffectSetAmbientColor:        "set_ambient_color",
}

func (k EffectKind) String() string {
	if n, ok := effectNames[k]; ok {
		return n
	}
	return fmt.Sprintf("effect(%d)", uint8(k))
}

// Effect is a side-effect descriptor returned by the scheduler. Factor is used
// by EffectScaleShadows and EffectSetEnemyDamage, Color by
// EffectSetAmbientColor.
type Effect struct {
	Kind   EffectKind
	Factor float64
	Color  geom.Color
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectScaleShadows, EffectSetEnemyDamage:
		return fmt.Sprintf("%s(%.2f)", e.Kind, e.Factor)
	case EffectSetAmbientColor:
		return fmt.Sprintf("%s(%.2f,%.2f,%.2f,%.2f)", e.Kind, e.Color.R, e.Color.G, e.Color.B, e.Color.A)
	}
	return e.Kind.String()
}

// Kinds lists the kinds of effects in order.
func Kinds(effects []Effect) []EffectKind {
	out := make([]EffectKind, len(effects))
	for i, e := range effects {
		out[i] = e.Kind
	}
	return out
}
