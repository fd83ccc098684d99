package broadcast

import (
	"fmt"

	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/kernel"
)

// Change is the data of every parcel-carrying envelope: the full record as
// committed plus the effects the change produced.
type Change struct {
	Parcel  ParcelSnapshot  `json:"parcel"`
	Effects []EffectPayload `json:"effects,omitempty"`
}

// FullSync is the data of a SYNC envelope.
type FullSync struct {
	Parcels []ParcelSnapshot `json:"parcels"`
}

const (
	EffectKindNotify  = "notify"
	EffectKindRevenue = "revenue"
)

// EffectPayload is the wire form of an effect.
type EffectPayload struct {
	Kind      string        `json:"kind"`
	Recipient string        `json:"recipient,omitempty"`
	Title     string        `json:"title,omitempty"`
	Message   string        `json:"message,omitempty"`
	Delta     *kernel.Money `json:"delta,omitempty"`
}

func EffectsToPayload(effects []effect.Effect) []EffectPayload {
	out := make([]EffectPayload, 0, len(effects))
	for _, e := range effects {
		switch v := e.(type) {
		case effect.Notify:
			out = append(out, EffectPayload{
				Kind:      EffectKindNotify,
				Recipient: v.Recipient,
				Title:     v.Title,
				Message:   v.Message,
			})
		case effect.Revenue:
			delta := v.Delta
			out = append(out, EffectPayload{Kind: EffectKindRevenue, Delta: &delta})
		}
	}
	return out
}

// ToEffects decodes the effect list; unknown kinds are an error.
func (c Change) ToEffects() ([]effect.Effect, error) {
	out := make([]effect.Effect, 0, len(c.Effects))
	for i, p := range c.Effects {
		switch p.Kind {
		case EffectKindNotify:
			out = append(out, effect.Notify{Recipient: p.Recipient, Title: p.Title, Message: p.Message})
		case EffectKindRevenue:
			if p.Delta == nil {
				return nil, fmt.Errorf("effect %d: revenue without delta", i)
			}
			out = append(out, effect.Revenue{Delta: *p.Delta})
		default:
			return nil, fmt.Errorf("effect %d: unknown kind %q", i, p.Kind)
		}
	}
	return out, nil
}
