package broadcast_test

import (
	"encoding/json"
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/broadcast"
	"parceltrack/internal/core/domain/model/effect"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func sampleParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	tn, err := kernel.TrackingNumberFromString("PCL1234567890")
	require.NoError(t, err)
	p, err := parcel.NewParcel(parcel.NewParcelParams{
		ID:                  kernel.NewUUID(),
		TrackingNumber:      tn,
		Sender:              parcel.Party{Name: "Tendai", Email: "tendai@example.com"},
		Receiver:            parcel.Party{Name: "Rudo", Email: "rudo@example.com"},
		SenderBranchID:      "harare",
		DestinationBranchID: "mutare",
		PaymentMethod:       parcel.PaymentMethodCashOnDelivery,
		Amount:              kernel.MustMoney("30"),
		FloatAmount:         kernel.MustMoney("10"),
		Actor:               parcel.Actor{ID: "op-1", BranchID: "harare"},
		CreatedAt:           at,
	})
	require.NoError(t, err)
	_, err = p.Transition(parcel.StatusInTransit, parcel.Actor{ID: "op-1"}, "left depot", at.Add(time.Minute))
	require.NoError(t, err)
	return p
}

func TestNewEnvelope(t *testing.T) {
	t.Run("should stamp id and millisecond timestamp", func(t *testing.T) {
		env, err := broadcast.NewEnvelope(broadcast.TypeParcelUpdated, map[string]int{"x": 1}, at)

		require.NoError(t, err)
		assert.NotEmpty(t, env.UpdateID)
		assert.Equal(t, at.UnixMilli(), env.Timestamp)
		assert.Equal(t, at, env.Time())
		assert.JSONEq(t, `{"x":1}`, string(env.Data))
	})

	t.Run("should reject unknown types", func(t *testing.T) {
		_, err := broadcast.NewEnvelope("PARCEL_LOST", struct{}{}, at)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should use the wire field names", func(t *testing.T) {
		env, err := broadcast.NewEnvelopeWithID("u-1", broadcast.TypeSync, broadcast.FullSync{}, at)
		require.NoError(t, err)

		raw, err := json.Marshal(env)

		require.NoError(t, err)
		assert.JSONEq(t,
			`{"updateId":"u-1","type":"SYNC","data":{"parcels":null},"timestamp":`+jsonInt(at.UnixMilli())+`}`,
			string(raw))
	})
}

func TestEnvelope_Validate(t *testing.T) {
	valid := broadcast.Envelope{UpdateID: "u", Type: broadcast.TypeStatusUpdated, Data: json.RawMessage(`{}`), Timestamp: 1}
	require.NoError(t, valid.Validate())

	missingID := valid
	missingID.UpdateID = " "
	assert.ErrorIs(t, missingID.Validate(), errs.ErrValueIsRequired)

	zeroTime := valid
	zeroTime.Timestamp = 0
	assert.ErrorIs(t, zeroTime.Validate(), errs.ErrValueIsOutOfRange)

	noData := valid
	noData.Data = nil
	assert.ErrorIs(t, noData.Validate(), errs.ErrValueIsRequired)
}

func TestAfter(t *testing.T) {
	envs := []broadcast.Envelope{
		{UpdateID: "c", Timestamp: 30},
		{UpdateID: "a", Timestamp: 10},
		{UpdateID: "e", Timestamp: 20},
		{UpdateID: "d", Timestamp: 20},
		{UpdateID: "b", Timestamp: 5},
	}

	got := broadcast.After(envs, 10)

	ids := make([]string, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.UpdateID)
	}
	assert.Equal(t, []string{"d", "e", "c"}, ids)
	assert.Equal(t, "c", envs[0].UpdateID, "input must not be reordered")
	assert.Empty(t, broadcast.After(envs, 30))
}

func TestChange_RoundTrip(t *testing.T) {
	p := sampleParcel(t)
	effects := []effect.Effect{
		effect.Notify{Recipient: "rudo@example.com", Title: "Parcel In Transit", Message: "on its way"},
		effect.Revenue{Delta: kernel.MustMoney("30")},
	}
	env, err := broadcast.NewEnvelope(broadcast.TypeStatusUpdated, broadcast.Change{
		Parcel:  broadcast.FromParcel(p),
		Effects: broadcast.EffectsToPayload(effects),
	}, at)
	require.NoError(t, err)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	var decoded broadcast.Envelope
	require.NoError(t, json.Unmarshal(raw, &decoded))

	change, err := decoded.DecodeChange()
	require.NoError(t, err)
	assert.Equal(t, "in_transit", change.Parcel.Status)
	assert.Equal(t, "40.00", change.Parcel.TotalAmount.String())

	restored, err := change.Parcel.ToParcel()
	require.NoError(t, err)
	assert.True(t, restored.IsEqual(p))
	assert.Equal(t, parcel.StatusInTransit, restored.Status())
	assert.Len(t, restored.StatusUpdates(), 2)
	assert.Equal(t, "left depot", restored.LastStatusUpdate().Note())
	assert.Equal(t, p.Version(), restored.Version())

	decodedEffects, err := change.ToEffects()
	require.NoError(t, err)
	assert.Equal(t, effect.Notifications(effects), effect.Notifications(decodedEffects))
	assert.Equal(t, 1, effect.CountRevenue(decodedEffects))
	assert.Equal(t, "30.00", effect.RevenueTotal(decodedEffects).String())
}

func TestEnvelope_DecodeErrors(t *testing.T) {
	syncEnv := broadcast.Envelope{UpdateID: "s", Type: broadcast.TypeSync, Data: json.RawMessage(`{"parcels":[]}`), Timestamp: 1}
	_, err := syncEnv.DecodeChange()
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	full, err := syncEnv.DecodeFullSync()
	require.NoError(t, err)
	assert.Empty(t, full.Parcels)

	noParcel := broadcast.Envelope{UpdateID: "p", Type: broadcast.TypeParcelUpdated, Data: json.RawMessage(`{}`), Timestamp: 1}
	_, err = noParcel.DecodeChange()
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	badKind := broadcast.Change{Effects: []broadcast.EffectPayload{{Kind: "email"}}}
	_, err = badKind.ToEffects()
	assert.Error(t, err)
}

func jsonInt(v int64) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}
