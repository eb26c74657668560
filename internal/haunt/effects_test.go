package haunt

import "testing"

func TestEffectRefreshNotStack(t *testing.T) {
	m := NewEffectManager()

	m.Apply(EffectSpeed, 10, 1.5)
	m.Tick(3) // 7s remaining
	m.Apply(EffectSpeed, 5, 1.5)

	if got := m.Remaining(EffectSpeed); got != 5 {
		t.Errorf("Remaining after re-apply = %f, expected 5 (refresh, not stack)", got)
	}
}

func TestEffectExpiry(t *testing.T) {
	m := NewEffectManager()
	m.Apply(EffectMagnet, 2, 1)
	m.Apply(EffectRepel, 5, 1)

	expired := m.Tick(3)
	if len(expired) != 1 || expired[0] != EffectMagnet {
		t.Errorf("expired = %v, expected [Magnet]", expired)
	}
	if m.Active(EffectMagnet) {
		t.Error("Magnet should be gone after expiry")
	}
	if !m.Active(EffectRepel) {
		t.Error("Repel should still be active")
	}
	if got := m.Remaining(EffectRepel); got != 2 {
		t.Errorf("Repel remaining = %f, expected 2", got)
	}
}

func TestEffectMagnitudeOverwrite(t *testing.T) {
	m := NewEffectManager()
	m.Apply(EffectSpeed, 10, 1.5)
	m.Apply(EffectSpeed, 10, 2.0)

	if got := m.SpeedFactor(); got != 2.0 {
		t.Errorf("SpeedFactor = %f, expected overwritten 2.0", got)
	}
}

func TestSpeedFactorsCombineMultiplicatively(t *testing.T) {
	m := NewEffectManager()
	m.Apply(EffectSpeed, 10, 1.5)
	m.Apply(EffectCursed, 10, 0.5)

	if got := m.SpeedFactor(); got != 0.75 {
		t.Errorf("SpeedFactor = %f, expected 1.5*0.5 = 0.75", got)
	}

	m.Clear()
	if got := m.SpeedFactor(); got != 1.0 {
		t.Errorf("SpeedFactor with no effects = %f, expected 1.0", got)
	}
}

func TestEffectListOrderIsStable(t *testing.T) {
	m := NewEffectManager()
	m.Apply(EffectZombie, 10, 1)
	m.Apply(EffectMagnet, 10, 1)
	m.Apply(EffectSpeed, 10, 1.5)

	list := m.List()
	want := []EffectKind{EffectZombie, EffectMagnet, EffectSpeed}
	if len(list) != len(want) {
		t.Fatalf("List len = %d, expected %d", len(list), len(want))
	}
	for i, e := range list {
		if e.Kind != want[i] {
			t.Errorf("List[%d] = %v, expected %v", i, e.Kind, want[i])
		}
	}
}
