package battery

import "testing"

func TestNewStartsFull(t *testing.T) {
	b := New(10)
	if !b.IsFull() {
		t.Error("new battery should start full")
	}
	if got := b.BatteryState(); got != 10 {
		t.Errorf("BatteryState() = %d, want 10", got)
	}
}

func TestDischargeSubtractsOne(t *testing.T) {
	b := New(5)
	if err := b.Discharge(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := b.BatteryState(); got != 4 {
		t.Errorf("BatteryState() = %d, want 4", got)
	}
}

func TestDischargeExhaustedReturnsError(t *testing.T) {
	b := New(1)
	if err := b.Discharge(); err != nil {
		t.Fatalf("unexpected error discharging from full: %v", err)
	}
	if err := b.Discharge(); err != ErrExhausted {
		t.Fatalf("Discharge() on empty battery = %v, want ErrExhausted", err)
	}
	if got := b.BatteryState(); got != 0 {
		t.Errorf("level should be unchanged by a failed discharge, got %d", got)
	}
}

func TestChargeClampsToCapacity(t *testing.T) {
	b := New(20)
	for i := 0; i < 20; i++ {
		_ = b.Discharge()
	}
	for i := 0; i < 100; i++ {
		b.Charge()
	}
	if got := b.BatteryState(); got != 20 {
		t.Errorf("BatteryState() after overcharging = %d, want capped at 20", got)
	}
	if !b.IsFull() {
		t.Error("expected battery to report full after clamping")
	}
}

func TestChargeRateIsOneTwentiethOfCapacity(t *testing.T) {
	b := New(20)
	_ = b.Discharge()
	b.Charge()
	if got := b.BatteryState(); got != 20 {
		t.Errorf("BatteryState() = %d, want 20 after one discharge and one charge tick at capacity/20=1", got)
	}
}

func TestIsExhausted(t *testing.T) {
	b := New(1)
	if b.IsExhausted() {
		t.Fatal("full battery should not be exhausted")
	}
	_ = b.Discharge()
	if !b.IsExhausted() {
		t.Error("battery at zero should be exhausted")
	}
}
