package playground

import "testing"

func TestStatusStoreOverwritesAndResets(t *testing.T) {
	store := NewStatusStore(map[WidgetKey]string{WidgetClick: "Waiting for action..."})
	if !store.Set(WidgetClick, "Single Click Performed!") {
		t.Fatalf("expected set to succeed")
	}
	store.Set(WidgetClick, "again")
	if got := store.Get(WidgetClick); got != "again" {
		t.Fatalf("expected latest value, got %q", got)
	}
	if store.Set("slider", "x") {
		t.Fatalf("expected unknown key to be ignored")
	}
	if len(store.All()) != len(WidgetKeys()) {
		t.Fatalf("expected one status per key")
	}
	store.Reset()
	if got := store.Get(WidgetClick); got != "Waiting for action..." {
		t.Fatalf("expected default after reset, got %q", got)
	}
}
