// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"
)

func TestToastIDsAreFresh(t *testing.T) {
	m := NewToastManager()

	a := m.AddError("first")
	b := m.AddError("second")
	if a == b {
		t.Fatalf("two toasts share ID %d", a)
	}

	m.Dismiss(a)
	c := m.AddError("third")
	if c == a {
		t.Errorf("ID %d reused after dismissal", a)
	}
}

func TestToastOrder(t *testing.T) {
	m := NewToastManager()
	m.AddError("one")
	m.AddSuccess("two")
	m.AddInfo("three")

	toasts := m.Toasts()
	if len(toasts) != 3 {
		t.Fatalf("len(Toasts()) = %d, want 3", len(toasts))
	}
	want := []string{"one", "two", "three"}
	for i, toast := range toasts {
		if toast.Message != want[i] {
			t.Errorf("toasts[%d].Message = %q, want %q", i, toast.Message, want[i])
		}
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	m := NewToastManager()
	id := m.AddError("oops")
	keep := m.AddError("stay")

	m.Dismiss(id)
	m.Dismiss(id) // second dismissal of the same ID is a no-op
	m.Dismiss(9999)

	toasts := m.Toasts()
	if len(toasts) != 1 || toasts[0].ID != keep {
		t.Errorf("Toasts() = %+v, want only ID %d", toasts, keep)
	}
}

func TestDismissOrderIsCommutative(t *testing.T) {
	run := func(order []int) int {
		m := NewToastManager()
		a := m.AddError("a")
		b := m.AddError("b")
		ids := map[int]int{0: a, 1: b}
		for _, idx := range order {
			m.Dismiss(ids[idx])
		}
		return len(m.Toasts())
	}

	if got := run([]int{0, 1}); got != 0 {
		t.Errorf("dismiss a,b left %d toasts", got)
	}
	if got := run([]int{1, 0}); got != 0 {
		t.Errorf("dismiss b,a left %d toasts", got)
	}
}

func TestExpireRemovesOnlyOldToasts(t *testing.T) {
	m := NewToastManager()
	old := m.AddError("old")
	fresh := m.AddError("fresh")

	// Backdate the first toast past its lifetime.
	m.mu.Lock()
	for i := range m.toasts {
		if m.toasts[i].ID == old {
			m.toasts[i].CreatedAt = time.Now().Add(-ToastDuration - time.Second)
		}
	}
	m.mu.Unlock()

	if !m.Expire(time.Now()) {
		t.Error("Expire() = false, want true with an expired toast present")
	}
	toasts := m.Toasts()
	if len(toasts) != 1 || toasts[0].ID != fresh {
		t.Errorf("Toasts() after expiry = %+v, want only ID %d", toasts, fresh)
	}

	if m.Expire(time.Now()) {
		t.Error("second Expire() = true, want false with nothing expired")
	}
}

func TestExpireThenDismissIsHarmless(t *testing.T) {
	m := NewToastManager()
	id := m.AddError("going")

	m.mu.Lock()
	m.toasts[0].CreatedAt = time.Now().Add(-ToastDuration - time.Second)
	m.mu.Unlock()

	m.Expire(time.Now())
	m.Dismiss(id) // manual dismissal after auto-expiry

	if m.HasToasts() {
		t.Error("HasToasts() = true, want empty manager")
	}
}

func TestRenderToastStackEmpty(t *testing.T) {
	if got := RenderToastStack(nil, 80, 24); got != "" {
		t.Errorf("RenderToastStack(nil) = %q, want empty", got)
	}
}
