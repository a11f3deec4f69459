package core

import (
	"slices"
	"testing"

	"github.com/go-coat/coat/pkg/errors"
)

func TestRunUpdate_FreshRoot(t *testing.T) {
	a := NewArena()
	root := a.FreshID()
	if got := RunUpdate(a, root); !got.Mutated {
		t.Errorf("expected a fresh root to request a View, got %+v", got)
	}
}

func TestRunUpdate_PostOrderWithBubbling(t *testing.T) {
	a := NewArena()
	root := a.FreshID()
	var order []string
	record := func(name string) func(string, Mut[probeState], *UpdateContext[string]) {
		return func(msg string, _ Mut[probeState], ctx *UpdateContext[string]) {
			order = append(order, name+":"+msg)
			if msg == "bubble" {
				if !Bubble(ctx, groupKind, "from "+name) {
					t.Errorf("bubble from %s was not delivered", name)
				}
			}
		}
	}
	RunView(a, root, groupKind, probeProps{
		onUpdate: record("root"),
		view: func(ctx *ViewContext[string]) {
			mid := Set(ctx, ID("mid"), probeKind, probeProps{onUpdate: record("mid")})
			ctx.Add(mid.ID, func() {
				Set(ctx, ID("leaf"), probeKind, probeProps{onUpdate: record("leaf")})
			})
		},
	})
	mid := childNamed(t, a, root, "mid")
	leaf := childNamed(t, a, mid, "leaf")
	enqueue(a, root, "own")
	enqueue(a, leaf, "bubble")

	res := RunUpdate(a, root)
	want := []string{"leaf:bubble", "root:own", "root:from leaf"}
	if !slices.Equal(order, want) {
		t.Errorf("update order = %v, want %v", order, want)
	}
	if res.Pending {
		t.Error("expected the bubbled message to be handled in the same pass")
	}
}

func TestRunUpdate_SendToVisitedNodeStaysPending(t *testing.T) {
	a := NewArena()
	root := a.FreshID()
	var handled []string
	var first Mailbox[string]
	RunView(a, root, probeKind, probeProps{view: func(ctx *ViewContext[string]) {
		f := Set(ctx, ID("first"), probeKind, probeProps{
			onUpdate: func(msg string, _ Mut[probeState], _ *UpdateContext[string]) {
				handled = append(handled, msg)
			},
		})
		first = Mailbox[string]{id: f.ID}
		Set(ctx, ID("second"), probeKind, probeProps{
			onUpdate: func(msg string, _ Mut[probeState], ctx *UpdateContext[string]) {
				Send(ctx, first, "ping")
			},
		})
	}})
	second := childNamed(t, a, root, "second")
	enqueue(a, second, "go")

	res := RunUpdate(a, root)
	if !res.Pending || len(handled) != 0 {
		t.Fatalf("expected the message to wait for the next pass, got %+v handled=%v", res, handled)
	}
	res = RunUpdate(a, root)
	if res.Pending || !slices.Equal(handled, []string{"ping"}) {
		t.Errorf("expected delivery on the second pass, got %+v handled=%v", res, handled)
	}
}

func TestRunUpdate_MutationTracking(t *testing.T) {
	tests := []struct {
		name    string
		handler func(string, Mut[probeState], *UpdateContext[string])
		want    bool
	}{
		{
			name: "read only",
			handler: func(_ string, s Mut[probeState], _ *UpdateContext[string]) {
				_ = s.Get().count
			},
			want: false,
		},
		{
			name: "mutate",
			handler: func(_ string, s Mut[probeState], _ *UpdateContext[string]) {
				s.Mutate().count++
			},
			want: true,
		},
		{
			name: "same value write still counts",
			handler: func(_ string, s Mut[probeState], _ *UpdateContext[string]) {
				s.Set(s.Get())
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArena()
			root := a.FreshID()
			RunView(a, root, probeKind, probeProps{onUpdate: tt.handler})
			enqueue(a, root, "msg")
			if got := RunUpdate(a, root).Mutated; got != tt.want {
				t.Errorf("Mutated = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunUpdate_EmitReachesParent(t *testing.T) {
	a := NewArena()
	root := a.FreshID()
	props := probeProps{view: func(ctx *ViewContext[string]) {
		child := Set(ctx, ID("child"), probeKind, probeProps{
			onUpdate: func(msg string, _ Mut[probeState], ctx *UpdateContext[string]) {
				ctx.Emit(msg + "!")
			},
		})
		MapEvents(ctx, child, func(e string) (string, bool) { return e, true })
	}}
	RunView(a, root, probeKind, props)
	enqueue(a, childNamed(t, a, root, "child"), "hey")

	res := RunUpdate(a, root)
	if !res.Emitted || res.Mutated {
		t.Fatalf("expected Emitted without Mutated, got %+v", res)
	}
	if !res.NeedsView() {
		t.Error("expected an emitted event to require a View")
	}
	if delivered := RunView(a, root, probeKind, props); delivered != 1 {
		t.Errorf("expected 1 delivered message, got %d", delivered)
	}
	if !a.HasPendingMessages(root) {
		t.Error("expected the mapped message to be pending")
	}
}

func TestBubble_NoAncestor(t *testing.T) {
	rec := recordErrors(t)
	a := NewArena()
	root := a.FreshID()
	RunView(a, root, probeKind, probeProps{onUpdate: func(msg string, _ Mut[probeState], ctx *UpdateContext[string]) {
		if Bubble(ctx, groupKind, msg) {
			t.Error("expected Bubble to fail without a Group ancestor")
		}
	}})
	enqueue(a, root, "lost")
	RunUpdate(a, root)
	if rec.count(errors.KindDelivery) != 1 {
		t.Error("expected a delivery warning")
	}
}

func TestFocusHandOff(t *testing.T) {
	for _, order := range [][]string{{"a", "b"}, {"b", "a"}} {
		t.Run(order[0]+order[1], func(t *testing.T) {
			a := NewArena()
			root := a.FreshID()
			handlers := map[string]func(string, Mut[probeState], *UpdateContext[string]){
				"a": func(_ string, _ Mut[probeState], ctx *UpdateContext[string]) { ctx.LoseFocus() },
				"b": func(_ string, _ Mut[probeState], ctx *UpdateContext[string]) { ctx.AcquireFocus() },
			}
			RunView(a, root, probeKind, probeProps{view: func(ctx *ViewContext[string]) {
				for _, name := range order {
					Set(ctx, ID(name), probeKind, probeProps{onUpdate: handlers[name]})
				}
			}})
			areaA := childNamed(t, a, root, "a")
			areaB := childNamed(t, a, root, "b")
			a.focused = areaA
			enqueue(a, areaA, "unfocus")
			enqueue(a, areaB, "focus")

			RunUpdate(a, root)
			if got, ok := a.Focused(); !ok || got != areaB {
				t.Errorf("expected b to hold focus, got %v (%v)", got, ok)
			}
		})
	}
}
