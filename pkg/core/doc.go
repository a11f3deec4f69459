// Package core provides the component runtime: node identity, the component
// contract, and the five passes that run every frame.
//
// A UI is a tree of components. Each component owns private state which the
// runtime keeps in an [Arena] across frames. Every frame the tree is
// re-declared by the View pass and reconciled against the arena by
// identifier, so state survives as long as a component keeps declaring the
// same child under the same [Iid].
//
// # Defining Components
//
// A component is a type implementing [Component] for its props P, state S,
// message M and event E types. Embed [Base] for the defaults and register the
// component once with [Define]:
//
//	type counter struct {
//	    core.Base[CounterProps, int, CounterMsg, core.None]
//	}
//
//	func (counter) Init(CounterProps) int { return 0 }
//
//	func (counter) Update(msg CounterMsg, state core.Mut[int], ctx *core.UpdateContext[core.None]) {
//	    *state.Mutate()++
//	}
//
//	var Counter = core.Define[CounterProps, int, CounterMsg, core.None]("Counter", counter{})
//
// # Declaring Children
//
// Inside View, children are declared with [Set] and their events mapped into
// the declaring component's messages with [MapEvents]:
//
//	button := core.Set(ctx, core.ID("add"), widgets.TouchArea, widgets.TouchAreaProps{})
//	core.MapEvents(ctx, button, func(e widgets.TouchAreaEvent) (CounterMsg, bool) {
//	    return CounterMsg{}, e.Kind == widgets.TouchActivated
//	})
//
// [ViewContext.Add] attaches further declarations to a child instead of the
// running component, which is how layout containers receive their content.
//
// # Passes
//
// [RunView] reconciles, [RunUpdate] delivers queued messages, [RunLayout]
// sizes and positions, [RunInput] routes platform events bottom-up and
// [RunRender] walks the tree pre-order pushing primitives. The engine package
// sequences them into frames.
package core
