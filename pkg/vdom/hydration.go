package vdom

import (
	"strconv"
	"strings"
)

// HIDGenerator generates sequential hydration IDs.
// A generator is owned by a single render pass and is not safe for
// concurrent use.
type HIDGenerator struct {
	counter uint32
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID (e.g., "h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.counter++
	return "h" + strconv.FormatUint(uint64(g.counter), 10)
}

// Reset resets the counter to 0.
func (g *HIDGenerator) Reset() {
	g.counter = 0
}

// AssignHIDs walks a resolved tree and assigns HIDs to interactive elements.
// An element is interactive if it has event handlers (props starting with "on").
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	Walk(node, func(n *VNode) bool {
		if n.IsInteractive() {
			n.HID = gen.Next()
		}
		return true
	})
}

// Handlers collects the event handlers of a tree whose HIDs are assigned.
// Keys have the form "hid_event", e.g. "h1_onclick".
func Handlers(node *VNode) map[string]any {
	out := make(map[string]any)
	Walk(node, func(n *VNode) bool {
		if n.HID == "" {
			return true
		}
		for key, value := range n.Props {
			if strings.HasPrefix(key, "on") {
				out[n.HID+"_"+key] = value
			}
		}
		return true
	})
	return out
}
