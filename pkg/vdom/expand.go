package vdom

import "context"

// Expand resolves every component node in the tree by rendering it with ctx.
// The returned tree is a private copy: element and fragment nodes are cloned,
// so views that return shared package-level nodes can be rendered by many
// requests at once and annotated (HIDs) without interfering.
func Expand(ctx context.Context, node *VNode) *VNode {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case KindComponent:
		if node.Comp == nil {
			return nil
		}
		return Expand(ctx, node.Comp.Render(ctx))

	case KindElement, KindFragment:
		clone := *node
		if node.Props != nil {
			clone.Props = make(Props, len(node.Props))
			for k, v := range node.Props {
				clone.Props[k] = v
			}
		}
		clone.HID = ""
		clone.Children = make([]*VNode, 0, len(node.Children))
		for _, child := range node.Children {
			if out := Expand(ctx, child); out != nil {
				clone.Children = append(clone.Children, out)
			}
		}
		return &clone

	default:
		clone := *node
		return &clone
	}
}

// ExpandComponent renders c with ctx and resolves its output.
func ExpandComponent(ctx context.Context, c Component) *VNode {
	if c == nil {
		return nil
	}
	return Expand(ctx, c.Render(ctx))
}

// Walk calls fn for every node of a resolved tree in document order.
// Returning false from fn skips the node's children.
func Walk(node *VNode, fn func(*VNode) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}
