package theme

// Merge deep-merges overlays onto base and returns a new tree. Nested maps
// merge key by key; every other value, arrays included, replaces the value
// underneath it. Keys missing from an overlay keep their base value. Inputs
// are never modified.
func Merge(base Tree, overlays ...Tree) Tree {
	out := cloneTree(base)
	for _, overlay := range overlays {
		mergeInto(out, overlay)
	}
	return out
}

func mergeInto(dst, src Tree) {
	for key, value := range src {
		incoming, isTree := asTree(value)
		if !isTree {
			dst[key] = cloneValue(value)
			continue
		}
		existing, ok := asTree(dst[key])
		if !ok {
			dst[key] = cloneTree(incoming)
			continue
		}
		mergeInto(existing, incoming)
		dst[key] = existing
	}
}

func cloneTree(in Tree) Tree {
	out := make(Tree, len(in))
	for key, value := range in {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	if tree, ok := asTree(value); ok {
		return cloneTree(tree)
	}
	if list, ok := value.([]any); ok {
		out := make([]any, len(list))
		for i, item := range list {
			out[i] = cloneValue(item)
		}
		return out
	}
	return value
}

// asTree accepts the map shapes produced by encoding/json and yaml.v3.
func asTree(value any) (Tree, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		out := make(Tree, len(v))
		for key, item := range v {
			if s, ok := key.(string); ok {
				out[s] = item
			}
		}
		return out, true
	default:
		return nil, false
	}
}
