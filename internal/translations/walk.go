package translations

// lookup finds the value at path. A missing segment yields ok=false; an
// intermediate leaf yields ErrNotAnObject.
func lookup(root *Object, path KeyPath) (any, bool, error) {
	cur := root
	for i, seg := range path.Parent() {
		v, ok := cur.Get(seg)
		if !ok {
			return nil, false, nil
		}
		child, isObj := v.(*Object)
		if !isObj {
			return nil, false, &KeyError{Key: path[:i+1].String(), Err: ErrNotAnObject}
		}
		cur = child
	}
	v, ok := cur.Get(path.Leaf())
	return v, ok, nil
}

// checkAssign verifies that a leaf can be assigned at path without
// modifying anything.
func checkAssign(root *Object, path KeyPath) error {
	v, ok, err := lookup(root, path)
	if err != nil {
		return err
	}
	if ok {
		if _, isObj := v.(*Object); isObj {
			return &KeyError{Key: path.String(), Err: ErrNotALeaf}
		}
	}
	return nil
}

// assign sets value at path, creating intermediate objects as needed.
// Callers run checkAssign first.
func assign(root *Object, path KeyPath, value any) {
	cur := root
	for _, seg := range path.Parent() {
		v, ok := cur.Get(seg)
		child, isObj := v.(*Object)
		if !ok || !isObj {
			child = NewObject()
			cur.Set(seg, child)
		}
		cur = child
	}
	cur.Set(path.Leaf(), value)
}

// remove deletes path from root and prunes every parent left empty.
// It reports whether anything was removed.
func remove(root *Object, path KeyPath) bool {
	parents := make([]*Object, 0, len(path))
	cur := root
	for _, seg := range path.Parent() {
		v, ok := cur.Get(seg)
		child, isObj := v.(*Object)
		if !ok || !isObj {
			return false
		}
		parents = append(parents, cur)
		cur = child
	}
	if !cur.Delete(path.Leaf()) {
		return false
	}

	// Prune empty parents, innermost first. The root is never removed.
	for i := len(parents) - 1; i >= 0 && cur.Len() == 0; i-- {
		parents[i].Delete(path[i])
		cur = parents[i]
	}
	return true
}
