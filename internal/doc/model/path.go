package model

import "slices"

// SlotPath returns the path from the root component to s.
func SlotPath(s *Slot) []int {
	var path []int
	for cur := s; cur != nil; cur = cur.ParentSlot() {
		if cur.parent == nil {
			break
		}
		path = append(path, cur.indexInParent())
		c := cur.parent
		if c.parent != nil {
			path = append(path, c.indexInParent())
		}
	}
	slices.Reverse(path)
	return path
}

// ComponentPath returns the path from the root component to c. The root's
// path is empty.
func ComponentPath(c *Component) []int {
	if c.parent == nil {
		return []int{}
	}
	return append(SlotPath(c.parent), c.indexInParent())
}

// FindSlot follows a slot path (odd length) down from root.
func FindSlot(root *Component, path []int) (*Slot, error) {
	if len(path)%2 != 1 {
		return nil, &PathError{Path: slices.Clone(path), Depth: 0}
	}
	c, err := FindComponent(root, path[:len(path)-1])
	if err != nil {
		return nil, err
	}
	s := c.slots.Get(path[len(path)-1])
	if s == nil {
		return nil, &PathError{Path: slices.Clone(path), Depth: len(path) - 1}
	}
	return s, nil
}

// FindComponent follows a component path (even length) down from root.
func FindComponent(root *Component, path []int) (*Component, error) {
	if len(path)%2 != 0 {
		return nil, &PathError{Path: slices.Clone(path), Depth: 0}
	}
	c := root
	for depth := 0; depth < len(path); depth += 2 {
		s := c.slots.Get(path[depth])
		if s == nil {
			return nil, &PathError{Path: slices.Clone(path), Depth: depth}
		}
		it, ok := s.ItemAt(path[depth+1])
		if !ok || !it.IsEmbed() {
			return nil, &PathError{Path: slices.Clone(path), Depth: depth + 1}
		}
		c = it.Embedded()
	}
	return c, nil
}
