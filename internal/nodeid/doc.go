// internal/nodeid/doc.go

/*
Package nodeid provides a structured, comparable representation for node
addresses within the navigation graph, based on the canonical format `path`.

The format is a dot-separated sequence of non-negative integer segments,
e.g., `0.3.7`. The first segment is always the root's slot, every following
segment is a node's local slot inside its parent's child list, and the number
of segments minus one is the node's depth.

Addresses never hold parent pointers. Ancestry and sibling tests are prefix
comparisons over the segment slice, so every lookup costs O(depth).

This package centralizes all formatting, parsing and comparison logic so the
graph, search and controller layers never touch the raw segment slice.
*/
package nodeid
