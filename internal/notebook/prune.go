// Package notebook post-processes serialized notebook documents.
//
// Rendered documentation tools prefer a notebook's live widget-view
// output over its static text/html sibling, which breaks offline
// viewing — the static snapshot is exactly what should be shown there.
// Prune removes the widget-view representation wherever a snapshot
// sibling exists, leaving everything else untouched.
package notebook

import "strings"

// WidgetViewMIME is the MIME key of a live widget view inside a
// notebook output's data mapping.
const WidgetViewMIME = "application/vnd.jupyter.widget-view+json"

// snapshotMarker identifies a text/html output produced by the
// snapshot renderer. Matches the class attribute emitted by
// internal/snapshot for class names with the "snapshot-" prefix.
const snapshotMarker = "<div class='snapshot-"

// Prune walks a notebook document (as decoded from JSON) and removes
// every widget-view entry whose data mapping also carries a snapshot
// text/html entry. The document is modified in place; no new nodes are
// created. Missing or unexpectedly-typed keys mean there is nothing to
// prune at that level, never an error. Returns the number of keys
// removed.
func Prune(doc map[string]any) int {
	removed := 0
	var toRemove []string
	for key, val := range doc {
		switch {
		case key == "cells":
			if cells, ok := val.([]any); ok {
				for _, cell := range cells {
					if m, ok := cell.(map[string]any); ok {
						removed += Prune(m)
					}
				}
			}
		case key == "outputs":
			if outputs, ok := val.([]any); ok {
				for _, out := range outputs {
					m, ok := out.(map[string]any)
					if !ok {
						continue
					}
					if data, ok := m["data"].(map[string]any); ok && len(data) > 0 {
						removed += Prune(data)
					}
				}
			}
		case key == WidgetViewMIME:
			if hasSnapshotHTML(doc) {
				toRemove = append(toRemove, key)
			}
		}
	}
	// Removal is deferred so the map is not mutated mid-iteration.
	for _, key := range toRemove {
		delete(doc, key)
		removed++
	}
	return removed
}

// hasSnapshotHTML reports whether the mapping's text/html entry exists,
// is non-empty, and its first element carries the snapshot marker.
func hasSnapshotHTML(data map[string]any) bool {
	switch html := data["text/html"].(type) {
	case []any:
		if len(html) == 0 {
			return false
		}
		first, ok := html[0].(string)
		return ok && strings.Contains(first, snapshotMarker)
	case []string:
		return len(html) > 0 && strings.Contains(html[0], snapshotMarker)
	default:
		return false
	}
}
