// Package backlog defines the work-tracking records rendered by backlogtree
// and reads them from JSON or YAML files.
//
// A backlog is a flat list of [Item] values. Hierarchy is expressed through
// the optional ParentID field: epics contain features, features contain
// stories and stories contain tasks. The type is informational only; the
// tree builder relies on ParentID alone, so any item may parent any other.
//
// # File Formats
//
// JSON input may be a bare array or an object with an "items" array:
//
//	[
//	  {"id": "epic-1", "type": "epic", "title": "Accounts", "priority": "HIGH"},
//	  {"id": "feature-1", "parentId": "epic-1", "type": "feature", "title": "CRUD", "priority": "HIGH", "effort": "M"}
//	]
//
// YAML input (.yaml or .yml) uses the same field names:
//
//	items:
//	  - id: epic-1
//	    type: epic
//	    title: Accounts
//	    priority: HIGH
//
// Reading never reorders items; input order is significant because it
// determines sibling order in the layout.
package backlog
