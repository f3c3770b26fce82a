// Package script runs sequences of document edits and history operations
// against an app.App.
//
// Scripts are YAML documents:
//
//	name: demo
//	lines: [alpha, beta]
//	steps:
//	  - append: gamma
//	  - set: {line: 0, text: ALPHA}
//	  - delete: 1
//	  - undo: 1
//	  - redo: 1
//	  - scope:
//	      steps:
//	        - append: scratch
//	  - show: true
//
// A step may also be written as a single line in the REPL syntax accepted
// by ParseLine, e.g. "- undo 2" or "- append hello world".
package script
