// Package statements partitions schema text into executable statements.
//
// The split is purely textual: every ';' ends a statement. Semicolons inside
// string literals, dollar-quoted bodies, or function definitions are not
// recognised and will cut a statement in two. Schema files meant for this
// tool must avoid them.
//
// Comment handling is line-based and only looks at the start of a fragment:
// leading lines whose trimmed text begins with "--" are dropped, and a
// fragment left empty is skipped. Comments after the first line of SQL are
// sent to the server untouched.
package statements
