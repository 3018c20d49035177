// Package checksum fingerprints schema text.
//
// Two digests are produced. Raw is the SHA-256 of the file exactly as read
// and changes on any edit. Content is the SHA-256 after dropping comments,
// folding case outside quotes and collapsing whitespace, so it only changes when the SQL
// itself does. Comparing the two between runs tells an operator whether a
// schema edit was cosmetic.
package checksum
