// Package inspect renders module trees for humans: an indented Repr and a
// markdown Tabulate with per-module leaf counts.
package inspect
