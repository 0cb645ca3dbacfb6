// Package inspect implements the heuristic extraction stages of the recipe
// pipeline: locating and classifying license text, reading a flat
// requirements list, and pulling declared package metadata out of a build
// description file.
//
// All three stages share the same discovery strategy: walk the extracted
// source tree and take the first file whose name contains a marker
// substring. Candidates are ordered by path depth and then lexicographic
// path, which makes the historically enumeration-order-dependent pick
// deterministic and testable.
package inspect
