// Package main hosts the knarchief CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the operator side of the archive:
// validating and loading the source workbook, regenerating thumbnails,
// browsing the loaded data, and configuration scaffolding. It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
