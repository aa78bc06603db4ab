// Package viz renders generator output for the terminal.
//
//   - [ReportTable], [SweepTable], [RunsTable]: lipgloss tables of battery
//     results
//   - [PlotTrajectory], [PlotRunningRatio], [PlotSpectrum]: asciigraph line
//     charts
//   - [Canvas]: Braille-based pixel canvas; [BitRaster] lays a bit stream
//     out on it
//   - Theme selection with 4 built-in color schemes
package viz
