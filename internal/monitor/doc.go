// Package monitor renders raw and conditioned triad recordings as charts
// for visual inspection of frame conversion, interpolation and filtering.
//
// Responsibilities: PNG charts via gonum/plot (one panel per measurement
// kind) and a self-contained HTML page via go-echarts.
// Key types: Series.
package monitor
