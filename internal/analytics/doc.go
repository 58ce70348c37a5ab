// Package analytics derives the profiling views of a cleaned dataset: grouped
// salary averages, a fixed-width salary histogram, a bounded scatter sample and
// the at-a-glance metrics summary.
//
// Every function here is a pure function of its inputs and never feeds back
// into cleaning.
package analytics
