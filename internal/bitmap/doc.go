// Package bitmap provides a compact set of dense non-negative ids.
//
// IDSet wraps a 32-bit Roaring bitmap. The observation table uses it to
// track which content ids are held by short rows, so a closedness test is a
// single membership check per long row.
package bitmap
