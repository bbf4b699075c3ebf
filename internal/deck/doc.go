// Package deck holds the flashcard collection model: the Card itself and
// the filter/sort/shuffle pipeline that turns the full collection into a
// study set.
//
// Cards own their content (front, back, tags) and embed the scheduling
// fields managed by package srs. Everything here operates on plain values
// and slices; persistence and orchestration live in store and engine.
package deck
