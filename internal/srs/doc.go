// Package srs implements SM-2 spaced-repetition scheduling.
//
// The package is pure: given a card's scheduling State, a recall Quality on
// the 0-5 scale, and the review time, Scheduler.Review returns the next
// State. Nothing here reads a clock, seeds a random source, or touches
// shared data, so every function is safe for concurrent use and trivially
// reproducible in tests.
//
// The grade scale follows the classic SM-2 convention:
//
//	0 blackout   no recall at all
//	1 incorrect  wrong, but the answer was recognized once shown
//	2 familiar   wrong, yet the answer felt within reach
//	3 hard       correct with serious effort
//	4 hesitant   correct after noticeable hesitation
//	5 perfect    instant, effortless recall
//
// Grades of 3 and above count as successful and grow the review interval;
// grades below 3 reset the repetition count and bring the card back after a
// short retry delay.
package srs
