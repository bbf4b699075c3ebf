// Package achievement evaluates unlock rules against collection-wide
// stats and keeps the unlock state monotonic: once an achievement is
// unlocked it stays unlocked, and its progress freezes, no matter what
// later evaluations see.
package achievement
