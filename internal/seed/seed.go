// Package seed holds the starter deck installed by init --sample so a
// fresh collection has something to study.
package seed

// Entry is one starter card.
type Entry struct {
	Front string
	Back  string
	Tags  []string
}

// Deck returns the starter deck.
func Deck() []Entry {
	return []Entry{
		{
			Front: "What is spaced repetition?",
			Back:  "Reviewing material at growing intervals, timed to just before you would forget it.",
			Tags:  []string{"meta", "learning"},
		},
		{
			Front: "On the 0-5 recall scale, what separates a pass from a fail?",
			Back:  "3 and above passes; 0-2 resets the card.",
			Tags:  []string{"meta", "learning"},
		},
		{
			Front: "What does := do in Go?",
			Back:  "Declares a variable and assigns it in one step, inferring the type.",
			Tags:  []string{"go", "syntax"},
		},
		{
			Front: "Zero value of a slice",
			Back:  "nil. Appending to a nil slice allocates a fresh backing array.",
			Tags:  []string{"go", "basics"},
		},
		{
			Front: "What does defer do?",
			Back:  "Schedules a call to run when the surrounding function returns, last deferred first.",
			Tags:  []string{"go", "basics"},
		},
		{
			Front: "How do you signal \"no result\" from a map lookup?",
			Back:  "The comma-ok form: v, ok := m[k]; ok is false when the key is absent.",
			Tags:  []string{"go", "basics"},
		},
		{
			Front: "What does a sync.Mutex protect against?",
			Back:  "Concurrent access to shared state; Lock and Unlock bracket the critical section.",
			Tags:  []string{"go", "concurrency"},
		},
		{
			Front: "Unbuffered channel send: when does it return?",
			Back:  "Only once a receiver takes the value; send and receive rendezvous.",
			Tags:  []string{"go", "concurrency"},
		},
		{
			Front: "What does context.Context carry?",
			Back:  "Cancellation, deadlines, and request-scoped values across API boundaries.",
			Tags:  []string{"go", "concurrency"},
		},
		{
			Front: "errors.Is vs errors.As",
			Back:  "Is walks the chain comparing against a sentinel; As finds the first error of a target type.",
			Tags:  []string{"go", "errors"},
		},
		{
			Front: "What makes a type satisfy an interface in Go?",
			Back:  "Having the method set. Satisfaction is implicit; no declaration needed.",
			Tags:  []string{"go", "types"},
		},
		{
			Front: "Why return structs but accept interfaces?",
			Back:  "Callers get concrete capability; functions stay usable with any implementation.",
			Tags:  []string{"go", "design"},
		},
	}
}
