package drill

import "github.com/ziyan/shuati/internal/bank"

// questionsMsg delivers the awaited question-file fetch.
type questionsMsg struct {
	File *bank.File
	Err  error
}
