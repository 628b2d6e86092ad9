package svm

// Stack is an unbounded LIFO of words.
type Stack struct {
	ws []Word
}

func (s *Stack) Len() int {
	return len(s.ws)
}

func (s *Stack) Push(x Word) {
	s.ws = append(s.ws, x)
}

// Pop removes and returns the top of the stack.
// It returns false if the stack is empty.
func (s *Stack) Pop() (Word, bool) {
	i := len(s.ws) - 1
	if i < 0 {
		return 0, false
	}
	ret := s.ws[i]
	s.ws = s.ws[:i]
	return ret, true
}

// AppendTo appends the stack, bottom first, to out.
func (s *Stack) AppendTo(out []Word) []Word {
	return append(out, s.ws...)
}
