package schedule

import (
	"fmt"
	"regexp"
	"strings"
)

// Format renders a schedule as space-separated textbook notation,
// e.g. "R1(A) R2(A) W1(A) W2(A)". Write values are not printed; Parse
// re-derives them from operation positions.
func Format(s Schedule) string {
	parts := make([]string, len(s))
	for i, op := range s {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

// ParseError is returned when schedule notation cannot be parsed.
type ParseError struct {
	Pos     int    // zero-based token position, -1 for whole-input errors
	Token   string // offending token
	Message string
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return "invalid schedule: " + e.Message
	}
	return fmt.Sprintf("invalid schedule: token %d %q: %s", e.Pos+1, e.Token, e.Message)
}

var opPattern = regexp.MustCompile(`^([RrWw])([12])\(([A-Za-z])\)$`)

// Parse reads a schedule written in textbook notation. Tokens are separated
// by whitespace or commas. Write values are stamped exactly as the generator
// does, so Parse(Format(s)) reproduces s for any generated schedule.
func Parse(input string) (Schedule, error) {
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(tokens) == 0 {
		return nil, &ParseError{Pos: -1, Message: "no operations"}
	}

	t1 := Transaction{ID: T1}
	t2 := Transaction{ID: T2}
	type ref struct {
		txn *Transaction
		idx int
	}
	refs := make([]ref, 0, len(tokens))

	for i, tok := range tokens {
		m := opPattern.FindStringSubmatch(tok)
		if m == nil {
			return nil, &ParseError{Pos: i, Token: tok, Message: "expected R<txn>(<object>) or W<txn>(<object>)"}
		}

		obj := strings.ToUpper(m[3])
		if !strings.Contains(Alphabet, obj) {
			return nil, &ParseError{Pos: i, Token: tok, Message: fmt.Sprintf("object must be one of %s", Alphabet)}
		}

		kind := Read
		if strings.EqualFold(m[1], "W") {
			kind = Write
		}

		target := &t1
		if m[2] == "2" {
			target = &t2
		}
		target.Ops = append(target.Ops, Operation{Txn: target.ID, Object: ObjectID(obj), Kind: kind})
		refs = append(refs, ref{txn: target, idx: len(target.Ops) - 1})
	}

	if t1.Len() == 0 || t2.Len() == 0 {
		return nil, &ParseError{Pos: -1, Message: "schedule must contain operations of both T1 and T2"}
	}

	StampWrites(&t1, &t2)

	s := make(Schedule, len(refs))
	for i, r := range refs {
		s[i] = r.txn.Ops[r.idx]
	}
	return s, nil
}
