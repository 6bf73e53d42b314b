package limits

import "fmt"

// Severity distinguishes fatal validation problems from advisory ones.
// Only Error severity causes Reader.Project/Writer.Finalize to fail; Warning
// messages are informational.
type Severity uint8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}

	return "error"
}

// Message is a single validation finding, accumulated by a Validator.
type Message struct {
	Severity Severity
	// Path is a human-readable pointer into the index tree, e.g.
	// "elements[2].attributes[0].data.category.sub_attributes[1]".
	Path string
	Text string
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s: %s", m.Severity, m.Path, m.Text)
}

// Validator accumulates Messages up to Limits.MaxMessages, continuing to
// collect after the first problem instead of aborting. Once the cap is
// reached, further messages are silently dropped but Dropped() still counts
// them so callers can report "N more errors were suppressed".
type Validator struct {
	limit    int // -1 means unlimited
	messages []Message
	dropped  int
	errors   int
	depth    int
}

// NewValidator creates a Validator bounded by lim.MaxMessages.
func NewValidator(lim Limits) *Validator {
	return &Validator{limit: lim.messagesLimit()}
}

// Errorf records a SeverityError message at path.
func (v *Validator) Errorf(path, format string, args ...any) {
	v.add(Message{Severity: SeverityError, Path: path, Text: fmt.Sprintf(format, args...)})
	v.errors++
}

// Warnf records a SeverityWarning message at path.
func (v *Validator) Warnf(path, format string, args ...any) {
	v.add(Message{Severity: SeverityWarning, Path: path, Text: fmt.Sprintf(format, args...)})
}

func (v *Validator) add(m Message) {
	if v.limit >= 0 && len(v.messages) >= v.limit {
		v.dropped++
		return
	}

	v.messages = append(v.messages, m)
}

// Messages returns every retained message in the order recorded.
func (v *Validator) Messages() []Message {
	return v.messages
}

// Dropped returns the number of messages that were suppressed once the cap
// was reached.
func (v *Validator) Dropped() int {
	return v.dropped
}

// HasErrors reports whether any SeverityError message was recorded, even if
// it was subsequently dropped by the cap (the cap counts warnings and errors
// alike, so once MaxMessages messages are retained a later error is dropped
// from Messages but still counted here).
func (v *Validator) HasErrors() bool {
	return v.errors > 0
}

// EnterRecursion increments the recursion-depth counter used to cap
// Composite nesting, returning false if depth would exceed max.
func (v *Validator) EnterRecursion(max int) bool {
	v.depth++
	return v.depth <= max
}

// ExitRecursion decrements the recursion-depth counter.
func (v *Validator) ExitRecursion() {
	v.depth--
}

// MaxCompositeDepth is the documented cap on nested Composite elements.
const MaxCompositeDepth = 8
