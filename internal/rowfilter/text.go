package rowfilter

// Text is a field value that may be absent. The zero value is absent.
type Text struct {
	value string
	valid bool
}

// Some wraps a present value.
func Some(s string) Text {
	return Text{value: s, valid: true}
}

// None returns an absent value.
func None() Text {
	return Text{}
}

// Get returns the value and whether it was present.
func (t Text) Get() (string, bool) {
	return t.value, t.valid
}

// OrEmpty returns the value, or "" when absent.
func (t Text) OrEmpty() string {
	if !t.valid {
		return ""
	}
	return t.value
}

// Row is the searchable projection of one table entry.
type Row struct {
	Display  Text
	Category Text
	Original Text
}

// RowOf builds a Row with every field present.
func RowOf(display, category, original string) Row {
	return Row{
		Display:  Some(display),
		Category: Some(category),
		Original: Some(original),
	}
}

func (r Row) fields() [3]Text {
	return [3]Text{r.Display, r.Category, r.Original}
}
