// Package sensor describes the lab sensor table and parses it into numeric rows.
package sensor

import "fmt"

// Attribute is one named sensor measurement; its value is the table column index.
type Attribute int

// Columns of a sensor module row, in file order.
const (
	Temp1 Attribute = iota
	Humid1
	Temp2
	Humid2
	CO2
	PM1
	PM25
	PM10
	TVOC

	NumAttributes
)

var attributeLabels = [NumAttributes]string{
	Temp1:  "Temp 1",
	Humid1: "Humid 1",
	Temp2:  "Temp 2",
	Humid2: "Humid 2",
	CO2:    "Co2",
	PM1:    "pm 1",
	PM25:   "pm 2.5",
	PM10:   "pm 10",
	TVOC:   "tvoc",
}

// String returns the label shown in the settings panel.
func (a Attribute) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attributeLabels[a]
}

// Valid reports whether a is one of the fixed columns.
func (a Attribute) Valid() bool {
	return a >= 0 && a < NumAttributes
}

// Attributes returns every attribute in column order.
func Attributes() []Attribute {
	out := make([]Attribute, NumAttributes)
	for i := range out {
		out[i] = Attribute(i)
	}
	return out
}

// Labels returns the panel labels in column order.
func Labels() []string {
	out := make([]string, NumAttributes)
	copy(out, attributeLabels[:])
	return out
}

// ParseAttribute maps a panel label back to its attribute.
func ParseAttribute(label string) (Attribute, error) {
	for i, l := range attributeLabels {
		if l == label {
			return Attribute(i), nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", label)
}
