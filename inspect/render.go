// Package inspect turns protocol values into forms meant for humans and
// tooling: an interactive-client style text rendering and a JSON document
// form that survives a round trip.
package inspect

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/luma/argot/protocol"
)

// Render formats a value the way an interactive client prints replies.
// Scalars get a type marker, aggregates become numbered line blocks with
// two spaces of indent per nesting level.
func Render(v protocol.Value) string {
	return strings.Join(renderLines(v, 0), "\n")
}

func renderLines(v protocol.Value, depth int) []string {
	prefix := strings.Repeat("  ", depth)

	if v.IsNull() {
		return []string{prefix + "(nil)"}
	}

	switch v.Kind() {
	case protocol.KindSimpleString:
		return []string{prefix + v.Text()}
	case protocol.KindError:
		return []string{prefix + "(error) " + v.Text()}
	case protocol.KindInteger:
		return []string{fmt.Sprintf("%s(integer) %d", prefix, v.Int())}
	case protocol.KindBulkString:
		return []string{prefix + strconv.Quote(string(v.Bytes()))}
	case protocol.KindBoolean:
		return []string{fmt.Sprintf("%s(boolean) %t", prefix, v.Bool())}
	case protocol.KindDouble:
		return []string{prefix + "(double) " + formatDouble(v.Float())}
	case protocol.KindArray:
		return renderList(v.Items(), "array", depth)
	case protocol.KindSet:
		return renderList(v.Items(), "set", depth)
	case protocol.KindMap:
		return renderMap(v.Entries(), depth)
	default:
		return []string{prefix + v.String()}
	}
}

func renderList(items []protocol.Value, name string, depth int) []string {
	prefix := strings.Repeat("  ", depth)

	if len(items) == 0 {
		return []string{fmt.Sprintf("%s(empty %s)", prefix, name)}
	}

	lines := []string{fmt.Sprintf("%s(%s)", prefix, name)}
	for i, item := range items {
		head := fmt.Sprintf("%s%d) ", prefix, i+1)
		lines = append(lines, numberedBlock(head, item, depth+1)...)
	}

	return lines
}

func renderMap(entries []protocol.MapEntry, depth int) []string {
	prefix := strings.Repeat("  ", depth)

	if len(entries) == 0 {
		return []string{prefix + "(empty map)"}
	}

	lines := []string{prefix + "(map)"}
	for i, entry := range entries {
		key := strings.Join(renderLines(entry.Key, 0), "\n")
		head := fmt.Sprintf("%s%d# %s => ", prefix, i+1, key)
		lines = append(lines, numberedBlock(head, entry.Value, depth+1)...)
	}

	return lines
}

// numberedBlock renders v one level deeper and replaces the indent of its
// first line with the numbering head, so nested blocks line up under their
// own number.
func numberedBlock(head string, v protocol.Value, depth int) []string {
	block := renderLines(v, depth)
	block[0] = head + strings.TrimLeft(block[0], " ")

	return block
}

func formatDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
