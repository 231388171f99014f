package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"prngstat/prng"
)

// Report is the result of one Analyze call.
type Report struct {
	Kind    prng.Kind
	Count   uint64 // scalar observations taken
	Minimum int64
	Maximum int64
	Mean    float64
	Period  uint64

	// BitFrequencies[i] is the number of observations with bit i set. Its
	// length is the bit length of Maximum.
	BitFrequencies []uint64

	// Exhausted is true when the generator's cycle closed before the
	// sample bound was reached.
	Exhausted bool
}

// Empty reports whether no observations were taken, in which case Minimum
// and Maximum are meaningless.
func (r *Report) Empty() bool {
	return r.Count == 0
}

// BitFrequencyString renders the bit table as "[a, b, c]".
func (r *Report) BitFrequencyString() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range r.BitFrequencies {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(f, 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// String renders the report as the classic five-line summary.
func (r *Report) String() string {
	minimum, maximum := "None", "None"
	if !r.Empty() {
		minimum = strconv.FormatInt(r.Minimum, 10)
		maximum = strconv.FormatInt(r.Maximum, 10)
	}

	return fmt.Sprintf("MAX:  %s\nMIN:  %s\nAverage:  %s\nPeriod:  %d\nBit Frequency:  %s\n",
		maximum, minimum, r.meanString(), r.Period, r.BitFrequencyString())
}

// meanString prints the mean in plain decimal notation; a non-empty report
// always shows a fractional part.
func (r *Report) meanString() string {
	s := strconv.FormatFloat(r.Mean, 'f', -1, 64)
	if !r.Empty() && !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Headers names the columns written by Row, for a table with bits bit
// columns.
func Headers(bits int) string {
	cols := []string{"kind", "count", "min", "max", "mean", "period", "exhausted"}
	for i := 0; i < bits; i++ {
		cols = append(cols, "bit"+strconv.Itoa(i))
	}
	return strings.Join(cols, ", ")
}

// Row renders the report as one comma-separated line matching Headers.
func (r *Report) Row() string {
	cols := []string{
		r.Kind.String(),
		strconv.FormatUint(r.Count, 10),
		strconv.FormatInt(r.Minimum, 10),
		strconv.FormatInt(r.Maximum, 10),
		strconv.FormatFloat(r.Mean, 'f', 6, 64),
		strconv.FormatUint(r.Period, 10),
		strconv.FormatBool(r.Exhausted),
	}
	for _, f := range r.BitFrequencies {
		cols = append(cols, strconv.FormatUint(f, 10))
	}
	return strings.Join(cols, ", ")
}
